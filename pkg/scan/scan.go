// Package scan builds a file tree from a project directory on disk.
//
// The scanner produces the [tree.Node] input consumed by the layout engine.
// Output is deterministic: children are emitted in the lexical order
// os.ReadDir guarantees, so scanning an unchanged directory twice yields an
// identical tree and therefore an identical city layout.
//
// Unreadable entries are collected as warnings rather than aborting the
// scan; a project with a few permission holes still renders.
package scan

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/matzehuels/codecity/pkg/errors"
	"github.com/matzehuels/codecity/pkg/tree"
)

// DefaultExcludes are directory and file names skipped by every scan unless
// explicitly overridden.
var DefaultExcludes = []string{
	".git",
	".hg",
	".svn",
	"node_modules",
	"vendor",
	".DS_Store",
}

// Options configures a scan.
type Options struct {
	// Exclude holds glob patterns matched against entry names and
	// root-relative paths. DefaultExcludes are always applied unless
	// NoDefaultExcludes is set.
	Exclude []string

	// NoDefaultExcludes disables the built-in exclusion list.
	NoDefaultExcludes bool

	// IncludeHidden scans dot-files and dot-directories. Default is to skip
	// them, matching what most project views show.
	IncludeHidden bool
}

// Result holds a completed scan.
type Result struct {
	// Root is the scanned tree; its path is "." and all descendant paths are
	// slash-separated and relative to it.
	Root *tree.Node

	// Warnings lists entries that could not be read and were skipped.
	Warnings []error
}

// Scan reads the directory rooted at dir into a tree.
func Scan(dir string, opts Options) (*Result, error) {
	for _, p := range opts.Exclude {
		if err := errors.ValidateExcludePattern(p); err != nil {
			return nil, err
		}
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "project directory %s", dir)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", dir)
	}

	excludes := opts.Exclude
	if !opts.NoDefaultExcludes {
		excludes = append(append([]string{}, DefaultExcludes...), opts.Exclude...)
	}

	s := &scanner{dir: dir, opts: opts, excludes: excludes}
	root := &tree.Node{
		Name: filepath.Base(filepath.Clean(dir)),
		Path: ".",
		Kind: tree.KindDir,
	}
	s.readDir(dir, ".", root)

	return &Result{Root: root, Warnings: s.warnings}, nil
}

type scanner struct {
	dir      string
	opts     Options
	excludes []string
	warnings []error
}

// readDir fills node with the children of the directory at fsPath.
// relPath is the slash-separated tree path of the directory ("." for root).
func (s *scanner) readDir(fsPath, relPath string, node *tree.Node) {
	entries, err := os.ReadDir(fsPath)
	if err != nil {
		s.warnings = append(s.warnings, err)
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		childRel := name
		if relPath != "." {
			childRel = relPath + "/" + name
		}

		if s.skip(name, childRel) {
			continue
		}

		if entry.IsDir() {
			child := &tree.Node{Name: name, Path: childRel, Kind: tree.KindDir}
			s.readDir(filepath.Join(fsPath, name), childRel, child)
			node.Children = append(node.Children, child)
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			s.warnings = append(s.warnings, err)
			continue
		}
		if !fi.Mode().IsRegular() {
			// Sockets, devices, symlinks: nothing to build a city out of.
			continue
		}
		node.Children = append(node.Children, &tree.Node{
			Name: name,
			Path: childRel,
			Kind: tree.KindFile,
			Size: fi.Size(),
		})
	}
}

// skip reports whether an entry is excluded from the scan.
func (s *scanner) skip(name, relPath string) bool {
	if !s.opts.IncludeHidden && strings.HasPrefix(name, ".") {
		return true
	}
	for _, pattern := range s.excludes {
		if matched, _ := path.Match(pattern, name); matched {
			return true
		}
		if strings.Contains(pattern, "/") {
			if matched, _ := path.Match(pattern, relPath); matched {
				return true
			}
		}
	}
	return false
}
