// Package deps discovers import relationships inside a scanned Go project.
//
// Each intra-module import becomes an [Edge] between two files of the tree:
// the importing source file and a representative file of the imported
// package. Renderers draw these edges as roads between buildings.
//
// Extraction is best-effort: files that fail to parse are skipped with a
// warning, imports that leave the module are ignored, and a project without
// a go.mod simply yields no edges. The edge list is deduplicated and sorted
// so identical trees always produce identical roads.
package deps

import (
	"context"
	"go/parser"
	"go/token"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/codecity/pkg/tree"
)

// Edge is a directed import relationship between two files of the tree.
// Paths are tree-relative, matching the scanned node paths.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Result holds extracted edges plus per-file parse failures.
type Result struct {
	Edges    []Edge
	Warnings []error
}

// Extract parses every Go file in the tree below root and returns the
// intra-module import edges. The concurrency parameter bounds the parser
// pool; values <= 0 default to the CPU count.
func Extract(ctx context.Context, root string, t *tree.Node, concurrency int) (*Result, error) {
	module := modulePath(root)
	if module == "" {
		// Not a Go module: no roads, not an error.
		return &Result{}, nil
	}
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	reps := packageIndex(t)

	var files []*tree.Node
	t.Walk(func(n *tree.Node) {
		if !n.IsDir() && strings.HasSuffix(n.Name, ".go") {
			files = append(files, n)
		}
	})

	var (
		mu  sync.Mutex
		res Result
		wg  sync.WaitGroup
		sem = make(chan struct{}, concurrency)
	)

	for _, f := range files {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(f *tree.Node) {
			defer wg.Done()
			defer func() { <-sem }()

			edges, err := fileEdges(root, f, module, reps)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Warnings = append(res.Warnings, err)
				return
			}
			res.Edges = append(res.Edges, edges...)
		}(f)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.Edges = dedupe(res.Edges)
	return &res, nil
}

// fileEdges parses a single file and maps its intra-module imports to edges.
func fileEdges(root string, f *tree.Node, module string, reps map[string]string) ([]Edge, error) {
	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, filepath.Join(root, filepath.FromSlash(f.Path)), nil, parser.ImportsOnly)
	if err != nil {
		return nil, err
	}

	var edges []Edge
	for _, imp := range parsed.Imports {
		path := strings.Trim(imp.Path.Value, `"`)

		var pkgDir string
		switch {
		case path == module:
			pkgDir = "."
		case strings.HasPrefix(path, module+"/"):
			pkgDir = strings.TrimPrefix(path, module+"/")
		default:
			continue // external or stdlib import
		}

		target, ok := reps[pkgDir]
		if !ok || target == f.Path {
			continue
		}
		edges = append(edges, Edge{From: f.Path, To: target})
	}
	return edges, nil
}

// packageIndex maps each directory path to its representative Go file: the
// lexically first .go file directly inside it. Roads aim at that building.
func packageIndex(t *tree.Node) map[string]string {
	reps := make(map[string]string)
	t.Walk(func(n *tree.Node) {
		if !n.IsDir() {
			return
		}
		for _, c := range n.Children {
			if c.IsDir() || !strings.HasSuffix(c.Name, ".go") {
				continue
			}
			if cur, ok := reps[n.Path]; !ok || c.Path < cur {
				reps[n.Path] = c.Path
			}
		}
	})
	return reps
}

// dedupe sorts edges and removes duplicates in place.
func dedupe(edges []Edge) []Edge {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	out := edges[:0]
	for i, e := range edges {
		if i == 0 || e != edges[i-1] {
			out = append(out, e)
		}
	}
	return out
}
