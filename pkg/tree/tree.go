// Package tree defines the file-tree data model consumed by the layout engine.
//
// A Node describes one entry of a scanned project: files carry a byte size,
// directories carry an ordered list of children. Paths are slash-separated,
// relative to the scan root, and unique within a tree. The tree is built once
// by pkg/scan and treated as read-only by every downstream consumer.
package tree

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Kind distinguishes files from directories.
type Kind string

// Node kinds.
const (
	KindFile Kind = "file"
	KindDir  Kind = "directory"
)

// Node is a single entry in the scanned file tree.
type Node struct {
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	Kind     Kind    `json:"kind"`
	Size     int64   `json:"size,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// IsDir returns true if the node is a directory.
func (n *Node) IsDir() bool { return n.Kind == KindDir }

// Walk visits n and all descendants depth-first, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Count returns the number of files and directories in the tree rooted at n.
func (n *Node) Count() (files, dirs int) {
	n.Walk(func(node *Node) {
		if node.IsDir() {
			dirs++
		} else {
			files++
		}
	})
	return files, dirs
}

// TotalSize returns the sum of all file sizes in the tree rooted at n.
func (n *Node) TotalSize() int64 {
	var total int64
	n.Walk(func(node *Node) {
		if !node.IsDir() {
			total += node.Size
		}
	})
	return total
}

// WriteJSON encodes the tree as indented JSON.
func WriteJSON(n *Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(n); err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}
	return nil
}

// ReadJSON decodes a tree from JSON.
func ReadJSON(r io.Reader) (*Node, error) {
	var n Node
	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	return &n, nil
}

// ReadFile loads a tree from a JSON file on disk.
func ReadFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}
