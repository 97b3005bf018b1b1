package city

import (
	"path"
	"strings"
)

// Index resolves path-like references to buildings in a layout.
//
// Dependency edges are often reported in a different path form than the
// tree's canonical paths (absolute, prefixed with the project root, or as a
// bare filename). Resolve tries, in order:
//
//  1. exact path match
//  2. the path with its leading root segment stripped
//  3. a bare filename suffix match
//
// The index is built once from the flattened building list and is read-only
// afterward, like the layout itself.
type Index struct {
	exact  map[string]*Node
	byName map[string][]*Node
}

// NewIndex builds a lookup index over every building of a layout.
func NewIndex(root *Node) *Index {
	ix := &Index{
		exact:  make(map[string]*Node),
		byName: make(map[string][]*Node),
	}
	for _, b := range FlattenBuildings(root) {
		if _, dup := ix.exact[b.Path]; !dup {
			ix.exact[b.Path] = b
		}
		name := path.Base(b.Path)
		ix.byName[name] = append(ix.byName[name], b)
	}
	return ix
}

// Resolve finds the building a path-like reference points at.
func (ix *Index) Resolve(ref string) (*Node, bool) {
	ref = strings.TrimPrefix(path.Clean(ref), "./")

	if b, ok := ix.exact[ref]; ok {
		return b, true
	}

	// The reference may carry a leading project-root segment the tree's
	// canonical paths don't have.
	if i := strings.IndexByte(ref, '/'); i >= 0 {
		if b, ok := ix.exact[ref[i+1:]]; ok {
			return b, true
		}
	}

	// Last resort: match by bare filename. Flatten order is deterministic,
	// so ambiguous names resolve stably.
	if candidates := ix.byName[path.Base(ref)]; len(candidates) > 0 {
		return candidates[0], true
	}

	return nil, false
}

// Len returns the number of uniquely indexed building paths.
func (ix *Index) Len() int { return len(ix.exact) }
