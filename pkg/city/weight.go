package city

import "github.com/matzehuels/codecity/pkg/tree"

// Weight computes the strictly positive layout weight of a tree node.
//
// Files weigh their byte size; directories weigh the recursive sum of their
// children. Zero or missing sizes are floored to a small constant so every
// node occupies visible area proportional to its presence, not its literal
// byte count. The returned weight is never zero, which keeps [Squarify] free
// of degenerate zero-area cells.
func Weight(n *tree.Node) float64 {
	if !n.IsDir() {
		if n.Size > 0 {
			return float64(n.Size)
		}
		return minWeight
	}

	var sum float64
	for _, c := range n.Children {
		sum += Weight(c)
	}
	if sum <= 0 {
		// Empty directory, or children that sum to nothing.
		return minWeight
	}
	return sum
}
