// Package city turns a weighted file tree into a 2D city floor plan.
//
// # Overview
//
// Codecity renders a project as a city: directories become ground districts,
// files become buildings with a footprint and a height, and import
// relationships become roads between buildings. This package is the spatial
// layout engine at the center of that metaphor. It is a pure, deterministic
// batch transform: given the same input tree it always produces the same
// [Node] tree, down to the last float, because downstream consumers (collision
// bodies, hover lookup, road endpoints) index into the layout by path.
//
// # Pipeline
//
// The transform is a call/return chain with no shared state:
//
//	weights := Weight(node)          // positive weight per tree node
//	cells := Squarify(weights, rect) // proportional, non-overlapping cells
//	w, d, ox, oz := ShapeFootprint(cellW, cellD)
//	h := DerateHeight(BuildingHeight(size), w, d)
//
// [Build] orchestrates these recursively: for each directory it splits the
// available rectangle into a building zone and a district zone separated by a
// fixed road gap, squarifies each zone, shapes the building cells, and
// recurses into sub-districts.
//
// # Squarify
//
// [Squarify] implements the greedy row-growing heuristic from "Squarified
// Treemaps" (Bruls, Huizing, van Wijk, 2000) with one deliberate deviation:
// items are laid out in the order supplied, without the descending-weight
// pre-sort the paper uses. Callers rely on the stable ordering; see DESIGN.md
// for the trade-off.
//
// # Invariants
//
//   - Every node's rectangle lies within its parent's allotted rectangle.
//   - Sibling rectangles never overlap.
//   - Every building footprint is at least MinVisualFootprint on each side
//     and, unless an absolute clamp dominates, has an aspect ratio within
//     [MinAspect, MaxAspect].
//   - No NaN or Inf ever escapes: degenerate inputs are absorbed by clamping,
//     never signaled as errors.
//
// # Concurrency
//
// The engine holds no mutable state, so any number of goroutines may invoke
// [Build] on different trees in parallel without coordination.
package city
