package city

import (
	"github.com/matzehuels/codecity/pkg/tree"
)

// =============================================================================
// Layout Constants - Single Source of Truth
// =============================================================================

// Scene-unit constants shared by every compatible consumer. Renderers and
// physics layers bake these into collision bodies and road geometry, so their
// values are part of the layout contract.
const (
	// RoadWidth is the empty margin between sibling districts and between a
	// district's building zone and its sub-district zone.
	RoadWidth = 3.0

	// BuildingGap is the margin stripped from each side of a building cell.
	BuildingGap = 0.5

	// MinBlockSize is the smallest side length a district block may shrink to.
	MinBlockSize = 4.0

	// MinFootprint is the preferred minimum building side length.
	MinFootprint = 1.2

	// MinVisualFootprint is the hard floor below which buildings stop being
	// legible; footprints never go below it.
	MinVisualFootprint = 0.8

	// MaxFootprint caps the building side length.
	MaxFootprint = 10.0

	// MinAspect and MaxAspect bound the footprint width/depth ratio.
	MinAspect = 0.6
	MaxAspect = 1.8

	// SafetyInset is the per-side margin a footprint must keep from its raw
	// cell when upscaling toward MinFootprint.
	SafetyInset = 0.2

	// CellPadding is the nominal centering inset separating a footprint from
	// its cell edges; it shrinks for small footprints.
	CellPadding = 0.4

	// DefaultRootSize is the side length of the default root rectangle.
	DefaultRootSize = 80.0

	// MinHeight and MaxHeight bound building heights before derating.
	MinHeight = 1.0
	MaxHeight = 80.0
)

// minWeight is the floor for node weights. A zero weight would produce a
// degenerate zero-area cell, so every node occupies visible area.
const minWeight = 100.0

// =============================================================================
// Geometry
// =============================================================================

// Rect is an axis-aligned rectangle on the ground plane. Width and Depth are
// always positive.
type Rect struct {
	X     float64 `json:"x"`
	Z     float64 `json:"z"`
	Width float64 `json:"width"`
	Depth float64 `json:"depth"`
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 { return r.Width * r.Depth }

// CenterX returns the X coordinate of the rectangle's center.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterZ returns the Z coordinate of the rectangle's center.
func (r Rect) CenterZ() float64 { return r.Z + r.Depth/2 }

// Intersects reports whether r and o overlap with positive area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Z < o.Z+o.Depth && o.Z < r.Z+r.Depth
}

// =============================================================================
// Node - City Layout Output
// =============================================================================

// Node is one element of the computed city: a district (directory) or a
// building (file). The tree is produced in a single [Build] pass and is
// immutable afterward; a changed input tree is answered with a full rebuild,
// never an in-place mutation.
type Node struct {
	Rect

	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Kind      tree.Kind `json:"kind"`
	Size      int64     `json:"size,omitempty"`
	TreeDepth int       `json:"tree_depth"`

	// Height is the building height; 0 for districts.
	Height float64 `json:"height,omitempty"`

	// Children holds sub-districts; Buildings holds the district's direct
	// file children. Both are nil for buildings and non-nil (possibly empty)
	// for districts.
	Children  []*Node `json:"children,omitempty"`
	Buildings []*Node `json:"buildings,omitempty"`
}

// IsDistrict returns true if the node represents a directory.
func (n *Node) IsDistrict() bool { return n.Kind == tree.KindDir }
