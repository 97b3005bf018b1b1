package city

// FlattenBuildings collects every building in the layout depth-first:
// a district contributes its own buildings, then recurses into its
// sub-districts; a file root contributes itself.
func FlattenBuildings(n *Node) []*Node {
	if n == nil {
		return nil
	}
	if !n.IsDistrict() {
		return []*Node{n}
	}
	out := make([]*Node, 0, len(n.Buildings))
	out = append(out, n.Buildings...)
	for _, c := range n.Children {
		out = append(out, FlattenBuildings(c)...)
	}
	return out
}

// FlattenDistricts collects every district in the layout depth-first,
// including the root.
func FlattenDistricts(n *Node) []*Node {
	if n == nil || !n.IsDistrict() {
		return nil
	}
	out := []*Node{n}
	for _, c := range n.Children {
		out = append(out, FlattenDistricts(c)...)
	}
	return out
}

// BoundingBox is the axis-aligned extent of a layout plus its peak building
// height. Consumers size ground planes, frame cameras, and place ambient
// decoration from it.
type BoundingBox struct {
	MinX       float64 `json:"min_x"`
	MinZ       float64 `json:"min_z"`
	MaxX       float64 `json:"max_x"`
	MaxZ       float64 `json:"max_z"`
	PeakHeight float64 `json:"peak_height"`
}

// Width returns the bounding box extent along X.
func (b BoundingBox) Width() float64 { return b.MaxX - b.MinX }

// Depth returns the bounding box extent along Z.
func (b BoundingBox) Depth() float64 { return b.MaxZ - b.MinZ }

// Bounds scans all buildings and districts of a layout for the extreme
// coordinates and the tallest building.
func Bounds(n *Node) BoundingBox {
	var box BoundingBox
	first := true

	scan := func(node *Node) {
		if first {
			box.MinX, box.MinZ = node.X, node.Z
			box.MaxX, box.MaxZ = node.X+node.Width, node.Z+node.Depth
			first = false
			return
		}
		box.MinX = min(box.MinX, node.X)
		box.MinZ = min(box.MinZ, node.Z)
		box.MaxX = max(box.MaxX, node.X+node.Width)
		box.MaxZ = max(box.MaxZ, node.Z+node.Depth)
	}

	for _, d := range FlattenDistricts(n) {
		scan(d)
	}
	for _, b := range FlattenBuildings(n) {
		scan(b)
		if b.Height > box.PeakHeight {
			box.PeakHeight = b.Height
		}
	}
	return box
}
