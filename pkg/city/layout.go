package city

import (
	"math"

	"github.com/matzehuels/codecity/pkg/tree"
)

// maxFileAreaRatio caps the share of a district's depth reserved for its own
// files, so sub-districts are never crowded out.
const maxFileAreaRatio = 0.4

// Build computes the city layout for a tree inside the default 80×80 root
// rectangle.
func Build(root *tree.Node) *Node {
	return BuildAt(root, 0, 0, DefaultRootSize, DefaultRootSize, 0)
}

// BuildAt computes the city layout for a tree inside an explicit rectangle.
//
// The function is pure: it depends only on its arguments and the package
// constants, so repeated calls on an unchanged tree yield byte-identical
// layouts. Consumers look up geometry by path and rely on that.
func BuildAt(n *tree.Node, x, z, width, depth float64, treeDepth int) *Node {
	if !n.IsDir() {
		return buildFile(n, x, z, width, depth, treeDepth)
	}
	return buildDistrict(n, x, z, width, depth, treeDepth)
}

// buildFile lays out a file node occupying a whole cell. This is the path
// taken when the layout root itself is a file; files inside a district go
// through the squarify-then-shape path in buildDistrict instead.
func buildFile(n *tree.Node, x, z, width, depth float64, treeDepth int) *Node {
	w := math.Max(width-2*BuildingGap, 0.5)
	d := math.Max(depth-2*BuildingGap, 0.5)
	return &Node{
		Rect:      Rect{X: x + (width-w)/2, Z: z + (depth-d)/2, Width: w, Depth: d},
		Name:      n.Name,
		Path:      n.Path,
		Kind:      n.Kind,
		Size:      n.Size,
		TreeDepth: treeDepth,
		Height:    DerateHeight(BuildingHeight(n.Size), w, d),
	}
}

func buildDistrict(n *tree.Node, x, z, width, depth float64, treeDepth int) *Node {
	var files, subdirs []*tree.Node
	for _, c := range n.Children {
		if c.IsDir() {
			subdirs = append(subdirs, c)
		} else {
			files = append(files, c)
		}
	}

	// Split the depth between a building zone and a district zone. The ratio
	// grows with the file count but shrinks as sub-districts multiply, so
	// directory-heavy trees keep most of their ground for districts.
	fileAreaRatio := 0.0
	if len(files) > 0 {
		fileAreaRatio = math.Min(maxFileAreaRatio,
			float64(len(files))/float64(len(files)+3*len(subdirs)))
	}
	fileAreaDepth := depth * fileAreaRatio

	roadGap := 0.0
	if len(files) > 0 && len(subdirs) > 0 {
		roadGap = RoadWidth
	}
	dirAreaDepth := depth - fileAreaDepth - roadGap

	district := &Node{
		Rect:      Rect{X: x, Z: z, Width: width, Depth: depth},
		Name:      n.Name,
		Path:      n.Path,
		Kind:      n.Kind,
		TreeDepth: treeDepth,
		Children:  make([]*Node, 0, len(subdirs)),
		Buildings: make([]*Node, 0, len(files)),
	}

	if len(files) > 0 {
		fileRect := Rect{
			X:     x + BuildingGap,
			Z:     z + BuildingGap,
			Width: math.Max(width-2*BuildingGap, 0.5),
			Depth: math.Max(fileAreaDepth-2*BuildingGap, 0.5),
		}
		weights := make([]float64, len(files))
		for i, f := range files {
			weights[i] = Weight(f)
		}
		for i, cell := range Squarify(weights, fileRect) {
			district.Buildings = append(district.Buildings, buildBuilding(files[i], cell, treeDepth+1))
		}
	}

	if len(subdirs) > 0 {
		dirRect := Rect{
			X:     x,
			Z:     z + fileAreaDepth + roadGap,
			Width: width,
			Depth: math.Max(dirAreaDepth, 0.5),
		}
		weights := make([]float64, len(subdirs))
		for i, d := range subdirs {
			weights[i] = math.Max(Weight(d), MinBlockSize*MinBlockSize)
		}
		for i, cell := range Squarify(weights, dirRect) {
			// Inset each block by half a road per side so sibling districts
			// are separated by a full road.
			innerW := math.Max(cell.Width-RoadWidth, MinBlockSize)
			innerD := math.Max(cell.Depth-RoadWidth, MinBlockSize)
			child := BuildAt(subdirs[i],
				cell.X+(cell.Width-innerW)/2,
				cell.Z+(cell.Depth-innerD)/2,
				innerW, innerD, treeDepth+1)
			district.Children = append(district.Children, child)
		}
	}

	return district
}

// buildBuilding shapes a squarify cell into a building footprint and derives
// its height.
func buildBuilding(f *tree.Node, cell Rect, treeDepth int) *Node {
	w, d, offX, offZ := ShapeFootprint(cell.Width, cell.Depth)
	return &Node{
		Rect:      Rect{X: cell.X + offX, Z: cell.Z + offZ, Width: w, Depth: d},
		Name:      f.Name,
		Path:      f.Path,
		Kind:      f.Kind,
		Size:      f.Size,
		TreeDepth: treeDepth,
		Height:    DerateHeight(BuildingHeight(f.Size), w, d),
	}
}
