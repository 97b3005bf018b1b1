// Package render provides visual output for computed city layouts.
//
// # Overview
//
// This package groups the renderers that turn a laid-out city into
// artifacts:
//
//   - City plan output (in [plan] subpackage)
//   - Import road diagrams (in [roads] subpackage)
//
// # City Plans
//
// The [plan] subpackage draws a top-down SVG map of the city: districts as
// nested outlines, buildings as filled cells colored by file type, and
// optionally roads connecting importing files. It also serializes the full
// layout to JSON for consumers that render their own scene.
//
//	svg := plan.RenderSVG(root, plan.WithRoads(edges))
//	data, err := plan.RenderJSON(root)
//
// # Road Diagrams
//
// The [roads] subpackage renders the import graph on its own, as a directed
// Graphviz diagram with one node per file and districts as clusters.
//
//	dot := roads.ToDOT(root, edges, roads.Options{Clusters: true})
//	svg, err := roads.RenderSVG(dot)
//	png, err := roads.RenderPNG(dot)
//
// [plan]: github.com/matzehuels/codecity/pkg/render/plan
// [roads]: github.com/matzehuels/codecity/pkg/render/roads
package render
