// Package plan renders a computed city layout as a top-down map.
//
// The SVG output draws districts as nested outlines, buildings as filled
// cells colored by file type, and optionally roads connecting importing
// files. The JSON output serializes the full layout for consumers that
// render their own scene.
package plan

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/codecity/pkg/city"
	"github.com/matzehuels/codecity/pkg/deps"
)

// DefaultScale is the pixel size of one layout unit in the SVG output.
const DefaultScale = 10.0

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale  float64
	roads  []deps.Edge
	labels bool
}

// WithScale overrides the pixels-per-unit scale of the output.
func WithScale(scale float64) SVGOption {
	return func(r *svgRenderer) {
		if scale > 0 {
			r.scale = scale
		}
	}
}

// WithRoads draws import edges as roads between building centers.
func WithRoads(edges []deps.Edge) SVGOption {
	return func(r *svgRenderer) { r.roads = edges }
}

// WithLabels draws district names on top-level districts.
func WithLabels() SVGOption {
	return func(r *svgRenderer) { r.labels = true }
}

// RenderSVG draws the city plan. Output is deterministic for a given layout:
// districts and buildings are emitted in flatten order and edges in input
// order.
func RenderSVG(root *city.Node, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	box := city.Bounds(root)
	width := box.Width() * r.scale
	height := box.Depth() * r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#F4F1EA"/>`+"\n", width, height)

	for _, d := range city.FlattenDistricts(root) {
		r.renderDistrict(&buf, box, d)
	}
	for _, b := range city.FlattenBuildings(root) {
		r.renderBuilding(&buf, box, b)
	}
	if len(r.roads) > 0 {
		r.renderRoads(&buf, box, root)
	}
	if r.labels {
		for _, d := range city.FlattenDistricts(root) {
			r.renderLabel(&buf, box, d)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) renderDistrict(buf *bytes.Buffer, box city.BoundingBox, d *city.Node) {
	x := (d.X - box.MinX) * r.scale
	y := (d.Z - box.MinZ) * r.scale
	fmt.Fprintf(buf,
		`  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#B8B2A7" stroke-width="1"/>`+"\n",
		x, y, d.Width*r.scale, d.Depth*r.scale, districtFill(d.TreeDepth))
}

func (r *svgRenderer) renderBuilding(buf *bytes.Buffer, box city.BoundingBox, b *city.Node) {
	x := (b.X - box.MinX) * r.scale
	y := (b.Z - box.MinZ) * r.scale
	fmt.Fprintf(buf,
		`  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="%.2f" stroke="#3A3A3A" stroke-width="0.5">`,
		x, y, b.Width*r.scale, b.Depth*r.scale, colorFor(b.Path), heightOpacity(b.Height))
	fmt.Fprintf(buf, `<title>%s (%d bytes, h=%.1f)</title></rect>`+"\n", escapeText(b.Path), b.Size, b.Height)
}

func (r *svgRenderer) renderRoads(buf *bytes.Buffer, box city.BoundingBox, root *city.Node) {
	ix := city.NewIndex(root)
	for _, e := range r.roads {
		from, okFrom := ix.Resolve(e.From)
		to, okTo := ix.Resolve(e.To)
		if !okFrom || !okTo || from == to {
			continue
		}
		fmt.Fprintf(buf,
			`  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#6B6B6B" stroke-width="1.5" stroke-opacity="0.35"/>`+"\n",
			(from.CenterX()-box.MinX)*r.scale, (from.CenterZ()-box.MinZ)*r.scale,
			(to.CenterX()-box.MinX)*r.scale, (to.CenterZ()-box.MinZ)*r.scale)
	}
}

func (r *svgRenderer) renderLabel(buf *bytes.Buffer, box city.BoundingBox, d *city.Node) {
	// Only top-level districts get labels; deeper ones are too small to read.
	if d.TreeDepth > 1 || d.Name == "" {
		return
	}
	x := (d.X-box.MinX)*r.scale + 3
	y := (d.Z-box.MinZ)*r.scale + 12
	fmt.Fprintf(buf,
		`  <text x="%.1f" y="%.1f" font-family="monospace" font-size="10" fill="#55524B">%s</text>`+"\n",
		x, y, escapeText(d.Name))
}

// heightOpacity maps building height onto fill opacity so tall buildings
// read darker on the flat map.
func heightOpacity(h float64) float64 {
	op := 0.45 + h/city.MaxHeight*0.55
	if op > 1 {
		op = 1
	}
	return op
}

// districtFill shades districts progressively darker with nesting depth.
func districtFill(depth int) string {
	shades := []string{"#EAE6DD", "#E1DCD1", "#D8D2C5", "#CFC8B9"}
	if depth < 0 {
		depth = 0
	}
	if depth >= len(shades) {
		depth = len(shades) - 1
	}
	return shades[depth]
}

func escapeText(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
