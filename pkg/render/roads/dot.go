// Package roads renders the import graph of a city as a directed diagram.
//
// Each building (file) becomes a node and each import edge an arrow;
// districts can optionally be drawn as clusters. Rendering goes through
// Graphviz DOT, so the textual [ToDOT] output is also usable directly with
// external tooling.
package roads

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/codecity/pkg/city"
	"github.com/matzehuels/codecity/pkg/deps"
)

// Options configures road diagram generation.
type Options struct {
	// Clusters groups file nodes into subgraphs per top-level district.
	Clusters bool

	// Detailed includes file size and height in node labels.
	// When false, only the file path is shown.
	Detailed bool
}

// ToDOT converts a city's import edges to Graphviz DOT format. Only files
// that participate in at least one edge become nodes; an isolated building
// adds nothing to a road map. The resulting DOT string can be rendered
// using [RenderSVG] or [RenderPNG].
func ToDOT(root *city.Node, edges []deps.Edge, opts Options) string {
	ix := city.NewIndex(root)

	var buf bytes.Buffer
	buf.WriteString("digraph roads {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	nodes := connectedBuildings(ix, edges)
	if opts.Clusters {
		writeClusters(&buf, nodes, opts)
	} else {
		for _, b := range nodes {
			fmt.Fprintf(&buf, "  %q [label=%q];\n", b.Path, fmtLabel(b, opts.Detailed))
		}
	}

	buf.WriteString("\n")
	for _, e := range edges {
		from, okFrom := ix.Resolve(e.From)
		to, okTo := ix.Resolve(e.To)
		if !okFrom || !okTo || from == to {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", from.Path, to.Path)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// connectedBuildings returns the buildings touched by at least one edge,
// deduplicated, in first-appearance order.
func connectedBuildings(ix *city.Index, edges []deps.Edge) []*city.Node {
	seen := make(map[string]struct{})
	var nodes []*city.Node
	for _, e := range edges {
		for _, ref := range []string{e.From, e.To} {
			b, ok := ix.Resolve(ref)
			if !ok {
				continue
			}
			if _, dup := seen[b.Path]; dup {
				continue
			}
			seen[b.Path] = struct{}{}
			nodes = append(nodes, b)
		}
	}
	return nodes
}

// writeClusters emits one subgraph per top-level district so the diagram
// mirrors the city's block structure.
func writeClusters(buf *bytes.Buffer, nodes []*city.Node, opts Options) {
	groups := make(map[string][]*city.Node)
	var order []string
	for _, b := range nodes {
		district := topDistrict(b.Path)
		if _, ok := groups[district]; !ok {
			order = append(order, district)
		}
		groups[district] = append(groups[district], b)
	}

	for i, district := range order {
		if district == "" {
			for _, b := range groups[district] {
				fmt.Fprintf(buf, "  %q [label=%q];\n", b.Path, fmtLabel(b, opts.Detailed))
			}
			continue
		}
		fmt.Fprintf(buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(buf, "    label=%q;\n", district)
		buf.WriteString("    style=\"rounded\";\n")
		buf.WriteString("    color=\"#B8B2A7\";\n")
		for _, b := range groups[district] {
			fmt.Fprintf(buf, "    %q [label=%q];\n", b.Path, fmtLabel(b, opts.Detailed))
		}
		buf.WriteString("  }\n")
	}
}

// topDistrict returns the first path segment, or "" for root-level files.
func topDistrict(path string) string {
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return ""
}

func fmtLabel(b *city.Node, detailed bool) string {
	if !detailed {
		return b.Path
	}
	return fmt.Sprintf("%s\n%d bytes, h=%.1f", b.Path, b.Size, b.Height)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG, normalizeViewBox)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG, nil)
}

func render(ctx context.Context, dot string, format graphviz.Format, post func([]byte) []byte) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out := buf.Bytes()
	if post != nil {
		out = post(out)
	}
	return out, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
