package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/codecity/pkg/city"
	"github.com/matzehuels/codecity/pkg/deps"
	"github.com/matzehuels/codecity/pkg/errors"
	"github.com/matzehuels/codecity/pkg/observability"
	"github.com/matzehuels/codecity/pkg/render/plan"
	"github.com/matzehuels/codecity/pkg/render/roads"
)

// Render generates every requested artifact without caching.
func (r *Runner) Render(ctx context.Context, c *city.Node, edges []deps.Edge, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(ctx, c, edges, opts)

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, c *city.Node, edges []deps.Edge, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	// DOT is computed once and shared between the dot and png formats.
	var dot string
	roadDOT := func() string {
		if dot == "" {
			dot = roads.ToDOT(c, edges, roads.Options{Clusters: opts.Clusters})
		}
		return dot
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			var svgOpts []plan.SVGOption
			if len(edges) > 0 {
				svgOpts = append(svgOpts, plan.WithRoads(edges))
			}
			if opts.Labels {
				svgOpts = append(svgOpts, plan.WithLabels())
			}
			artifacts[format] = plan.RenderSVG(c, svgOpts...)

		case FormatJSON:
			var jsonOpts []plan.JSONOption
			if len(edges) > 0 {
				jsonOpts = append(jsonOpts, plan.WithJSONRoads(edges))
			}
			data, err := plan.RenderJSON(c, jsonOpts...)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render json")
			}
			artifacts[format] = data

		case FormatDOT:
			artifacts[format] = []byte(roadDOT())

		case FormatPNG:
			data, err := roads.RenderPNG(ctx, roadDOT())
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render png")
			}
			artifacts[format] = data

		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
		}
	}

	return artifacts, nil
}
