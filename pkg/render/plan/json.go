package plan

import (
	"encoding/json"

	"github.com/matzehuels/codecity/pkg/city"
	"github.com/matzehuels/codecity/pkg/deps"
	"github.com/matzehuels/codecity/pkg/errors"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	edges []deps.Edge
}

// WithJSONRoads includes import edges in the JSON output.
func WithJSONRoads(edges []deps.Edge) JSONOption {
	return func(r *jsonRenderer) { r.edges = edges }
}

type jsonOutput struct {
	Bounds city.BoundingBox `json:"bounds"`
	Stats  city.Stats       `json:"stats"`
	City   *city.Node       `json:"city"`
	Edges  []deps.Edge      `json:"edges,omitempty"`
}

// RenderJSON exports the layout as a pretty-printed JSON document. This is
// the primary data interchange format, enabling:
//
//   - Rendering by external 3D viewers
//   - Caching computed layouts for fast re-rendering
//   - Round-trip rendering from a saved layout file
//
// RenderJSON returns an error only if JSON marshaling fails. It does not
// modify the layout and is safe to call concurrently.
func RenderJSON(root *city.Node, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Bounds: city.Bounds(root),
		Stats:  city.Summarize(root),
		City:   root,
		Edges:  r.edges,
	}

	return json.MarshalIndent(out, "", "  ")
}

// Layout is a decoded layout document as written by [RenderJSON].
type Layout struct {
	Bounds city.BoundingBox `json:"bounds"`
	Stats  city.Stats       `json:"stats"`
	City   *city.Node       `json:"city"`
	Edges  []deps.Edge      `json:"edges,omitempty"`
}

// ParseJSON decodes a layout document produced by [RenderJSON], so saved
// layouts can be re-rendered without rescanning the project.
func ParseJSON(data []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse layout")
	}
	if l.City == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "layout document has no city")
	}
	return &l, nil
}
