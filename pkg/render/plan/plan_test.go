package plan

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/codecity/pkg/city"
	"github.com/matzehuels/codecity/pkg/deps"
	"github.com/matzehuels/codecity/pkg/tree"
)

func fixture() *city.Node {
	root := &tree.Node{Name: "proj", Path: ".", Kind: tree.KindDir, Children: []*tree.Node{
		{Name: "main.go", Path: "main.go", Kind: tree.KindFile, Size: 1024},
		{Name: "pkg", Path: "pkg", Kind: tree.KindDir, Children: []*tree.Node{
			{Name: "a.go", Path: "pkg/a.go", Kind: tree.KindFile, Size: 2048},
			{Name: "b.py", Path: "pkg/b.py", Kind: tree.KindFile, Size: 512},
		}},
	}}
	return city.Build(root)
}

func TestRenderSVGBasics(t *testing.T) {
	svg := string(RenderSVG(fixture()))

	if !strings.HasPrefix(svg, "<svg ") {
		t.Errorf("output does not start with <svg: %.60s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("output does not end with </svg>")
	}
	for _, want := range []string{"main.go", "pkg/a.go", "pkg/b.py"} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing building %q", want)
		}
	}
	if !strings.Contains(svg, extColors[".go"]) {
		t.Error("missing .go fill color")
	}
	if !strings.Contains(svg, extColors[".py"]) {
		t.Error("missing .py fill color")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	c := fixture()
	edges := []deps.Edge{{From: "main.go", To: "pkg/a.go"}}

	a := RenderSVG(c, WithRoads(edges), WithLabels())
	b := RenderSVG(c, WithRoads(edges), WithLabels())
	if !bytes.Equal(a, b) {
		t.Error("identical inputs produced different SVG")
	}
}

func TestRenderSVGRoadsAndLabels(t *testing.T) {
	c := fixture()

	plain := string(RenderSVG(c))
	if strings.Contains(plain, "<line") {
		t.Error("roads drawn without WithRoads")
	}
	if strings.Contains(plain, "<text") {
		t.Error("labels drawn without WithLabels")
	}

	full := string(RenderSVG(c,
		WithRoads([]deps.Edge{{From: "main.go", To: "pkg/a.go"}}),
		WithLabels()))
	if !strings.Contains(full, "<line") {
		t.Error("WithRoads drew no roads")
	}
	if !strings.Contains(full, ">pkg</text>") {
		t.Error("WithLabels drew no district label")
	}
}

func TestRenderSVGSkipsUnresolvableRoads(t *testing.T) {
	c := fixture()
	svg := string(RenderSVG(c, WithRoads([]deps.Edge{
		{From: "main.go", To: "no/such/file.go"},
	})))
	if strings.Contains(svg, "<line") {
		t.Error("drew road for unresolvable edge")
	}
}

func TestColorFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"cmd/main.go", extColors[".go"]},
		{"web/App.TSX", extColors[".tsx"]},
		{"data.bin", defaultColor},
		{"Makefile", defaultColor},
	}
	for _, tt := range tests {
		if got := colorFor(tt.path); got != tt.want {
			t.Errorf("colorFor(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	c := fixture()
	data, err := RenderJSON(c, WithJSONRoads([]deps.Edge{{From: "main.go", To: "pkg/a.go"}}))
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		Bounds city.BoundingBox `json:"bounds"`
		Stats  city.Stats       `json:"stats"`
		City   *city.Node       `json:"city"`
		Edges  []deps.Edge      `json:"edges"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if out.Stats.Buildings != 3 {
		t.Errorf("stats.buildings = %d, want 3", out.Stats.Buildings)
	}
	if out.City == nil || out.City.Name != "proj" {
		t.Errorf("city root missing or misnamed: %+v", out.City)
	}
	if len(out.Edges) != 1 {
		t.Errorf("edges = %v, want 1 entry", out.Edges)
	}
	if out.Bounds.Width() <= 0 {
		t.Errorf("bounds width = %v", out.Bounds.Width())
	}
}

func TestRenderJSONOmitsEmptyEdges(t *testing.T) {
	data, err := RenderJSON(fixture())
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte(`"edges"`)) {
		t.Error("edges key present without WithJSONRoads")
	}
}

func TestEscapeText(t *testing.T) {
	if got := escapeText(`a<b>&c`); got != "a&lt;b&gt;&amp;c" {
		t.Errorf("escapeText = %q", got)
	}
}

func TestParseJSONRoundTrip(t *testing.T) {
	c := fixture()
	edges := []deps.Edge{{From: "main.go", To: "pkg/a.go"}}

	data, err := RenderJSON(c, WithJSONRoads(edges))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	layout, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON() error: %v", err)
	}
	if layout.Stats.Buildings != 3 {
		t.Errorf("parsed stats report %d buildings, want 3", layout.Stats.Buildings)
	}
	if len(layout.Edges) != 1 {
		t.Errorf("parsed %d edges, want 1", len(layout.Edges))
	}

	// A parsed layout renders identically to the original.
	if !bytes.Equal(RenderSVG(c), RenderSVG(layout.City)) {
		t.Error("parsed city renders differently")
	}
}

func TestParseJSONRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "not json"},
		{name: "missing city", input: `{"bounds": {}, "stats": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseJSON([]byte(tt.input)); err == nil {
				t.Error("ParseJSON() should fail")
			}
		})
	}
}
