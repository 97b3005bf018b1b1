package roads

import (
	"strings"
	"testing"

	"github.com/matzehuels/codecity/pkg/city"
	"github.com/matzehuels/codecity/pkg/deps"
	"github.com/matzehuels/codecity/pkg/tree"
)

func fixture() *city.Node {
	root := &tree.Node{Name: "proj", Path: ".", Kind: tree.KindDir, Children: []*tree.Node{
		{Name: "main.go", Path: "main.go", Kind: tree.KindFile, Size: 1024},
		{Name: "internal", Path: "internal", Kind: tree.KindDir, Children: []*tree.Node{
			{Name: "a.go", Path: "internal/a.go", Kind: tree.KindFile, Size: 2048},
			{Name: "b.go", Path: "internal/b.go", Kind: tree.KindFile, Size: 512},
		}},
	}}
	return city.Build(root)
}

func TestToDOT(t *testing.T) {
	c := fixture()
	edges := []deps.Edge{
		{From: "main.go", To: "internal/a.go"},
		{From: "internal/a.go", To: "internal/b.go"},
	}

	dot := ToDOT(c, edges, Options{})

	if !strings.HasPrefix(dot, "digraph roads {") {
		t.Errorf("unexpected prefix: %.40s", dot)
	}
	for _, want := range []string{
		`"main.go" [label="main.go"];`,
		`"main.go" -> "internal/a.go";`,
		`"internal/a.go" -> "internal/b.go";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing %q in:\n%s", want, dot)
		}
	}
}

func TestToDOTSkipsUnresolvable(t *testing.T) {
	c := fixture()
	dot := ToDOT(c, []deps.Edge{
		{From: "main.go", To: "no/such/file.go"},
		{From: "ghost.go", To: "internal/a.go"},
	}, Options{})

	if strings.Contains(dot, "->") {
		t.Errorf("emitted edge for unresolvable endpoint:\n%s", dot)
	}
}

func TestToDOTOmitsIsolatedBuildings(t *testing.T) {
	c := fixture()
	dot := ToDOT(c, []deps.Edge{{From: "main.go", To: "internal/a.go"}}, Options{})

	if strings.Contains(dot, `"internal/b.go"`) {
		t.Error("isolated building appeared as node")
	}
}

func TestToDOTClusters(t *testing.T) {
	c := fixture()
	edges := []deps.Edge{{From: "main.go", To: "internal/a.go"}}

	dot := ToDOT(c, edges, Options{Clusters: true})

	if !strings.Contains(dot, "subgraph cluster_") {
		t.Errorf("no cluster emitted:\n%s", dot)
	}
	if !strings.Contains(dot, `label="internal";`) {
		t.Errorf("missing district cluster label:\n%s", dot)
	}
	// Root-level files stay outside any cluster.
	if !strings.Contains(dot, `  "main.go" [label="main.go"];`) {
		t.Errorf("root-level file not emitted at top level:\n%s", dot)
	}
}

func TestToDOTDetailedLabels(t *testing.T) {
	c := fixture()
	dot := ToDOT(c, []deps.Edge{{From: "main.go", To: "internal/a.go"}}, Options{Detailed: true})

	if !strings.Contains(dot, "1024 bytes") {
		t.Errorf("detailed label missing size:\n%s", dot)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	c := fixture()
	edges := []deps.Edge{
		{From: "internal/a.go", To: "internal/b.go"},
		{From: "main.go", To: "internal/a.go"},
	}

	a := ToDOT(c, edges, Options{Clusters: true})
	b := ToDOT(c, edges, Options{Clusters: true})
	if a != b {
		t.Error("identical inputs produced different DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.00 200.00" something="x">rest`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.00 200.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="100" height="200"`) {
		t.Errorf("dimensions not rewritten: %s", out)
	}
	if !strings.HasSuffix(out, "rest") {
		t.Errorf("content after tag lost: %s", out)
	}
}
