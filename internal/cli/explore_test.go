package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/codecity/pkg/city"
	"github.com/matzehuels/codecity/pkg/tree"
)

func exploreFixture() *city.Node {
	root := &tree.Node{Name: "proj", Path: ".", Kind: tree.KindDir, Children: []*tree.Node{
		{Name: "main.go", Path: "main.go", Kind: tree.KindFile, Size: 1024},
		{Name: "pkg", Path: "pkg", Kind: tree.KindDir, Children: []*tree.Node{
			{Name: "a.go", Path: "pkg/a.go", Kind: tree.KindFile, Size: 2048},
			{Name: "b.go", Path: "pkg/b.go", Kind: tree.KindFile, Size: 512},
		}},
	}}
	return city.Build(root)
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{}
}

func TestExploreModelInitialEntries(t *testing.T) {
	m := newExploreModel(exploreFixture())

	// Subdistricts come before buildings.
	if len(m.entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(m.entries))
	}
	if !m.entries[0].isDistrict || m.entries[0].node.Name != "pkg" {
		t.Errorf("first entry should be the pkg district, got %q", m.entries[0].node.Name)
	}
	if m.entries[1].isDistrict || m.entries[1].node.Name != "main.go" {
		t.Errorf("second entry should be the main.go building, got %q", m.entries[1].node.Name)
	}
}

func TestExploreModelNavigation(t *testing.T) {
	m := newExploreModel(exploreFixture())

	// Enter the pkg district.
	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(exploreModel)
	if len(m.stack) != 2 {
		t.Fatalf("got stack depth %d after enter, want 2", len(m.stack))
	}
	if len(m.entries) != 2 {
		t.Fatalf("got %d entries in pkg, want 2", len(m.entries))
	}

	// Back out to the root.
	updated, _ = m.Update(keyMsg("backspace"))
	m = updated.(exploreModel)
	if len(m.stack) != 1 {
		t.Errorf("got stack depth %d after backspace, want 1", len(m.stack))
	}

	// Backspace at the root is a no-op.
	updated, _ = m.Update(keyMsg("backspace"))
	m = updated.(exploreModel)
	if len(m.stack) != 1 {
		t.Errorf("backspace at root changed stack depth to %d", len(m.stack))
	}
}

func TestExploreModelCursorBounds(t *testing.T) {
	m := newExploreModel(exploreFixture())

	// Up at the top stays put.
	updated, _ := m.Update(keyMsg("up"))
	m = updated.(exploreModel)
	if m.cursor != 0 {
		t.Errorf("cursor moved above zero: %d", m.cursor)
	}

	// Down past the last entry stays on the last entry.
	for i := 0; i < 5; i++ {
		updated, _ = m.Update(keyMsg("down"))
		m = updated.(exploreModel)
	}
	if m.cursor != len(m.entries)-1 {
		t.Errorf("cursor = %d, want %d", m.cursor, len(m.entries)-1)
	}
}

func TestExploreModelEnterOnBuilding(t *testing.T) {
	m := newExploreModel(exploreFixture())

	// Move onto main.go (a building) and try to enter it.
	updated, _ := m.Update(keyMsg("down"))
	m = updated.(exploreModel)
	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(exploreModel)
	if len(m.stack) != 1 {
		t.Errorf("entering a building changed stack depth to %d", len(m.stack))
	}
}

func TestExploreModelQuit(t *testing.T) {
	m := newExploreModel(exploreFixture())
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
}

func TestExploreModelView(t *testing.T) {
	m := newExploreModel(exploreFixture())
	view := m.View()

	for _, want := range []string{"pkg/", "main.go", "1024 bytes"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestExploreModelWindowResize(t *testing.T) {
	m := newExploreModel(exploreFixture())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	m = updated.(exploreModel)
	if m.height != 5 {
		t.Errorf("height = %d, want clamped minimum 5", m.height)
	}

	updated, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = updated.(exploreModel)
	if m.height != 24 {
		t.Errorf("height = %d, want 24", m.height)
	}
}
