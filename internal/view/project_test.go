package view

import (
	"reflect"
	"testing"

	"github.com/agentic-research/structree/internal/tree"
)

func fixture() *tree.DirectoryNode {
	// Stored order is deliberately unsorted.
	return &tree.DirectoryNode{
		Folders: []*tree.DirectoryNode{
			{Name: "b"},
			{Name: "A"},
		},
		Files: []string{"z", "a"},
	}
}

func names(p Projection) []string {
	out := make([]string, len(p.Rows))
	for i, r := range p.Rows {
		out[i] = r.Name
	}
	return out
}

func TestProject_Ordering(t *testing.T) {
	p := Project(fixture())
	want := []string{"A", "b", "z", "a"}
	if got := names(p); !reflect.DeepEqual(got, want) {
		t.Errorf("projected order = %v, want %v", got, want)
	}
}

func TestProject_Idempotent(t *testing.T) {
	root := fixture()
	first := Project(root)
	second := Project(root)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated projection of an unchanged tree differs")
	}
	// The stored model is untouched by projecting.
	if root.Folders[0].Name != "b" || root.Files[0] != "z" {
		t.Error("projection mutated the stored order")
	}
}

func TestProject_PathsAndDepth(t *testing.T) {
	root := &tree.DirectoryNode{
		Folders: []*tree.DirectoryNode{
			{Name: "src", Folders: []*tree.DirectoryNode{
				{Name: "lib", Files: []string{"util.go"}},
			}},
		},
	}

	p := Project(root)
	want := []Row{
		{Path: "src", Name: "src", Kind: tree.KindDirectory, Depth: 0},
		{Path: "src/lib", Name: "lib", Kind: tree.KindDirectory, Depth: 1},
		{Path: "src/lib/util.go", Name: "util.go", Kind: tree.KindFile, Depth: 2},
	}
	if !reflect.DeepEqual(p.Rows, want) {
		t.Errorf("rows = %+v, want %+v", p.Rows, want)
	}
}

func TestProject_GapPerRow(t *testing.T) {
	p := Project(fixture())
	if len(p.Gaps) != len(p.Rows) {
		t.Fatalf("gaps = %d, rows = %d, want equal", len(p.Gaps), len(p.Rows))
	}
	for i := range p.Rows {
		if p.Gaps[i].Target != p.Rows[i].Path {
			t.Errorf("gap %d targets %q, want %q", i, p.Gaps[i].Target, p.Rows[i].Path)
		}
		if p.Gaps[i].Depth != p.Rows[i].Depth {
			t.Errorf("gap %d depth %d, want %d", i, p.Gaps[i].Depth, p.Rows[i].Depth)
		}
	}
}

func TestProject_CaseInsensitiveFolderSort(t *testing.T) {
	root := &tree.DirectoryNode{
		Folders: []*tree.DirectoryNode{
			{Name: "zeta"},
			{Name: "Alpha"},
			{Name: "beta"},
		},
	}
	want := []string{"Alpha", "beta", "zeta"}
	if got := names(Project(root)); !reflect.DeepEqual(got, want) {
		t.Errorf("folder order = %v, want %v", got, want)
	}
}

func TestProjectVisible_SkipsCollapsed(t *testing.T) {
	root := &tree.DirectoryNode{
		Folders: []*tree.DirectoryNode{
			{Name: "open", Files: []string{"seen.txt"}},
			{Name: "shut", Files: []string{"hidden.txt"}},
		},
	}

	c := NewCollapse()
	c.Set("shut", true)

	got := names(ProjectVisible(root, c))
	want := []string{"open", "seen.txt", "shut"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("visible rows = %v, want %v", got, want)
	}

	c.Toggle("shut") // expand again
	if got := len(ProjectVisible(root, c).Rows); got != 4 {
		t.Errorf("expanded rows = %d, want 4", got)
	}
}

func TestCollapse_StateTransitions(t *testing.T) {
	c := NewCollapse()
	if c.Collapsed("x") {
		t.Error("unknown path should be expanded")
	}
	if !c.Toggle("x") {
		t.Error("first toggle should collapse")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
	if c.Toggle("x") {
		t.Error("second toggle should expand")
	}
	c.Set("a", true)
	c.Set("b", true)
	c.Clear()
	if c.Collapsed("a") || c.Collapsed("b") {
		t.Error("Clear should expand everything")
	}
}
