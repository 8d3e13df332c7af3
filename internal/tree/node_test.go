package tree

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestClone_Independent(t *testing.T) {
	orig := &DirectoryNode{
		Folders: []*DirectoryNode{
			{Name: "src", Files: []string{"main.go"}},
		},
		Files: []string{"README.md"},
	}

	c := orig.Clone()
	if !Equal(orig, c) {
		t.Fatal("clone should be structurally equal to the original")
	}

	c.Folders[0].Name = "pkg"
	c.Files[0] = "LICENSE"
	if orig.Folders[0].Name != "src" || orig.Files[0] != "README.md" {
		t.Error("mutating the clone leaked into the original")
	}
}

func TestEqual_OrderSensitive(t *testing.T) {
	a := &DirectoryNode{Files: []string{"x", "y"}}
	b := &DirectoryNode{Files: []string{"y", "x"}}
	if Equal(a, b) {
		t.Error("Equal must respect stored file order")
	}
}

func TestWire_EmptyCollectionsNotNull(t *testing.T) {
	root := &DirectoryNode{}
	data, err := json.Marshal(root.Wire())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if strings.Contains(s, "null") {
		t.Errorf("wire JSON carries null collections: %s", s)
	}
	if strings.Contains(s, `"name"`) {
		t.Errorf("root name should be omitted: %s", s)
	}
}

func TestWire_RoundTrip(t *testing.T) {
	root := &DirectoryNode{
		Folders: []*DirectoryNode{
			{Name: "b"},
			{Name: "A", Files: []string{"z", "a"}},
		},
		Files: []string{"y", "x"},
	}
	back := FromWire(root.Wire())
	if !Equal(root, back) {
		t.Error("wire round trip changed the tree")
	}
}

func TestParseKind(t *testing.T) {
	if k, ok := ParseKind("directory"); !ok || k != KindDirectory {
		t.Error("directory should parse")
	}
	if k, ok := ParseKind("dir"); !ok || k != KindDirectory {
		t.Error("dir should parse")
	}
	if k, ok := ParseKind("file"); !ok || k != KindFile {
		t.Error("file should parse")
	}
	if _, ok := ParseKind("folder"); ok {
		t.Error("unknown kind should not parse")
	}
}
