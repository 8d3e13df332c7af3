package tree

import "testing"

func TestSplitPath_Canonicalizes(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a/b/c", []string{"a", "b", "c"}},
		{"a//b/", []string{"a", "b"}},
		{"/a", []string{"a"}},
		{"", nil},
		{"/", nil},
		{"///", nil},
	}
	for _, c := range cases {
		got := SplitPath(c.in)
		if len(got) != len(c.want) {
			t.Errorf("SplitPath(%q) = %v, want %v", c.in, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("SplitPath(%q)[%d] = %q, want %q", c.in, i, got[i], c.want[i])
			}
		}
	}
}

func TestJoinPath_RoundTrip(t *testing.T) {
	if got := JoinPath(SplitPath("a//b/c/")); got != "a/b/c" {
		t.Errorf("JoinPath = %q, want %q", got, "a/b/c")
	}
	if got := JoinPath(nil); got != "" {
		t.Errorf("JoinPath(nil) = %q, want empty", got)
	}
}

func TestChildPath(t *testing.T) {
	if got := ChildPath("", "src"); got != "src" {
		t.Errorf("ChildPath root = %q", got)
	}
	if got := ChildPath("src", "lib"); got != "src/lib" {
		t.Errorf("ChildPath nested = %q", got)
	}
}

func TestDescend(t *testing.T) {
	root := &DirectoryNode{Folders: []*DirectoryNode{
		{Name: "a", Folders: []*DirectoryNode{{Name: "b"}}},
	}}

	if got := Descend(root, nil); got != root {
		t.Error("zero segments should resolve to the root")
	}
	if got := Descend(root, []string{"a", "b"}); got == nil || got.Name != "b" {
		t.Errorf("Descend(a/b) = %v", got)
	}
	if got := Descend(root, []string{"a", "missing"}); got != nil {
		t.Errorf("Descend of missing segment = %v, want nil", got)
	}
}
