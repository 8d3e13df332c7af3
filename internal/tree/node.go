// Package tree defines the directory-structure model: a directly-nested
// tree of folders and file names, addressed by slash-delimited paths.
// Each DirectoryNode exclusively owns its children; no back-references.
package tree

import "github.com/agentic-research/structree/api"

// EntryKind distinguishes file entries from directory entries.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDirectory
)

func (k EntryKind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// ParseKind maps the wire spelling to an EntryKind.
// Accepts "file", "directory" and the short form "dir".
func ParseKind(s string) (EntryKind, bool) {
	switch s {
	case "file":
		return KindFile, true
	case "directory", "dir":
		return KindDirectory, true
	}
	return KindFile, false
}

// DirectoryNode is one folder: a name plus its immediate child folders
// and child file names. Both collections keep insertion order — display
// order is computed by the view projection, never stored here.
type DirectoryNode struct {
	Name    string
	Folders []*DirectoryNode
	Files   []string
}

// Folder returns the child directory with the given name, or nil.
// Matching is exact and case-sensitive.
func (n *DirectoryNode) Folder(name string) *DirectoryNode {
	for _, f := range n.Folders {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// HasFile reports whether the node has a file with exactly this name.
func (n *DirectoryNode) HasFile(name string) bool {
	for _, f := range n.Files {
		if f == name {
			return true
		}
	}
	return false
}

// Clone returns a deep, independent copy of the subtree.
func (n *DirectoryNode) Clone() *DirectoryNode {
	if n == nil {
		return nil
	}
	c := &DirectoryNode{Name: n.Name}
	if len(n.Folders) > 0 {
		c.Folders = make([]*DirectoryNode, len(n.Folders))
		for i, f := range n.Folders {
			c.Folders[i] = f.Clone()
		}
	}
	if len(n.Files) > 0 {
		c.Files = append([]string(nil), n.Files...)
	}
	return c
}

// Equal reports deep structural equality, including the stored order of
// folders and files.
func Equal(a, b *DirectoryNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name || len(a.Folders) != len(b.Folders) || len(a.Files) != len(b.Files) {
		return false
	}
	for i := range a.Files {
		if a.Files[i] != b.Files[i] {
			return false
		}
	}
	for i := range a.Folders {
		if !Equal(a.Folders[i], b.Folders[i]) {
			return false
		}
	}
	return true
}

// FromWire converts a wire document into a model tree.
func FromWire(w api.DirectoryNode) *DirectoryNode {
	n := &DirectoryNode{Name: w.Name}
	for _, f := range w.Folders {
		n.Folders = append(n.Folders, FromWire(f))
	}
	if len(w.Files) > 0 {
		n.Files = append([]string(nil), w.Files...)
	}
	return n
}

// Wire converts the subtree to its wire form. Folders and Files are
// always non-nil so the JSON carries [] rather than null.
func (n *DirectoryNode) Wire() api.DirectoryNode {
	w := api.DirectoryNode{
		Name:    n.Name,
		Folders: make([]api.DirectoryNode, 0, len(n.Folders)),
		Files:   make([]string, 0, len(n.Files)),
	}
	for _, f := range n.Folders {
		w.Folders = append(w.Folders, f.Wire())
	}
	w.Files = append(w.Files, n.Files...)
	return w
}
