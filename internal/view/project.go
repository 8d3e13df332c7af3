// Package view computes the display projection of a structure tree:
// a pure, ordered list of rows plus the insertion gaps that drag-and-drop
// handling addresses as drop targets. It never mutates the tree and never
// depends on the stored child order.
package view

import (
	"sort"
	"strings"

	"github.com/agentic-research/structree/internal/tree"
)

// Row is one renderable line.
type Row struct {
	Path  string
	Name  string
	Kind  tree.EntryKind
	Depth int
}

// Gap marks the insertion point immediately ahead of one row. Target is
// the row's canonical path; a drop on the gap relocates the dragged
// entry into the target row's parent.
type Gap struct {
	Target string
	Depth  int
}

// Projection pairs rows with their gaps: Gaps[i] sits ahead of Rows[i].
type Projection struct {
	Rows []Row
	Gaps []Gap
}

// Project renders the whole tree. Within each directory, folders come
// first in case-insensitive lexicographic order, then files in plain
// lexicographic order. Repeated calls on an unchanged tree are identical.
func Project(root *tree.DirectoryNode) Projection {
	var p Projection
	walk(&p, root, "", 0, nil)
	return p
}

// ProjectVisible renders the tree with collapsed folders' children
// omitted. The collapsed rows themselves still appear.
func ProjectVisible(root *tree.DirectoryNode, c *Collapse) Projection {
	var p Projection
	walk(&p, root, "", 0, c)
	return p
}

func walk(p *Projection, dir *tree.DirectoryNode, prefix string, depth int, c *Collapse) {
	for _, f := range SortedFolders(dir) {
		path := tree.ChildPath(prefix, f.Name)
		emit(p, Row{Path: path, Name: f.Name, Kind: tree.KindDirectory, Depth: depth})
		if c == nil || !c.Collapsed(path) {
			walk(p, f, path, depth+1, c)
		}
	}
	for _, name := range SortedFiles(dir) {
		emit(p, Row{Path: tree.ChildPath(prefix, name), Name: name, Kind: tree.KindFile, Depth: depth})
	}
}

func emit(p *Projection, r Row) {
	p.Gaps = append(p.Gaps, Gap{Target: r.Path, Depth: r.Depth})
	p.Rows = append(p.Rows, r)
}

// SortedFolders returns dir's child folders in display order without
// touching the stored slice. Case-insensitive, with the raw name as the
// tie-breaker so the order is total.
func SortedFolders(dir *tree.DirectoryNode) []*tree.DirectoryNode {
	folders := append([]*tree.DirectoryNode(nil), dir.Folders...)
	sort.Slice(folders, func(i, j int) bool {
		li, lj := strings.ToLower(folders[i].Name), strings.ToLower(folders[j].Name)
		if li != lj {
			return li < lj
		}
		return folders[i].Name < folders[j].Name
	})
	return folders
}

// SortedFiles returns dir's file names in plain lexicographic order.
func SortedFiles(dir *tree.DirectoryNode) []string {
	files := append([]string(nil), dir.Files...)
	sort.Strings(files)
	return files
}
