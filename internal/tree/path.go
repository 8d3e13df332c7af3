package tree

import "strings"

// Path helpers shared by the editor, the view projection and the mount
// layer. A path is a slash-delimited sequence of non-empty segments;
// leading, trailing and duplicate separators carry no meaning.

// SplitPath canonicalizes a path into its segments.
// "a//b/" splits to ["a", "b"]; the empty path (the root) splits to nil.
func SplitPath(path string) []string {
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// JoinPath is the inverse of SplitPath for canonical segments.
func JoinPath(segs []string) string {
	return strings.Join(segs, "/")
}

// ChildPath extends a canonical path by one segment.
func ChildPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

// Descend resolves canonical segments against a root, walking Folders by
// name one segment at a time. Returns nil if any segment is missing.
// Zero segments resolve to the root itself.
func Descend(root *DirectoryNode, segs []string) *DirectoryNode {
	dir := root
	for _, s := range segs {
		if dir = dir.Folder(s); dir == nil {
			return nil
		}
	}
	return dir
}
