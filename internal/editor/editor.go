// Package editor is the mutation engine for a structure tree: path-addressed
// add, rename, delete and relocate operations over a single exclusively-owned
// root, with a synchronous change callback fired after every committed
// mutation. Every operation either commits (returns true, callback fires
// once) or is a no-op (returns false, tree untouched, no callback).
package editor

import (
	"strings"
	"sync"

	"github.com/agentic-research/structree/internal/tree"
)

// ChangeFunc receives the post-mutation root. The tree is the live one,
// not a copy; recipients must treat it as read-only. It is safe to issue
// new mutations from inside the callback — the in-flight mutation has
// already committed and released the engine lock.
type ChangeFunc func(root *tree.DirectoryNode)

// dragState is the explicit record of an in-progress drag: the dragged
// row's canonical segments and its kind. Never ambient, never global.
type dragState struct {
	segs []string
	kind tree.EntryKind
}

// Editor owns the live tree. All mutating calls serialize behind one
// mutex so a partially applied path resolution is never observable.
type Editor struct {
	mu       sync.Mutex
	root     *tree.DirectoryNode
	onChange ChangeFunc
	drag     *dragState
}

// New creates an editor around an empty root. The callback is fixed at
// construction; pass nil for no notifications.
func New(onChange ChangeFunc) *Editor {
	return &Editor{root: &tree.DirectoryNode{}, onChange: onChange}
}

// SetStructure replaces the live tree with a deep copy of root.
// It is the source of truth being set, not a delta — no notification.
func (e *Editor) SetStructure(root *tree.DirectoryNode) {
	clone := root.Clone()
	if clone == nil {
		clone = &tree.DirectoryNode{}
	}
	clone.Name = ""
	e.mu.Lock()
	e.root = clone
	e.drag = nil
	e.mu.Unlock()
}

// Structure returns the live root. Callers must not mutate it; the
// mutation surface is AddPath/RenamePath/DeletePath/CompleteDrop.
func (e *Editor) Structure() *tree.DirectoryNode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.root
}

// View runs fn with the live root while holding the engine lock, for
// readers that race with a concurrent mutator (e.g. the mount layer).
// fn must not mutate the tree or call back into the editor.
func (e *Editor) View(fn func(root *tree.DirectoryNode)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.root)
}

// AddPath inserts a file or directory at path, creating missing
// intermediate directories along the way. Returns false if the path is
// empty or an entry of the same kind and name already exists at the leaf.
func (e *Editor) AddPath(path string, kind tree.EntryKind) bool {
	segs := tree.SplitPath(path)
	if len(segs) == 0 {
		return false
	}

	e.mu.Lock()
	dir := e.root
	for _, s := range segs[:len(segs)-1] {
		child := dir.Folder(s)
		if child == nil {
			child = &tree.DirectoryNode{Name: s}
			dir.Folders = append(dir.Folders, child)
		}
		dir = child
	}

	leaf := segs[len(segs)-1]
	switch kind {
	case tree.KindDirectory:
		if dir.Folder(leaf) != nil {
			e.mu.Unlock()
			return false
		}
		dir.Folders = append(dir.Folders, &tree.DirectoryNode{Name: leaf})
	default:
		if dir.HasFile(leaf) {
			e.mu.Unlock()
			return false
		}
		dir.Files = append(dir.Files, leaf)
	}
	e.mu.Unlock()

	e.notify()
	return true
}

// RenamePath renames the entry at oldPath to newName in place. Returns
// false if the path cannot be resolved, newName is not a single valid
// segment, or a same-kind sibling already carries newName (renaming must
// not break per-directory name uniqueness).
func (e *Editor) RenamePath(oldPath, newName string, kind tree.EntryKind) bool {
	segs := tree.SplitPath(oldPath)
	if len(segs) == 0 || newName == "" || strings.Contains(newName, "/") {
		return false
	}

	e.mu.Lock()
	parent := tree.Descend(e.root, segs[:len(segs)-1])
	if parent == nil {
		e.mu.Unlock()
		return false
	}

	leaf := segs[len(segs)-1]
	switch kind {
	case tree.KindDirectory:
		node := parent.Folder(leaf)
		if node == nil || newName == leaf || parent.Folder(newName) != nil {
			e.mu.Unlock()
			return false
		}
		node.Name = newName
	default:
		idx := -1
		for i, f := range parent.Files {
			if f == leaf {
				idx = i
				break
			}
		}
		if idx < 0 || newName == leaf || parent.HasFile(newName) {
			e.mu.Unlock()
			return false
		}
		parent.Files[idx] = newName
	}
	e.mu.Unlock()

	e.notify()
	return true
}

// DeletePath removes the entry at path. Deleting a directory cuts its
// entire subtree. Returns false if the entry is not found.
func (e *Editor) DeletePath(path string, kind tree.EntryKind) bool {
	segs := tree.SplitPath(path)
	if len(segs) == 0 {
		return false
	}

	e.mu.Lock()
	parent := tree.Descend(e.root, segs[:len(segs)-1])
	if parent == nil || !detach(parent, segs[len(segs)-1], kind) {
		e.mu.Unlock()
		return false
	}
	e.mu.Unlock()

	e.notify()
	return true
}

// Move relocates the entry at path into the directory at newParent,
// keeping its name. The entry lands at the end of the destination
// collection; display position is the projection's concern. Returns
// false when the source or destination cannot be resolved, the
// destination is inside the moved subtree, the destination equals the
// current parent, or a same-kind name collision would result.
func (e *Editor) Move(path, newParent string, kind tree.EntryKind) bool {
	segs := tree.SplitPath(path)
	if len(segs) == 0 {
		return false
	}
	e.mu.Lock()
	ok := e.moveLocked(segs, tree.SplitPath(newParent), kind)
	e.mu.Unlock()

	if ok {
		e.notify()
	}
	return ok
}

// BeginDrag records path as the dragged row. Returns false if nothing
// resolvable is at path; any previous drag is discarded either way.
func (e *Editor) BeginDrag(path string, kind tree.EntryKind) bool {
	segs := tree.SplitPath(path)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.drag = nil
	if len(segs) == 0 {
		return false
	}
	parent := tree.Descend(e.root, segs[:len(segs)-1])
	if parent == nil {
		return false
	}
	leaf := segs[len(segs)-1]
	if kind == tree.KindDirectory {
		if parent.Folder(leaf) == nil {
			return false
		}
	} else if !parent.HasFile(leaf) {
		return false
	}
	e.drag = &dragState{segs: segs, kind: kind}
	return true
}

// DragPath returns the in-progress drag, if any.
func (e *Editor) DragPath() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.drag == nil {
		return "", false
	}
	return tree.JoinPath(e.drag.segs), true
}

// CancelDrag discards any in-progress drag without touching the tree.
func (e *Editor) CancelDrag() {
	e.mu.Lock()
	e.drag = nil
	e.mu.Unlock()
}

// CompleteDrop relocates the dragged entry to the gap identified by
// targetPath: it becomes a child of the target row's parent (the empty
// target addresses the root). The drag is consumed whether or not the
// drop commits. Dropping into the current parent changes nothing — the
// projection recomputes display order anyway — and is a no-op.
func (e *Editor) CompleteDrop(targetPath string) bool {
	e.mu.Lock()
	drag := e.drag
	e.drag = nil
	if drag == nil {
		e.mu.Unlock()
		return false
	}

	targetSegs := tree.SplitPath(targetPath)
	var destSegs []string
	if len(targetSegs) > 0 {
		destSegs = targetSegs[:len(targetSegs)-1]
	}
	ok := e.moveLocked(drag.segs, destSegs, drag.kind)
	e.mu.Unlock()

	if ok {
		e.notify()
	}
	return ok
}

// moveLocked detaches segs from its parent and attaches it under
// destSegs. Caller holds e.mu.
func (e *Editor) moveLocked(segs, destSegs []string, kind tree.EntryKind) bool {
	// A directory must never move into its own subtree (I3: no cycles).
	if kind == tree.KindDirectory && hasPrefix(destSegs, segs) {
		return false
	}
	srcParent := tree.Descend(e.root, segs[:len(segs)-1])
	if srcParent == nil {
		return false
	}
	dest := tree.Descend(e.root, destSegs)
	if dest == nil || dest == srcParent {
		return false
	}

	leaf := segs[len(segs)-1]
	switch kind {
	case tree.KindDirectory:
		node := srcParent.Folder(leaf)
		if node == nil || dest.Folder(leaf) != nil {
			return false
		}
		detach(srcParent, leaf, kind)
		dest.Folders = append(dest.Folders, node)
	default:
		if !srcParent.HasFile(leaf) || dest.HasFile(leaf) {
			return false
		}
		detach(srcParent, leaf, kind)
		dest.Files = append(dest.Files, leaf)
	}
	return true
}

// detach removes the named entry from parent's matching collection.
func detach(parent *tree.DirectoryNode, name string, kind tree.EntryKind) bool {
	if kind == tree.KindDirectory {
		for i, f := range parent.Folders {
			if f.Name == name {
				parent.Folders = append(parent.Folders[:i], parent.Folders[i+1:]...)
				return true
			}
		}
		return false
	}
	for i, f := range parent.Files {
		if f == name {
			parent.Files = append(parent.Files[:i], parent.Files[i+1:]...)
			return true
		}
	}
	return false
}

// hasPrefix reports whether segs starts with prefix.
func hasPrefix(segs, prefix []string) bool {
	if len(segs) < len(prefix) {
		return false
	}
	for i, s := range prefix {
		if segs[i] != s {
			return false
		}
	}
	return true
}

// notify fires the change callback with the committed tree. Called
// outside the lock so the callback may issue follow-up mutations.
func (e *Editor) notify() {
	if e.onChange == nil {
		return
	}
	e.mu.Lock()
	root := e.root
	e.mu.Unlock()
	e.onChange(root)
}
