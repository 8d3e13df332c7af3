package view

import "github.com/RoaringBitmap/roaring"

// Collapse tracks which folder paths are collapsed in the rendered view.
// Paths are interned to dense uint32 IDs and membership lives in a
// roaring bitmap, so the set stays cheap for large trees and survives
// reprojection unchanged. This is view state only — it is never written
// into the tree and mutations elsewhere do not consult it.
type Collapse struct {
	ids  map[string]uint32
	next uint32
	set  *roaring.Bitmap
}

func NewCollapse() *Collapse {
	return &Collapse{
		ids: make(map[string]uint32),
		set: roaring.New(),
	}
}

// intern assigns a stable ID to path, allocating on first sight.
func (c *Collapse) intern(path string) uint32 {
	id, ok := c.ids[path]
	if !ok {
		id = c.next
		c.next++
		c.ids[path] = id
	}
	return id
}

// Toggle flips the collapsed state of path and returns the new state.
func (c *Collapse) Toggle(path string) bool {
	id := c.intern(path)
	if c.set.Contains(id) {
		c.set.Remove(id)
		return false
	}
	c.set.Add(id)
	return true
}

// Set forces the collapsed state of path.
func (c *Collapse) Set(path string, collapsed bool) {
	id := c.intern(path)
	if collapsed {
		c.set.Add(id)
	} else {
		c.set.Remove(id)
	}
}

// Collapsed reports whether path is collapsed. Unknown paths are
// expanded and are not interned by the query.
func (c *Collapse) Collapsed(path string) bool {
	id, ok := c.ids[path]
	return ok && c.set.Contains(id)
}

// Clear expands everything.
func (c *Collapse) Clear() {
	c.set.Clear()
}

// Len returns the number of collapsed paths.
func (c *Collapse) Len() int {
	return int(c.set.GetCardinality())
}
