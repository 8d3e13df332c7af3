// Package nfsmount serves a live structure as a browsable filesystem.
// It adapts the editor to billy.Filesystem for use with willscott/go-nfs:
// directories are the structure's folders, files are bare names with no
// content, and write operations map onto the editor's mutation surface.
package nfsmount

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/helper/chroot"

	"github.com/agentic-research/structree/internal/editor"
	"github.com/agentic-research/structree/internal/tree"
	"github.com/agentic-research/structree/internal/view"
)

var (
	errReadOnly  = fmt.Errorf("read-only filesystem")
	errNoContent = fmt.Errorf("structure entries have no content")
)

// TreeFS adapts an editor's live tree to billy.Filesystem. Reads take
// the editor's lock via View; writes go through the mutation engine, so
// every NFS-driven change fires the usual change notification.
type TreeFS struct {
	ed        *editor.Editor
	mountTime time.Time
	writable  bool
}

// NewTreeFS creates a read-only filesystem over ed.
func NewTreeFS(ed *editor.Editor) *TreeFS {
	return &TreeFS{ed: ed, mountTime: time.Now()}
}

// SetWritable enables the mutating operations (Create, MkdirAll, Remove,
// Rename).
func (fs *TreeFS) SetWritable(w bool) {
	fs.writable = w
}

// --- billy.Basic ---

func (fs *TreeFS) Create(filename string) (billy.File, error) {
	return fs.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
}

func (fs *TreeFS) Open(filename string) (billy.File, error) {
	return fs.OpenFile(filename, os.O_RDONLY, 0)
}

func (fs *TreeFS) OpenFile(filename string, flag int, perm os.FileMode) (billy.File, error) {
	segs := tree.SplitPath(filename)
	if len(segs) == 0 {
		return nil, &os.PathError{Op: "open", Path: filename, Err: fmt.Errorf("is a directory")}
	}

	writing := flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_TRUNC) != 0
	if writing && !fs.writable {
		return nil, errReadOnly
	}

	st := fs.stat(segs)
	if st.isDir {
		return nil, &os.PathError{Op: "open", Path: filename, Err: fmt.Errorf("is a directory")}
	}
	if !st.ok {
		if flag&os.O_CREATE == 0 {
			return nil, &os.PathError{Op: "open", Path: filename, Err: os.ErrNotExist}
		}
		// CREATE of a new name commits an AddPath; intermediates included.
		if !fs.ed.AddPath(tree.JoinPath(segs), tree.KindFile) {
			return nil, &os.PathError{Op: "open", Path: filename, Err: os.ErrInvalid}
		}
	}
	return &treeFile{name: tree.JoinPath(segs)}, nil
}

func (fs *TreeFS) Stat(filename string) (os.FileInfo, error) {
	return fs.Lstat(filename)
}

// Rename maps onto the editor: a changed leaf within the same parent is
// a RenamePath, a changed parent with the same leaf is a Move. A single
// call that changes both would need two separate commits, so it is
// rejected.
func (fs *TreeFS) Rename(oldpath, newpath string) error {
	if !fs.writable {
		return errReadOnly
	}
	oldSegs, newSegs := tree.SplitPath(oldpath), tree.SplitPath(newpath)
	if len(oldSegs) == 0 || len(newSegs) == 0 {
		return &os.PathError{Op: "rename", Path: oldpath, Err: os.ErrInvalid}
	}

	st := fs.stat(oldSegs)
	if !st.ok {
		return &os.PathError{Op: "rename", Path: oldpath, Err: os.ErrNotExist}
	}
	kind := tree.KindFile
	if st.isDir {
		kind = tree.KindDirectory
	}

	oldLeaf, newLeaf := oldSegs[len(oldSegs)-1], newSegs[len(newSegs)-1]
	oldParent := tree.JoinPath(oldSegs[:len(oldSegs)-1])
	newParent := tree.JoinPath(newSegs[:len(newSegs)-1])

	switch {
	case oldParent == newParent:
		if !fs.ed.RenamePath(tree.JoinPath(oldSegs), newLeaf, kind) {
			return &os.PathError{Op: "rename", Path: oldpath, Err: os.ErrExist}
		}
	case oldLeaf == newLeaf:
		if !fs.ed.Move(tree.JoinPath(oldSegs), newParent, kind) {
			return &os.PathError{Op: "rename", Path: oldpath, Err: os.ErrInvalid}
		}
	default:
		return &os.PathError{Op: "rename", Path: oldpath, Err: fmt.Errorf("move and rename in one step not supported")}
	}
	return nil
}

func (fs *TreeFS) Remove(filename string) error {
	if !fs.writable {
		return errReadOnly
	}
	segs := tree.SplitPath(filename)
	if len(segs) == 0 {
		return &os.PathError{Op: "remove", Path: filename, Err: os.ErrInvalid}
	}
	st := fs.stat(segs)
	if !st.ok {
		return &os.PathError{Op: "remove", Path: filename, Err: os.ErrNotExist}
	}
	kind := tree.KindFile
	if st.isDir {
		kind = tree.KindDirectory
	}
	if !fs.ed.DeletePath(tree.JoinPath(segs), kind) {
		return &os.PathError{Op: "remove", Path: filename, Err: os.ErrNotExist}
	}
	return nil
}

func (fs *TreeFS) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// --- billy.TempFile ---

func (fs *TreeFS) TempFile(dir, prefix string) (billy.File, error) {
	return nil, billy.ErrNotSupported
}

// --- billy.Dir ---

func (fs *TreeFS) ReadDir(path string) ([]os.FileInfo, error) {
	segs := tree.SplitPath(path)

	var infos []os.FileInfo
	found := false
	fs.ed.View(func(root *tree.DirectoryNode) {
		dir := tree.Descend(root, segs)
		if dir == nil {
			return
		}
		found = true
		// Same display order as the projection: folders first.
		for _, f := range view.SortedFolders(dir) {
			infos = append(infos, fs.dirInfo(f.Name))
		}
		for _, name := range view.SortedFiles(dir) {
			infos = append(infos, fs.fileInfo(name))
		}
	})
	if !found {
		return nil, &os.PathError{Op: "readdir", Path: path, Err: os.ErrNotExist}
	}
	return infos, nil
}

func (fs *TreeFS) MkdirAll(filename string, perm os.FileMode) error {
	if !fs.writable {
		return errReadOnly
	}
	segs := tree.SplitPath(filename)
	if len(segs) == 0 {
		return nil // root always exists
	}
	if st := fs.stat(segs); st.ok && st.isDir {
		return nil
	}
	if !fs.ed.AddPath(tree.JoinPath(segs), tree.KindDirectory) {
		return &os.PathError{Op: "mkdir", Path: filename, Err: os.ErrExist}
	}
	return nil
}

// --- billy.Symlink ---

func (fs *TreeFS) Lstat(filename string) (os.FileInfo, error) {
	segs := tree.SplitPath(filename)
	if len(segs) == 0 {
		return fs.dirInfo("/"), nil
	}
	st := fs.stat(segs)
	if !st.ok {
		return nil, &os.PathError{Op: "lstat", Path: filename, Err: os.ErrNotExist}
	}
	if st.isDir {
		return fs.dirInfo(segs[len(segs)-1]), nil
	}
	return fs.fileInfo(segs[len(segs)-1]), nil
}

func (fs *TreeFS) Symlink(target, link string) error {
	return billy.ErrNotSupported
}

func (fs *TreeFS) Readlink(link string) (string, error) {
	return "", billy.ErrNotSupported
}

// --- billy.Chroot ---

func (fs *TreeFS) Chroot(path string) (billy.Filesystem, error) {
	return chroot.New(fs, path), nil
}

func (fs *TreeFS) Root() string {
	return "/"
}

// --- billy.Capable ---

func (fs *TreeFS) Capabilities() billy.Capability {
	caps := billy.ReadCapability | billy.SeekCapability
	if fs.writable {
		caps |= billy.WriteCapability
	}
	return caps
}

// --- internals ---

type entryStat struct {
	ok    bool
	isDir bool
}

// stat resolves one entry under the editor lock. A folder shadows a
// file of the same name for stat purposes; the editor keeps them as
// independent entries either way.
func (fs *TreeFS) stat(segs []string) entryStat {
	var st entryStat
	fs.ed.View(func(root *tree.DirectoryNode) {
		parent := tree.Descend(root, segs[:len(segs)-1])
		if parent == nil {
			return
		}
		leaf := segs[len(segs)-1]
		if parent.Folder(leaf) != nil {
			st = entryStat{ok: true, isDir: true}
		} else if parent.HasFile(leaf) {
			st = entryStat{ok: true}
		}
	})
	return st
}

func (fs *TreeFS) dirInfo(name string) os.FileInfo {
	return &staticFileInfo{name: name, mode: os.ModeDir | 0o755, modTime: fs.mountTime}
}

func (fs *TreeFS) fileInfo(name string) os.FileInfo {
	mode := os.FileMode(0o444)
	if fs.writable {
		mode = 0o644
	}
	return &staticFileInfo{name: name, mode: mode, modTime: fs.mountTime}
}

// staticFileInfo implements os.FileInfo with static values.
type staticFileInfo struct {
	name    string
	size    int64
	mode    os.FileMode
	modTime time.Time
}

func (fi *staticFileInfo) Name() string       { return fi.name }
func (fi *staticFileInfo) Size() int64        { return fi.size }
func (fi *staticFileInfo) Mode() os.FileMode  { return fi.mode }
func (fi *staticFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *staticFileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi *staticFileInfo) Sys() interface{}   { return nil }

// Compile-time interface checks.
var (
	_ billy.Filesystem = (*TreeFS)(nil)
	_ billy.Capable    = (*TreeFS)(nil)
)
