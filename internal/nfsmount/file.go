package nfsmount

import (
	"io"

	billy "github.com/go-git/go-billy/v5"
)

// treeFile implements billy.File for a structure entry. Entries are
// names only: every read hits EOF immediately and writes are rejected,
// but truncate-to-zero succeeds so CREATE/SETATTR cycles from NFS
// clients (touch, editors probing the file) complete cleanly.
type treeFile struct {
	name string
}

func (f *treeFile) Name() string { return f.name }

func (f *treeFile) Read(p []byte) (int, error) {
	return 0, io.EOF
}

func (f *treeFile) ReadAt(p []byte, off int64) (int, error) {
	return 0, io.EOF
}

func (f *treeFile) Seek(offset int64, whence int) (int64, error) {
	return 0, nil
}

func (f *treeFile) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return 0, errNoContent
}

func (f *treeFile) Truncate(size int64) error {
	if size == 0 {
		return nil
	}
	return errNoContent
}

func (f *treeFile) Lock() error   { return nil }
func (f *treeFile) Unlock() error { return nil }
func (f *treeFile) Close() error  { return nil }

var _ billy.File = (*treeFile)(nil)
