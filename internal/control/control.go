// Package control maintains a memory-mapped control block for a served
// structure. The serve command bumps the generation counter on every
// committed mutation, so external pollers can detect staleness without
// speaking NFS.
package control

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	ControlSize = 4096       // 1 page
	Magic       = 0x53545245 // 'STRE'
)

// Block is the mmap layout. Fixed-size so readers in any language can
// map it directly.
type Block struct {
	Magic      uint32
	Version    uint32
	Generation uint64 // Atomic
	Document   [256]byte
	Padding    [ControlSize - 272]byte // Pad to 4096 bytes
}

// Controller manages the memory-mapped control file.
type Controller struct {
	path string
	file *os.File
	data []byte
	ptr  *Block
}

// OpenOrCreate opens or creates a control file at the given path.
func OpenOrCreate(path string) (*Controller, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open control file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat: %w", err)
	}
	if info.Size() < ControlSize {
		if err := f.Truncate(ControlSize); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("truncate: %w", err)
		}
	}

	data, err := unix.Mmap(int(f.Fd()), 0, ControlSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("mmap: %w", err)
	}

	ptr := (*Block)(unsafe.Pointer(&data[0]))
	if ptr.Magic == 0 {
		ptr.Magic = Magic
		ptr.Version = 1
	} else if ptr.Magic != Magic {
		_ = unix.Munmap(data)
		_ = f.Close()
		return nil, fmt.Errorf("invalid magic: %x", ptr.Magic)
	}

	return &Controller{path: path, file: f, data: data, ptr: ptr}, nil
}

// Generation returns the current generation atomically.
func (c *Controller) Generation() uint64 {
	return atomic.LoadUint64(&c.ptr.Generation)
}

// Bump increments the generation and returns the new value.
func (c *Controller) Bump() uint64 {
	return atomic.AddUint64(&c.ptr.Generation, 1)
}

// SetDocument records which structure document this block tracks.
func (c *Controller) SetDocument(path string) error {
	if len(path) >= len(c.ptr.Document) {
		return fmt.Errorf("path too long (max %d)", len(c.ptr.Document)-1)
	}
	copy(c.ptr.Document[:], path)
	c.ptr.Document[len(path)] = 0 // null terminate
	return nil
}

// Document returns the tracked document path.
func (c *Controller) Document() string {
	b := c.ptr.Document[:]
	for i, v := range b {
		if v == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// Close unmaps and closes the control file.
func (c *Controller) Close() error {
	if err := unix.Munmap(c.data); err != nil {
		return err
	}
	return c.file.Close()
}
