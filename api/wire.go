// Package api defines the wire format for structure documents.
// A document is a single JSON DirectoryNode: the unnamed root.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// DirectoryNode represents one folder on the wire.
// Folders and Files preserve the order they were written in; display
// order is computed by the view projection, never stored.
type DirectoryNode struct {
	// Name of the folder. Empty (and omitted) for the root.
	Name string `json:"name,omitempty"`
	// Folders are the immediate child directories.
	Folders []DirectoryNode `json:"folders"`
	// Files are the immediate child file names.
	Files []string `json:"files"`
}

// Read decodes a structure document from r.
func Read(r io.Reader) (DirectoryNode, error) {
	var n DirectoryNode
	dec := json.NewDecoder(r)
	if err := dec.Decode(&n); err != nil {
		return DirectoryNode{}, fmt.Errorf("decode structure: %w", err)
	}
	return n, nil
}

// ReadFile decodes a structure document from a file.
func ReadFile(path string) (DirectoryNode, error) {
	f, err := os.Open(path)
	if err != nil {
		return DirectoryNode{}, fmt.Errorf("open structure %s: %w", path, err)
	}
	defer func() { _ = f.Close() }() // safe to ignore
	return Read(f)
}

// Write encodes the document to w, indented, with a trailing newline.
func (n DirectoryNode) Write(w io.Writer) error {
	data, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return fmt.Errorf("encode structure: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write structure: %w", err)
	}
	return nil
}

// WriteFile encodes the document to a file.
func (n DirectoryNode) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create structure %s: %w", path, err)
	}
	if err := n.Write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
