package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-research/structree/internal/editor"
	"github.com/agentic-research/structree/internal/view"
)

// The edit verbs load a document, apply one engine operation and write
// the document back. A rejected operation (duplicate, missing path,
// collision) leaves the document untouched and exits non-zero.

var addDir bool

var addCmd = &cobra.Command{
	Use:   "add <structure.json> <path>",
	Short: "Insert a file or directory, creating missing intermediates",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDocument(args[0], func(ed *editor.Editor) error {
			kind := entryKind(addDir)
			if !ed.AddPath(args[1], kind) {
				return fmt.Errorf("no change: %s %q already exists or path is empty", kind, args[1])
			}
			return nil
		})
	},
}

var renameDir bool

var renameCmd = &cobra.Command{
	Use:   "rename <structure.json> <path> <new-name>",
	Short: "Rename an entry in place",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDocument(args[0], func(ed *editor.Editor) error {
			kind := entryKind(renameDir)
			if !ed.RenamePath(args[1], args[2], kind) {
				return fmt.Errorf("no change: %s %q not found or %q collides with a sibling", kind, args[1], args[2])
			}
			return nil
		})
	},
}

var deleteDir bool

var deleteCmd = &cobra.Command{
	Use:   "delete <structure.json> <path>",
	Short: "Remove an entry (directories drop their whole subtree)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDocument(args[0], func(ed *editor.Editor) error {
			kind := entryKind(deleteDir)
			if !ed.DeletePath(args[1], kind) {
				return fmt.Errorf("no change: %s %q not found", kind, args[1])
			}
			return nil
		})
	},
}

var moveDir bool

var moveCmd = &cobra.Command{
	Use:   "move <structure.json> <path> <new-parent>",
	Short: "Relocate an entry into another directory",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDocument(args[0], func(ed *editor.Editor) error {
			kind := entryKind(moveDir)
			if !ed.Move(args[1], args[2], kind) {
				return fmt.Errorf("no change: cannot move %s %q to %q", kind, args[1], args[2])
			}
			return nil
		})
	},
}

var showGaps bool

var showCmd = &cobra.Command{
	Use:   "show <structure.json>",
	Short: "Print the display projection of a structure document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := loadStructure(args[0])
		if err != nil {
			return err
		}
		fmt.Print(renderProjection(view.Project(root), showGaps))
		return nil
	},
}

// withDocument runs one mutation against a loaded document and persists
// the result only if it committed.
func withDocument(path string, fn func(ed *editor.Editor) error) error {
	root, err := loadStructure(path)
	if err != nil {
		return err
	}
	ed := editor.New(nil)
	ed.SetStructure(root)
	if err := fn(ed); err != nil {
		return err
	}
	return saveStructure(path, ed.Structure())
}

func init() {
	addCmd.Flags().BoolVar(&addDir, "dir", false, "Treat the path as a directory")
	renameCmd.Flags().BoolVar(&renameDir, "dir", false, "Treat the path as a directory")
	deleteCmd.Flags().BoolVar(&deleteDir, "dir", false, "Treat the path as a directory")
	moveCmd.Flags().BoolVar(&moveDir, "dir", false, "Treat the path as a directory")
	showCmd.Flags().BoolVar(&showGaps, "gaps", false, "Include drop-target gap markers")
	rootCmd.AddCommand(addCmd, renameCmd, deleteCmd, moveCmd, showCmd)
}
