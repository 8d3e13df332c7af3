package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/agentic-research/structree/internal/editor"
	"github.com/agentic-research/structree/internal/tree"
	"github.com/agentic-research/structree/internal/view"
)

var agentCmd = &cobra.Command{
	Use:   "agent <structure.json>",
	Short: "Expose the structure editor as MCP tools over stdio",
	Long: `Agent runs an MCP (Model Context Protocol) server on stdio so LLM
agents can edit a structure document through the mutation engine. Every
committed mutation is written back to the document immediately.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAgent(args[0])
	},
}

func runAgent(docPath string) error {
	root, err := loadStructure(docPath)
	if err != nil {
		return err
	}
	ed := editor.New(func(r *tree.DirectoryNode) {
		if err := saveStructure(docPath, r); err != nil {
			log.Printf("save %s: %v", docPath, err)
		}
	})
	ed.SetStructure(root)

	s := server.NewMCPServer("structree", version)

	s.AddTool(mcp.NewTool("add_path",
		mcp.WithDescription("Insert a file or directory at a slash-delimited path, creating missing intermediate directories."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the new entry, e.g. src/lib/util.go")),
		mcp.WithString("kind", mcp.Description("file or directory (default file)")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, kind, err := pathAndKind(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !ed.AddPath(path, kind) {
			return mcp.NewToolResultError(fmt.Sprintf("no change: %s %q already exists or path is empty", kind, path)), nil
		}
		return mcp.NewToolResultText("added " + path), nil
	})

	s.AddTool(mcp.NewTool("rename_path",
		mcp.WithDescription("Rename an entry in place. Rejected if the new name collides with a sibling of the same kind."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the entry to rename")),
		mcp.WithString("new_name", mcp.Required(), mcp.Description("Replacement name (single segment, no slashes)")),
		mcp.WithString("kind", mcp.Description("file or directory (default file)")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, kind, err := pathAndKind(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		newName, err := req.RequireString("new_name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !ed.RenamePath(path, newName, kind) {
			return mcp.NewToolResultError(fmt.Sprintf("no change: %s %q not found or %q collides", kind, path, newName)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("renamed %s to %s", path, newName)), nil
	})

	s.AddTool(mcp.NewTool("delete_path",
		mcp.WithDescription("Remove an entry. Deleting a directory removes its whole subtree."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the entry to remove")),
		mcp.WithString("kind", mcp.Description("file or directory (default file)")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, kind, err := pathAndKind(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !ed.DeletePath(path, kind) {
			return mcp.NewToolResultError(fmt.Sprintf("no change: %s %q not found", kind, path)), nil
		}
		return mcp.NewToolResultText("deleted " + path), nil
	})

	s.AddTool(mcp.NewTool("move_path",
		mcp.WithDescription("Relocate an entry into another directory, keeping its name."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the entry to move")),
		mcp.WithString("new_parent", mcp.Required(), mcp.Description("Destination directory path; empty means the root")),
		mcp.WithString("kind", mcp.Description("file or directory (default file)")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, kind, err := pathAndKind(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		newParent := req.GetString("new_parent", "")
		if !ed.Move(path, newParent, kind) {
			return mcp.NewToolResultError(fmt.Sprintf("no change: cannot move %s %q to %q", kind, path, newParent)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("moved %s to %s", path, newParent)), nil
	})

	s.AddTool(mcp.NewTool("view",
		mcp.WithDescription("Render the display projection: folders case-insensitive-sorted before files, indented by depth."),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(renderProjection(view.Project(ed.Structure()), false)), nil
	})

	s.AddTool(mcp.NewTool("structure",
		mcp.WithDescription("Return the structure document as JSON (name/folders/files)."),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, err := json.MarshalIndent(ed.Structure().Wire(), "", "  ")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	})

	return server.ServeStdio(s)
}

// pathAndKind extracts the common path/kind tool arguments.
func pathAndKind(req mcp.CallToolRequest) (string, tree.EntryKind, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return "", tree.KindFile, err
	}
	kindArg := req.GetString("kind", "file")
	kind, ok := tree.ParseKind(kindArg)
	if !ok {
		return "", tree.KindFile, fmt.Errorf("unknown kind %q (want file or directory)", kindArg)
	}
	return path, kind, nil
}

func init() {
	rootCmd.AddCommand(agentCmd)
}
