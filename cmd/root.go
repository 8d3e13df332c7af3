// Package cmd wires the structree CLI: path-addressed edits over a JSON
// structure document, snapshot storage, an NFS serve mode and an MCP
// agent surface.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentic-research/structree/api"
	"github.com/agentic-research/structree/internal/config"
	"github.com/agentic-research/structree/internal/tree"
	"github.com/agentic-research/structree/internal/view"
)

const version = "0.2.0"

var (
	cfgPath string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:           "structree",
	Short:         "structree edits hierarchical project-structure documents",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgPath == "" {
			cfg = config.Default()
			return nil
		}
		var err error
		cfg, err = config.Load(cfgPath)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to HCL config file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadStructure reads a structure document into the model.
func loadStructure(path string) (*tree.DirectoryNode, error) {
	w, err := api.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return tree.FromWire(w), nil
}

// saveStructure writes the model back out as a document.
func saveStructure(path string, root *tree.DirectoryNode) error {
	return root.Wire().WriteFile(path)
}

// entryKind parses the shared --dir flag convention.
func entryKind(dir bool) tree.EntryKind {
	if dir {
		return tree.KindDirectory
	}
	return tree.KindFile
}

// renderProjection formats rows (and optionally their gaps) for output.
func renderProjection(p view.Projection, withGaps bool) string {
	var b strings.Builder
	for i, row := range p.Rows {
		if withGaps {
			fmt.Fprintf(&b, "%s--- gap before %s\n", strings.Repeat("  ", p.Gaps[i].Depth), p.Gaps[i].Target)
		}
		b.WriteString(strings.Repeat("  ", row.Depth))
		b.WriteString(row.Name)
		if row.Kind == tree.KindDirectory {
			b.WriteByte('/')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
