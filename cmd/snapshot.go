package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-research/structree/internal/store"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage structure snapshots in the snapshot database",
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <structure.json> <name>",
	Short: "Save a document as a named snapshot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := loadStructure(args[0])
		if err != nil {
			return err
		}
		s, err := store.Open(cfg.Snapshots)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }() // safe to ignore
		if err := s.Save(args[1], root); err != nil {
			return err
		}
		fmt.Printf("saved %q to %s\n", args[1], cfg.Snapshots)
		return nil
	},
}

var snapshotLoadCmd = &cobra.Command{
	Use:   "load <name> <structure.json>",
	Short: "Write a named snapshot out as a document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open(cfg.Snapshots)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }() // safe to ignore
		root, err := s.Load(args[0])
		if err != nil {
			return err
		}
		return saveStructure(args[1], root)
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved snapshots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open(cfg.Snapshots)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }() // safe to ignore
		snaps, err := s.List()
		if err != nil {
			return err
		}
		for _, snap := range snaps {
			fmt.Printf("%s\t%s\n", snap.SavedAt.Format("2006-01-02 15:04:05"), snap.Name)
		}
		return nil
	},
}

var snapshotRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a saved snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open(cfg.Snapshots)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }() // safe to ignore
		return s.Delete(args[0])
	},
}

func init() {
	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotLoadCmd, snapshotListCmd, snapshotRmCmd)
	rootCmd.AddCommand(snapshotCmd)
}
