// Package config loads the CLI configuration from an HCL file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Config holds the tool-level settings. Every field is optional; zero
// values fall back to Default().
type Config struct {
	// Listen is the NFS server address for serve ("" = ephemeral port).
	Listen string `hcl:"listen,optional"`
	// Structure is the default structure document path.
	Structure string `hcl:"structure,optional"`
	// Snapshots is the snapshot database path.
	Snapshots string `hcl:"snapshots,optional"`
	// Autosave writes the document back after every committed mutation
	// while serving.
	Autosave bool `hcl:"autosave,optional"`
	// Control is the control block path for serve ("" = disabled).
	Control string `hcl:"control,optional"`
}

// Default returns the built-in settings.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := filepath.Join(home, ".agentic-research", "structree")
	return Config{
		Structure: filepath.Join(dir, "structure.json"),
		Snapshots: filepath.Join(dir, "snapshots.db"),
		Autosave:  true,
	}
}

// fileConfig mirrors Config with a pointer for the bool so an absent
// autosave attribute is distinguishable from an explicit false.
type fileConfig struct {
	Listen    string `hcl:"listen,optional"`
	Structure string `hcl:"structure,optional"`
	Snapshots string `hcl:"snapshots,optional"`
	Autosave  *bool  `hcl:"autosave,optional"`
	Control   string `hcl:"control,optional"`
}

// Load reads an HCL config file and overlays it on the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	var file fileConfig
	if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if file.Listen != "" {
		cfg.Listen = file.Listen
	}
	if file.Structure != "" {
		cfg.Structure = file.Structure
	}
	if file.Snapshots != "" {
		cfg.Snapshots = file.Snapshots
	}
	if file.Control != "" {
		cfg.Control = file.Control
	}
	if file.Autosave != nil {
		cfg.Autosave = *file.Autosave
	}
	return cfg, nil
}
