package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "structree.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
listen    = "127.0.0.1:20490"
structure = "/tmp/proj.json"
autosave  = false
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:20490", cfg.Listen)
	assert.Equal(t, "/tmp/proj.json", cfg.Structure)
	assert.False(t, cfg.Autosave)
	// Unset attributes keep their defaults.
	assert.Equal(t, Default().Snapshots, cfg.Snapshots)
}

func TestLoad_AbsentAutosaveKeepsDefault(t *testing.T) {
	path := writeConfig(t, `listen = ":20490"`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Autosave, cfg.Autosave)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	assert.Error(t, err)
}

func TestDefault_Populated(t *testing.T) {
	cfg := Default()
	assert.NotEmpty(t, cfg.Structure)
	assert.NotEmpty(t, cfg.Snapshots)
	assert.True(t, cfg.Autosave)
}
