package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/structree/internal/tree"
)

func fixture() *tree.DirectoryNode {
	return &tree.DirectoryNode{
		Folders: []*tree.DirectoryNode{
			{Name: "src", Files: []string{"main.go", "util.go"}},
			{Name: "docs", Files: []string{"guide.md"}},
		},
		Files: []string{"README.md"},
	}
}

func TestSelect_FolderNames(t *testing.T) {
	results, err := Select(fixture(), "$.folders[*].name")
	require.NoError(t, err)
	assert.Equal(t, []any{"src", "docs"}, results)
}

func TestSelect_AllFiles(t *testing.T) {
	results, err := Select(fixture(), "$..files[*]")
	require.NoError(t, err)
	assert.Len(t, results, 4)
	assert.Contains(t, results, "main.go")
	assert.Contains(t, results, "README.md")
}

func TestSelect_InvalidSelector(t *testing.T) {
	_, err := Select(fixture(), "$[")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	out := Format([]any{"a", "b"})
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "b")
}
