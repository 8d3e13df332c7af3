// Package query evaluates JSONPath selectors against the wire form of a
// structure, for scripting and inspection of saved documents.
package query

import (
	"encoding/json"
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/agentic-research/structree/internal/tree"
)

// Select runs a JSONPath expression over the JSON document form of root.
// E.g. "$.folders[*].name" yields the top-level folder names.
func Select(root *tree.DirectoryNode, selector string) ([]any, error) {
	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", selector, err)
	}

	// Round-trip through the wire codec so selectors address exactly the
	// published document shape (name/folders/files), not the model types.
	data, err := json.Marshal(root.Wire())
	if err != nil {
		return nil, fmt.Errorf("encode structure: %w", err)
	}
	doc, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse structure document: %w", err)
	}

	return x.Get(doc), nil
}

// Format renders query results as indented JSON.
func Format(results []any) string {
	return oj.JSON(results, 2)
}
