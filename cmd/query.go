package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-research/structree/internal/query"
)

var queryCmd = &cobra.Command{
	Use:   "query <structure.json> <jsonpath>",
	Short: "Evaluate a JSONPath selector against a structure document",
	Long: `Query runs a JSONPath expression over the document form of the
structure, e.g.

  structree query project.json '$.folders[*].name'
  structree query project.json '$..files[*]'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := loadStructure(args[0])
		if err != nil {
			return err
		}
		results, err := query.Select(root, args[1])
		if err != nil {
			return err
		}
		fmt.Println(query.Format(results))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
