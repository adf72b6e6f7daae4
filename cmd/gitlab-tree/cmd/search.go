package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gitlabtree/internal/application/commands"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy search groups and projects",
	Long: `Search every group and project by name or full path, regardless of
which groups are expanded.

Results are ranked by relevance using fuzzy matching.

Examples:
  gitlab-tree search api
  gitlab-tree search platform/back --limit 5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		tree, _, err := acquireTree(ctx, false)
		if err != nil {
			return err
		}

		results, err := commands.NewSearchCommand(tree, args[0], searchLimit).Execute(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No results found")
			return nil
		}
		for _, r := range results {
			fmt.Fprintf(out, "[%s] %s  %s\n", strings.ToLower(r.Kind), r.Path, r.URL)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results (0 for all)")
	rootCmd.AddCommand(searchCmd)
}
