package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gitlabtree/internal/application/commands"
)

var detailsCmd = &cobra.Command{
	Use:   "details <path>",
	Short: "Show the details of one group or project",
	Long: `Print name, kind, path, visibility, URL and last activity for the group
or project at the given full path.

Example:
  gitlab-tree details platform/backend/api`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		tree, _, err := acquireTree(ctx, false)
		if err != nil {
			return err
		}

		lines, err := commands.NewDetailsCommand(tree, strings.Trim(args[0], "/ ")).Execute(ctx)
		if err != nil {
			return err
		}
		for _, line := range lines {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detailsCmd)
}
