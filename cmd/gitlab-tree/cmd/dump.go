package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gitlabtree/internal/application"
	"gitlabtree/internal/application/commands"
	"gitlabtree/internal/domain"
)

var (
	dumpFormat   string
	dumpRefresh  bool
	dumpMaxDepth int
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the group and project tree",
	Long: `Fetch the catalog (or read it from the cache) and print the full tree
without starting the interactive browser.

Examples:
  gitlab-tree dump
  gitlab-tree dump --format json --max-depth 2
  gitlab-tree dump --refresh --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		tree, acq, err := acquireTree(ctx, dumpRefresh)
		if err != nil {
			return err
		}
		logger.WithField("status", acq.Status()).Info("catalog acquired")

		entries, err := commands.NewTreeCommand(tree, dumpMaxDepth).Execute(ctx)
		if err != nil {
			return err
		}
		return writeEntries(cmd.OutOrStdout(), entries, dumpFormat)
	},
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "text", "output format: text, json or yaml")
	dumpCmd.Flags().BoolVar(&dumpRefresh, "refresh", false, "bypass the cache and fetch from GitLab")
	dumpCmd.Flags().IntVar(&dumpMaxDepth, "max-depth", 0, "limit nesting depth (0 for unlimited)")
	rootCmd.AddCommand(dumpCmd)
}

// acquireTree runs one ingestion and builds the arena from it
func acquireTree(ctx context.Context, refresh bool) (*domain.Tree, *application.Acquisition, error) {
	ingestor := newIngestor(cfg, logger)
	load := ingestor.Acquire
	if refresh {
		load = ingestor.Refresh
	}
	acq, err := load(ctx)
	if err != nil {
		return nil, nil, err
	}
	return domain.BuildSnapshotTree(acq.Snapshot), acq, nil
}

// writeEntries renders entries in the requested format
func writeEntries(w io.Writer, entries []commands.Entry, format string) error {
	switch strings.ToLower(format) {
	case "", "text":
		if len(entries) == 0 {
			_, err := fmt.Fprintln(w, "No groups or projects")
			return err
		}
		var err error
		commands.Flatten(entries, func(e commands.Entry, depth int) {
			if err != nil {
				return
			}
			_, err = fmt.Fprintf(w, "%s[%s] %s  %s\n", strings.Repeat("  ", depth), strings.ToLower(e.Kind), e.Name, e.URL)
		})
		return err
	case "json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}
