package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"gitlabtree/internal/ports"
)

var cacheCmd = &cobra.Command{
	Use:         "cache",
	Short:       "Inspect or clear the snapshot cache",
	Annotations: map[string]string{annotationNoToken: "true"},
}

var cachePathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print where the snapshot cache lives",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoToken: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		describeStore(cmd.OutOrStdout(), newStore(cacheCfg.Path))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:         "clear",
	Short:       "Delete the cached snapshot so the next run fetches from GitLab",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoToken: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newCache(cacheCfg, logger)
		if err := c.Clear(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", c.Location())
		return nil
	},
}

// writtenAtReporter is implemented by stores that record their write time
type writtenAtReporter interface {
	WrittenAt() (time.Time, error)
}

// describeStore prints the store location and, when known, the time of the
// last write
func describeStore(w io.Writer, store ports.SnapshotStore) {
	fmt.Fprintln(w, store.Location())
	if r, ok := store.(writtenAtReporter); ok {
		if at, err := r.WrittenAt(); err == nil {
			fmt.Fprintf(w, "written %s\n", at.Format(time.RFC3339))
		}
	}
}

func init() {
	cacheCmd.AddCommand(cachePathCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
