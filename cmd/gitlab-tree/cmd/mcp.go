package cmd

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "gitlabtree/internal/adapters/mcp"
)

// version is overridden at build time with -ldflags "-X ..."
var version = "0.1.0"

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the tree over MCP on stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout exposing read-only
tools: tree, search and details. Each call goes through the snapshot cache.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ingestor := newIngestor(cfg, logger)

		mcpServer := server.NewMCPServer(
			"gitlab-tree",
			version,
			server.WithToolCapabilities(true),
		)

		mcpServer.AddTool(
			mcp.NewTool("ping",
				mcp.WithDescription("Health check, returns pong"),
			),
			func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return mcp.NewToolResultText("pong"), nil
			},
		)

		mcpadapter.RegisterReadTools(mcpServer, mcpadapter.AcquisitionSource(ingestor.Acquire))

		logger.Info("serving MCP on stdio")
		if err := server.ServeStdio(mcpServer); err != nil {
			return fmt.Errorf("serve mcp: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
