// Package mcp exposes the catalog to Model Context Protocol clients as a
// set of read-only tools.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"gitlabtree/internal/application"
	"gitlabtree/internal/application/commands"
	"gitlabtree/internal/domain"
)

// TreeSource yields the catalog tree a tool call works on
type TreeSource func(ctx context.Context) (*domain.Tree, error)

// AcquisitionSource adapts a load function into a TreeSource
func AcquisitionSource(load application.LoadFunc) TreeSource {
	return func(ctx context.Context) (*domain.Tree, error) {
		acq, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return domain.BuildSnapshotTree(acq.Snapshot), nil
	}
}

// RegisterReadTools adds all read-only catalog tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, source TreeSource) {
	s.AddTool(treeTool(), treeHandler(source))
	s.AddTool(searchTool(), searchHandler(source))
	s.AddTool(detailsTool(), detailsHandler(source))
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display the GitLab groups, subgroups and projects as a tree."),
		mcp.WithNumber("max_depth",
			mcp.Description("Maximum depth to show (1 = top-level groups only). Omit for the whole tree."),
		),
		mcp.WithString("format",
			mcp.Description("Output format: text (default) or json"),
			mcp.Enum("text", "json"),
		),
	)
}

func treeHandler(source TreeSource) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tree, err := source(ctx)
		if err != nil {
			return toolError(err)
		}

		entries, err := commands.NewTreeCommand(tree, req.GetInt("max_depth", 0)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(entries) == 0 {
			return mcp.NewToolResultText("No groups or projects."), nil
		}

		if req.GetString("format", "text") == "json" {
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return toolError(err)
			}
			return mcp.NewToolResultText(string(data)), nil
		}

		var sb strings.Builder
		commands.Flatten(entries, func(e commands.Entry, depth int) {
			fmt.Fprintf(&sb, "%s%s %s  %s\n", strings.Repeat("  ", depth), e.Kind, e.Name, e.URL)
		})
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Fuzzy search groups and projects by name or full path. Returns the best matches first."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default 20)"),
		),
	)
}

func searchHandler(source TreeSource) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		tree, err := source(ctx)
		if err != nil {
			return toolError(err)
		}

		results, err := commands.NewSearchCommand(tree, query, req.GetInt("limit", 20)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  %s  %s\n", r.Kind, r.Path, r.URL)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- details ---

func detailsTool() mcp.Tool {
	return mcp.NewTool("details",
		mcp.WithDescription("Show name, kind, path, visibility, URL and last activity for a group or project."),
		mcp.WithString("path",
			mcp.Description("Full path of the group or project (e.g. platform/backend/api)"),
			mcp.Required(),
		),
	)
}

func detailsHandler(source TreeSource) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := strings.Trim(req.GetString("path", ""), "/ ")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		tree, err := source(ctx)
		if err != nil {
			return toolError(err)
		}

		lines, err := commands.NewDetailsCommand(tree, path).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
