package traveltools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wayfarelabs/wayfare/internal/insights"
	"github.com/wayfarelabs/wayfare/internal/store"
)

// LocalTool handles the get-local-insights MCP tool.
type LocalTool struct {
	store *store.Store
}

// NewLocalTool creates a LocalTool.
func NewLocalTool(st *store.Store) *LocalTool {
	return &LocalTool{store: st}
}

// Definition returns the MCP tool definition for get-local-insights.
func (t *LocalTool) Definition() mcp.Tool {
	return mcp.NewTool("get-local-insights",
		mcp.WithDescription(
			"Cultural know-how for a destination from fixed rule tables. Categories: "+
				strings.Join(insights.InsightCategories, ", ")+".",
		),
		mcp.WithString("destination",
			mcp.Required(),
			mcp.Description("Destination name"),
		),
		mcp.WithArray("insight_categories",
			mcp.Description("Categories to include (default: all)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

// Handle processes the get-local-insights tool call.
func (t *LocalTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "get-local-insights"

	dest, err := t.store.DestinationByName(req.GetString("destination", ""))
	if err != nil {
		return errorResult(tool, err), nil
	}

	ins, err := insights.Local(dest, stringSliceArg(req, "insight_categories"))
	if err != nil {
		return errorResult(tool, err), nil
	}
	return jsonResult(tool, ins), nil
}
