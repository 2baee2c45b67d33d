package traveltools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wayfarelabs/wayfare/internal/store"
)

// AnalyticsTool handles the analyze-content-performance MCP tool.
type AnalyticsTool struct {
	store *store.Store
}

// NewAnalyticsTool creates an AnalyticsTool.
func NewAnalyticsTool(st *store.Store) *AnalyticsTool {
	return &AnalyticsTool{store: st}
}

// Definition returns the MCP tool definition for analyze-content-performance.
func (t *AnalyticsTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze-content-performance",
		mcp.WithDescription(
			"Aggregate content performance: recommendation volume, template usage "+
				"leaderboard, and generated-vs-curated share.",
		),
		mcp.WithObject("analysis_period",
			mcp.Description("Optional ISO8601 period bounds: start, end"),
			mcp.Properties(map[string]any{
				"start": map[string]any{"type": "string"},
				"end":   map[string]any{"type": "string"},
			}),
		),
		mcp.WithString("content_type",
			mcp.Description("Restrict to one content type (currently only 'itinerary' carries usage data)"),
		),
	)
}

// Handle processes the analyze-content-performance tool call.
func (t *AnalyticsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "analyze-content-performance"

	period := objArg(req, "analysis_period")
	stats, err := t.store.PerformanceBetween(objString(period, "start"), objString(period, "end"))
	if err != nil {
		return errorResult(tool, err), nil
	}

	return jsonResult(tool, map[string]any{
		"analysis_period": map[string]string{
			"start": objString(period, "start"),
			"end":   objString(period, "end"),
		},
		"content_type": req.GetString("content_type", ""),
		"stats":        stats,
	}), nil
}
