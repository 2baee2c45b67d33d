package traveltools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wayfarelabs/wayfare/internal/insights"
	"github.com/wayfarelabs/wayfare/internal/store"
)

// CompareTool handles the compare-destinations MCP tool.
type CompareTool struct {
	store *store.Store
}

// NewCompareTool creates a CompareTool.
func NewCompareTool(st *store.Store) *CompareTool {
	return &CompareTool{store: st}
}

// Definition returns the MCP tool definition for compare-destinations.
func (t *CompareTool) Definition() mcp.Tool {
	return mcp.NewTool("compare-destinations",
		mcp.WithDescription(
			"Side-by-side comparison of 2-4 destinations. Criteria: "+
				strings.Join(insights.ComparisonCriteria, ", ")+".",
		),
		mcp.WithArray("destinations",
			mcp.Required(),
			mcp.Description("Destination names to compare (2-4)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("comparison_criteria",
			mcp.Description("Criteria subset (default: all)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

// Handle processes the compare-destinations tool call.
func (t *CompareTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "compare-destinations"

	names := stringSliceArg(req, "destinations")
	// Cardinality is validated before any repository access.
	if len(names) < insights.MinCompareDestinations || len(names) > insights.MaxCompareDestinations {
		return errorResult(tool, fmt.Errorf("%w: comparison requires %d to %d destinations, got %d",
			insights.ErrInvalidInput, insights.MinCompareDestinations, insights.MaxCompareDestinations, len(names))), nil
	}

	criteria := stringSliceArg(req, "comparison_criteria")
	for i, c := range criteria {
		criteria[i] = strings.ToLower(strings.TrimSpace(c))
	}

	dests, err := t.store.DestinationsByNames(names)
	if err != nil {
		return errorResult(tool, err), nil
	}

	ids := make([]int64, len(dests))
	for i, d := range dests {
		ids[i] = d.ID
	}
	poiCounts, err := t.store.CountPOIs(ids)
	if err != nil {
		return errorResult(tool, err), nil
	}

	cmp, err := insights.Compare(dests, poiCounts, criteria)
	if err != nil {
		return errorResult(tool, err), nil
	}
	return jsonResult(tool, cmp), nil
}
