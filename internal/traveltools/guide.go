package traveltools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wayfarelabs/wayfare/internal/resolve"
)

// GuideTool handles the get-destination-guide MCP tool.
type GuideTool struct {
	resolver *resolve.Resolver
}

// NewGuideTool creates a GuideTool.
func NewGuideTool(r *resolve.Resolver) *GuideTool {
	return &GuideTool{resolver: r}
}

// Definition returns the MCP tool definition for get-destination-guide.
func (t *GuideTool) Definition() mcp.Tool {
	return mcp.NewTool("get-destination-guide",
		mcp.WithDescription(
			"Fetch a structured travel guide for a destination. Sections: "+
				strings.Join(resolve.GuideSections, ", ")+".",
		),
		mcp.WithString("destination",
			mcp.Required(),
			mcp.Description("Destination name"),
		),
		mcp.WithArray("guide_sections",
			mcp.Description("Sections to include (default: all)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("traveler_type",
			mcp.Description("Audience hint, e.g. family, solo, luxury"),
		),
		mcp.WithNumber("duration_days",
			mcp.Description("Planned trip length, used to slant the guide content"),
		),
	)
}

// Handle processes the get-destination-guide tool call.
func (t *GuideTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "get-destination-guide"

	g, err := t.resolver.Guide(ctx, resolve.GuideRequest{
		Destination:  req.GetString("destination", ""),
		Sections:     stringSliceArg(req, "guide_sections"),
		TravelerType: req.GetString("traveler_type", ""),
		DurationDays: intArg(req, "duration_days", 0),
	})
	if err != nil {
		return errorResult(tool, err), nil
	}
	return jsonResult(tool, g), nil
}
