package traveltools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wayfarelabs/wayfare/internal/resolve"
)

// InspirationTool handles the generate-travel-inspiration MCP tool.
type InspirationTool struct {
	resolver *resolve.Resolver
}

// NewInspirationTool creates an InspirationTool.
func NewInspirationTool(r *resolve.Resolver) *InspirationTool {
	return &InspirationTool{resolver: r}
}

// Definition returns the MCP tool definition for generate-travel-inspiration.
func (t *InspirationTool) Definition() mcp.Tool {
	return mcp.NewTool("generate-travel-inspiration",
		mcp.WithDescription(
			"Produce a themed travel-inspiration piece. Content types: "+
				strings.Join(resolve.ContentTypes, ", ")+".",
		),
		mcp.WithString("content_type",
			mcp.Required(),
			mcp.Description("One of: "+strings.Join(resolve.ContentTypes, ", ")),
		),
		mcp.WithString("theme",
			mcp.Required(),
			mcp.Description("Theme to write about, e.g. food, temples, winter sun"),
		),
		mcp.WithString("target_destination",
			mcp.Description("Narrow the piece to one destination"),
		),
		mcp.WithString("tone",
			mcp.Description("Writing tone (default: inspiring)"),
		),
		mcp.WithNumber("word_count",
			mcp.Description("Approximate length in words (default 300)"),
		),
	)
}

// Handle processes the generate-travel-inspiration tool call.
func (t *InspirationTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "generate-travel-inspiration"

	piece, err := t.resolver.Inspiration(ctx, resolve.InspirationRequest{
		ContentType:       req.GetString("content_type", ""),
		Theme:             req.GetString("theme", ""),
		TargetDestination: req.GetString("target_destination", ""),
		Tone:              req.GetString("tone", ""),
		WordCount:         intArg(req, "word_count", 0),
	})
	if err != nil {
		return errorResult(tool, err), nil
	}
	return jsonResult(tool, piece), nil
}
