package traveltools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wayfarelabs/wayfare/internal/resolve"
)

// ItineraryTool handles the generate-personalized-itinerary MCP tool.
type ItineraryTool struct {
	resolver *resolve.Resolver
}

// NewItineraryTool creates an ItineraryTool.
func NewItineraryTool(r *resolve.Resolver) *ItineraryTool {
	return &ItineraryTool{resolver: r}
}

// Definition returns the MCP tool definition for generate-personalized-itinerary.
func (t *ItineraryTool) Definition() mcp.Tool {
	return mcp.NewTool("generate-personalized-itinerary",
		mcp.WithDescription(
			"Build a day-by-day itinerary for a destination. Reuses a curated template "+
				"when one fits, generates a fresh plan when possible, and always falls "+
				"back to a complete schedule built from known places.",
		),
		mcp.WithString("destination",
			mcp.Required(),
			mcp.Description("Destination name, e.g. Barcelona"),
		),
		mcp.WithNumber("duration_days",
			mcp.Required(),
			mcp.Description("Trip length in days (1-30)"),
		),
		mcp.WithObject("traveler_profile",
			mcp.Description("Optional traveler context: traveler_type (e.g. family, solo), trip_style (relaxed|balanced|packed)"),
			mcp.Properties(map[string]any{
				"traveler_type": map[string]any{"type": "string"},
				"trip_style":    map[string]any{"type": "string"},
			}),
		),
		mcp.WithString("travel_dates",
			mcp.Description("Optional travel dates, free text or ISO range"),
		),
	)
}

// Handle processes the generate-personalized-itinerary tool call.
func (t *ItineraryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "generate-personalized-itinerary"

	profile := objArg(req, "traveler_profile")
	it, err := t.resolver.Itinerary(ctx, resolve.ItineraryRequest{
		Destination:  req.GetString("destination", ""),
		DurationDays: intArg(req, "duration_days", 0),
		TravelerType: objString(profile, "traveler_type"),
		TripStyle:    objString(profile, "trip_style"),
		TravelDates:  req.GetString("travel_dates", ""),
	})
	if err != nil {
		return errorResult(tool, err), nil
	}
	return jsonResult(tool, it), nil
}
