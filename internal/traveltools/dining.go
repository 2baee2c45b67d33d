package traveltools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wayfarelabs/wayfare/internal/store"
)

// occasionNotes is a small decision table: occasion keyword to serving
// suggestion. Unknown occasions get no note.
var occasionNotes = map[string]string{
	"romantic":    "Book ahead and ask for a quiet table; the expensive tier is worth it tonight.",
	"celebration": "Tell the restaurant it's a celebration — most will do something about it.",
	"business":    "Pick the moderate tier or above and a room quiet enough to talk.",
	"casual":      "The budget tier is where the locals actually eat.",
}

// DiningTool handles the get-dining-recommendations MCP tool.
type DiningTool struct {
	store *store.Store
}

// NewDiningTool creates a DiningTool.
func NewDiningTool(st *store.Store) *DiningTool {
	return &DiningTool{store: st}
}

// Definition returns the MCP tool definition for get-dining-recommendations.
func (t *DiningTool) Definition() mcp.Tool {
	return mcp.NewTool("get-dining-recommendations",
		mcp.WithDescription(
			"Recommend restaurants for a destination, optionally filtered by cuisine "+
				"and price level.",
		),
		mcp.WithString("destination",
			mcp.Required(),
			mcp.Description("Destination name"),
		),
		mcp.WithArray("cuisine_preferences",
			mcp.Description("Preferred cuisines, e.g. tapas, ramen"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("price_level",
			mcp.Description("Exact price tier: free, budget, moderate, expensive"),
		),
		mcp.WithString("occasion",
			mcp.Description("Occasion hint: romantic, celebration, business, casual"),
		),
		mcp.WithString("meal_type",
			mcp.Description("Meal hint, e.g. breakfast, lunch, dinner (echoed back)"),
		),
	)
}

// Handle processes the get-dining-recommendations tool call.
func (t *DiningTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "get-dining-recommendations"

	dest, err := t.store.DestinationByName(req.GetString("destination", ""))
	if err != nil {
		return errorResult(tool, err), nil
	}

	pois, err := t.store.POIs(dest.ID, store.POIFilter{
		Categories: []string{"restaurant"},
		Cuisines:   stringSliceArg(req, "cuisine_preferences"),
		PriceLevel: req.GetString("price_level", ""),
	})
	if err != nil {
		return errorResult(tool, err), nil
	}

	resp := map[string]any{
		"destination": dest.Name,
		"restaurants": pois,
		"count":       len(pois),
		"meal_type":   req.GetString("meal_type", ""),
	}
	if occasion := req.GetString("occasion", ""); occasion != "" {
		resp["occasion"] = occasion
		if note, ok := occasionNotes[occasion]; ok {
			resp["note"] = note
		}
	}
	return jsonResult(tool, resp), nil
}
