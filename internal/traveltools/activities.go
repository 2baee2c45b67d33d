package traveltools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wayfarelabs/wayfare/internal/store"
)

// priceRank orders price tiers so a per-person budget can cap them.
var priceRank = map[string]int{"free": 0, "budget": 1, "moderate": 2, "expensive": 3}

// ActivitiesTool handles the get-things-to-do MCP tool.
type ActivitiesTool struct {
	store *store.Store
}

// NewActivitiesTool creates an ActivitiesTool.
func NewActivitiesTool(st *store.Store) *ActivitiesTool {
	return &ActivitiesTool{store: st}
}

// Definition returns the MCP tool definition for get-things-to-do.
func (t *ActivitiesTool) Definition() mcp.Tool {
	return mcp.NewTool("get-things-to-do",
		mcp.WithDescription(
			"List activities and sights for a destination, must-see entries first, "+
				"then by rating.",
		),
		mcp.WithString("destination",
			mcp.Required(),
			mcp.Description("Destination name"),
		),
		mcp.WithArray("activity_types",
			mcp.Description("Filter by category, e.g. temple, market, nature"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("traveler_type",
			mcp.Description("Audience hint (echoed back, not a filter)"),
		),
		mcp.WithNumber("budget_per_person",
			mcp.Description("Approximate USD budget per person; caps the price tier"),
		),
	)
}

// Handle processes the get-things-to-do tool call.
func (t *ActivitiesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "get-things-to-do"

	dest, err := t.store.DestinationByName(req.GetString("destination", ""))
	if err != nil {
		return errorResult(tool, err), nil
	}

	types := stringSliceArg(req, "activity_types")
	pois, err := t.store.POIs(dest.ID, store.POIFilter{Categories: types})
	if err != nil {
		return errorResult(tool, err), nil
	}

	// Restaurants belong to get-dining-recommendations unless asked for.
	if len(types) == 0 {
		filtered := pois[:0]
		for _, p := range pois {
			if p.Category != "restaurant" {
				filtered = append(filtered, p)
			}
		}
		pois = filtered
	}

	if budget := floatArg(req, "budget_per_person", 0); budget > 0 {
		maxRank := budgetRank(budget)
		filtered := pois[:0]
		for _, p := range pois {
			if priceRank[p.PriceLevel] <= maxRank {
				filtered = append(filtered, p)
			}
		}
		pois = filtered
	}

	return jsonResult(tool, map[string]any{
		"destination":   dest.Name,
		"traveler_type": req.GetString("traveler_type", ""),
		"activities":    pois,
		"count":         len(pois),
	}), nil
}

// budgetRank maps a USD budget to the highest affordable price tier.
func budgetRank(budget float64) int {
	switch {
	case budget < 20:
		return priceRank["budget"]
	case budget < 100:
		return priceRank["moderate"]
	default:
		return priceRank["expensive"]
	}
}
