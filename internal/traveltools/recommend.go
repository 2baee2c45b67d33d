package traveltools

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wayfarelabs/wayfare/internal/scoring"
	"github.com/wayfarelabs/wayfare/internal/store"
)

// RecommendTool handles the recommend-destinations MCP tool: the scoring
// engine's protocol surface.
type RecommendTool struct {
	store *store.Store
	log   *log.Logger
}

// NewRecommendTool creates a RecommendTool.
func NewRecommendTool(st *store.Store, logger *log.Logger) *RecommendTool {
	return &RecommendTool{store: st, log: logger}
}

// Definition returns the MCP tool definition for recommend-destinations.
func (t *RecommendTool) Definition() mcp.Tool {
	return mcp.NewTool("recommend-destinations",
		mcp.WithDescription(
			"Recommend travel destinations ranked by a weighted match score against "+
				"the traveler's stored preference profile and/or ad-hoc context.",
		),
		mcp.WithString("passenger_id",
			mcp.Description("Traveler identity; enables profile-based personalization and recommendation logging"),
		),
		mcp.WithObject("context",
			mcp.Description("Request-scoped signals: travel_month, budget_range (budget|moderate|luxury), interests[], previous_destinations[]"),
			mcp.Properties(map[string]any{
				"travel_month":          map[string]any{"type": "string"},
				"budget_range":          map[string]any{"type": "string"},
				"interests":             map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"previous_destinations": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			}),
		),
		mcp.WithObject("constraints",
			mcp.Description("Hard candidate filters: budget_range keeps only that tier (overrides context.budget_range), exclude_destinations[] removes named candidates"),
			mcp.Properties(map[string]any{
				"budget_range":         map[string]any{"type": "string"},
				"exclude_destinations": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			}),
		),
		mcp.WithNumber("recommendation_count",
			mcp.Description("How many destinations to return (default 5, max 10)"),
		),
	)
}

// Handle processes the recommend-destinations tool call.
func (t *RecommendTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "recommend-destinations"

	passengerID := req.GetString("passenger_id", "")
	rcArgs := objArg(req, "context")
	rc := scoring.Context{
		TravelMonth:          objString(rcArgs, "travel_month"),
		BudgetRange:          objString(rcArgs, "budget_range"),
		Interests:            objStringSlice(rcArgs, "interests"),
		PreviousDestinations: objStringSlice(rcArgs, "previous_destinations"),
	}

	// Constraints are hard filters on the candidate set, feeding the same
	// exclusion machinery the context signals use.
	cons := objArg(req, "constraints")
	if v := objString(cons, "budget_range"); v != "" {
		rc.BudgetRange = v
	}
	rc.PreviousDestinations = append(rc.PreviousDestinations, objStringSlice(cons, "exclude_destinations")...)

	count := intArg(req, "recommendation_count", 5)

	var profile *store.PreferenceProfile
	if passengerID != "" {
		p, err := t.store.Profile(passengerID)
		switch {
		case err == nil:
			profile = &p
		case errors.Is(err, store.ErrNotFound):
			// Unknown travelers still get context-based recommendations.
			t.log.Debug("no profile for passenger", "passenger_id", passengerID)
		default:
			return errorResult(tool, err), nil
		}
	}

	candidates, err := t.store.ActiveDestinations()
	if err != nil {
		return errorResult(tool, err), nil
	}

	popularity, err := t.store.PopularityCounts()
	if err != nil {
		// Popularity is a bonus term; scoring proceeds without it.
		t.log.Warn("popularity counts unavailable", "err", err)
		popularity = nil
	}

	ranked := scoring.Rank(candidates, profile, rc, popularity, count)

	// Best-effort audit log: failure must not fail the scoring call.
	if passengerID != "" && len(ranked) > 0 {
		shown := make([]store.ShownCandidate, len(ranked))
		for i, r := range ranked {
			shown[i] = store.ShownCandidate{Destination: r.Destination.Name, Score: r.Score}
		}
		if err := t.store.AppendRecommendationLog(passengerID, shown); err != nil {
			t.log.Warn("recommendation log write failed", "passenger_id", passengerID, "err", err)
		}
	}

	return jsonResult(tool, map[string]any{
		"recommendations": ranked,
		"count":           len(ranked),
	}), nil
}
