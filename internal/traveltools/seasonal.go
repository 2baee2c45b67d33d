package traveltools

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wayfarelabs/wayfare/internal/insights"
	"github.com/wayfarelabs/wayfare/internal/store"
)

// SeasonalTool handles the get-seasonal-insights MCP tool.
type SeasonalTool struct {
	store *store.Store
	log   *log.Logger
	// now is injected for tests; defaults to time.Now.
	now func() time.Time
}

// NewSeasonalTool creates a SeasonalTool.
func NewSeasonalTool(st *store.Store, logger *log.Logger) *SeasonalTool {
	return &SeasonalTool{store: st, log: logger, now: time.Now}
}

// Definition returns the MCP tool definition for get-seasonal-insights.
func (t *SeasonalTool) Definition() mcp.Tool {
	return mcp.NewTool("get-seasonal-insights",
		mcp.WithDescription(
			"Seasonal view of a destination for a month: season, best-time fit, "+
				"weather bucket, events, crowd and pricing outlook.",
		),
		mcp.WithString("destination",
			mcp.Required(),
			mcp.Description("Destination name"),
		),
		mcp.WithString("month",
			mcp.Description("Month name or number (default: current month)"),
		),
		mcp.WithBoolean("include_events",
			mcp.Description("Include seasonal events (default true)"),
		),
		mcp.WithBoolean("include_weather",
			mcp.Description("Include the weather summary (default true)"),
		),
	)
}

// Handle processes the get-seasonal-insights tool call.
func (t *SeasonalTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "get-seasonal-insights"

	month := t.now().Month()
	if arg := req.GetString("month", ""); arg != "" {
		m, err := insights.MonthNumber(arg)
		if err != nil {
			return errorResult(tool, err), nil
		}
		month = m
	}

	dest, err := t.store.DestinationByName(req.GetString("destination", ""))
	if err != nil {
		return errorResult(tool, err), nil
	}

	includeEvents := boolArg(req, "include_events", true)
	var events []store.SeasonalEvent
	if includeEvents {
		events, err = t.store.EventsForMonth(dest.ID, int(month))
		if err != nil {
			// Events enrich the view; their absence doesn't fail it.
			t.log.Warn("event lookup failed", "destination", dest.Name, "err", err)
		}
	}

	ins := insights.Seasonal(dest, month, events, boolArg(req, "include_weather", true), includeEvents)
	return jsonResult(tool, ins), nil
}
