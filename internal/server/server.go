// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations
// (store, enricher, resolver) and injects them into the tools that
// depend on abstractions. No business logic lives here — only wiring.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wayfarelabs/wayfare/internal/config"
	"github.com/wayfarelabs/wayfare/internal/enrich"
	"github.com/wayfarelabs/wayfare/internal/resolve"
	"github.com/wayfarelabs/wayfare/internal/store"
	"github.com/wayfarelabs/wayfare/internal/traveltools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all ten travel tools
// registered. The returned cleanup function closes the store (and the
// enrichment client when one was built) and must be called on shutdown.
// It is always non-nil and safe to call.
func New(ctx context.Context, cfg config.Config, logger *log.Logger) (*server.MCPServer, func(), error) {
	if logger == nil {
		logger = log.Default()
	}

	st, err := store.Open(store.Config{DBPath: cfg.DBPath, Seed: cfg.Seed})
	if err != nil {
		return nil, noop, fmt.Errorf("opening store: %w", err)
	}
	cleanup := func() {
		if err := st.Close(); err != nil {
			logger.Warn("store close", "err", err)
		}
	}

	// Enrichment availability is a typed state, not a nil check. A
	// missing API key yields the Disabled variant and every content
	// request degrades to the deterministic tier.
	var enricher enrich.Enricher = enrich.Disabled{}
	if cfg.GeminiAPIKey != "" {
		g, err := enrich.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel,
			time.Duration(cfg.EnrichTimeoutSeconds)*time.Second)
		if err != nil {
			// Degraded enrichment is never fatal: the server still
			// serves every tool from templates and fallbacks.
			logger.Warn("enrichment disabled", "err", err)
		} else {
			enricher = g
			storeCleanup := cleanup
			cleanup = func() {
				if err := g.Close(); err != nil {
					logger.Warn("enrichment client close", "err", err)
				}
				storeCleanup()
			}
		}
	}
	logger.Info("enrichment", "enabled", enricher.Enabled())

	resolver := resolve.New(st, enricher, logger)

	s := server.NewMCPServer(
		cfg.ServerName,
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	guideTool := traveltools.NewGuideTool(resolver)
	s.AddTool(guideTool.Definition(), guideTool.Handle)

	itineraryTool := traveltools.NewItineraryTool(resolver)
	s.AddTool(itineraryTool.Definition(), itineraryTool.Handle)

	recommendTool := traveltools.NewRecommendTool(st, logger)
	s.AddTool(recommendTool.Definition(), recommendTool.Handle)

	activitiesTool := traveltools.NewActivitiesTool(st)
	s.AddTool(activitiesTool.Definition(), activitiesTool.Handle)

	diningTool := traveltools.NewDiningTool(st)
	s.AddTool(diningTool.Definition(), diningTool.Handle)

	inspirationTool := traveltools.NewInspirationTool(resolver)
	s.AddTool(inspirationTool.Definition(), inspirationTool.Handle)

	seasonalTool := traveltools.NewSeasonalTool(st, logger)
	s.AddTool(seasonalTool.Definition(), seasonalTool.Handle)

	analyticsTool := traveltools.NewAnalyticsTool(st)
	s.AddTool(analyticsTool.Definition(), analyticsTool.Handle)

	localTool := traveltools.NewLocalTool(st)
	s.AddTool(localTool.Definition(), localTool.Handle)

	compareTool := traveltools.NewCompareTool(st)
	s.AddTool(compareTool.Definition(), compareTool.Handle)

	return s, cleanup, nil
}

// noop is the default cleanup when initialization fails early.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// client how to use Wayfare effectively.
func serverInstructions() string {
	return `You have access to Wayfare, a travel-planning MCP server backed by a
curated destination database.

## Tool guide

- recommend-destinations: ranked destination matches. Pass passenger_id
  when you know the traveler so their stored preferences contribute, and
  a context object (travel_month, budget_range, interests,
  previous_destinations) for trip-specific signals. Both combine.
- get-destination-guide: structured guide with overview, attractions,
  dining, and practical sections.
- generate-personalized-itinerary: full day-by-day plan for 1-30 days.
  Reuses curated templates when they fit; otherwise composes a new plan.
- get-things-to-do / get-dining-recommendations: filtered activity and
  restaurant listings, must-see entries first.
- get-seasonal-insights: season, best-time fit, weather, events, crowds
  and pricing for a month.
- get-local-insights: etiquette, tipping, language, and customs notes.
- compare-destinations: side-by-side rows for 2-4 destinations.
- generate-travel-inspiration: themed article, social post, or
  newsletter piece.
- analyze-content-performance: usage aggregates for content operators.

## Notes

- Responses carry a "source" field where content may be curated
  ("template"), model-generated ("generated"), or deterministically
  composed ("fallback"). Treat all three as equally valid answers.
- Errors come back as a JSON envelope with error, tool, and timestamp.
  A destination not in the database is a hard error; suggest the
  traveler checks spelling or tries a nearby major city.`
}
