// Package resolve implements the tiered content-resolution strategy.
//
// Every content request follows the same three tiers: reuse a curated or
// cached artifact, synthesize one generatively, or fall back to a
// deterministic composition of repository facts. The response shape is
// identical across tiers; only the Source provenance field tells them
// apart. Tier-2 unavailability or failure is never surfaced — it always
// degrades to tier 3.
package resolve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/wayfarelabs/wayfare/internal/enrich"
	"github.com/wayfarelabs/wayfare/internal/store"
)

// ErrInvalidInput marks structural input violations: out-of-range
// durations, wrong-cardinality lists, unsupported enum values. These
// surface to the caller and are never retried.
var ErrInvalidInput = errors.New("invalid input")

// Provenance values carried in every artifact's Source field.
const (
	SourceTemplate  = "template"
	SourceGenerated = "generated"
	SourceFallback  = "fallback"
)

// Duration bounds for itineraries, inclusive.
const (
	MinDurationDays = 1
	MaxDurationDays = 30
)

// Resolver resolves content requests against the entity store with an
// explicitly injected enricher. The enricher is never nil: an
// unconfigured deployment passes enrich.Disabled{}.
type Resolver struct {
	store    *store.Store
	enricher enrich.Enricher
	log      *log.Logger
}

// New constructs a Resolver.
func New(st *store.Store, e enrich.Enricher, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{store: st, enricher: e, log: logger}
}

// bestEffort runs a non-critical persistence operation and swallows its
// error after logging. Cache writes and counters must never fail the
// primary response.
func (r *Resolver) bestEffort(op string, fn func() error) {
	if err := fn(); err != nil {
		r.log.Warn("best-effort write failed", "op", op, "err", err)
	}
}

// ─── Itinerary ───────────────────────────────────────────────────────────────

// ItineraryRequest describes a personalized-itinerary request.
type ItineraryRequest struct {
	Destination  string
	DurationDays int
	TravelerType string // target audience filter; empty means any
	TripStyle    string
	TravelDates  string
}

// Itinerary is the resolved artifact: a structurally complete day-by-day
// plan regardless of which tier produced it.
type Itinerary struct {
	Destination           string              `json:"destination"`
	Country               string              `json:"country"`
	DurationDays          int                 `json:"duration_days"`
	TargetAudience        string              `json:"target_audience"`
	Days                  []store.DaySchedule `json:"days"`
	TotalEstimatedCostUSD float64             `json:"total_estimated_cost_usd"`
	BestTimeToVisit       string              `json:"best_time_to_visit,omitempty"`
	Source                string              `json:"source"`
}

// Itinerary resolves a multi-day itinerary through the three tiers.
// Duration is validated before any repository access.
func (r *Resolver) Itinerary(ctx context.Context, req ItineraryRequest) (Itinerary, error) {
	if req.DurationDays < MinDurationDays || req.DurationDays > MaxDurationDays {
		return Itinerary{}, fmt.Errorf("%w: duration_days must be between %d and %d, got %d",
			ErrInvalidInput, MinDurationDays, MaxDurationDays, req.DurationDays)
	}

	dest, err := r.store.DestinationByName(req.Destination)
	if err != nil {
		return Itinerary{}, err
	}

	audience := req.TravelerType
	if audience == "" {
		audience = "general"
	}

	// Tier 1: template reuse.
	if tpl, ok, err := r.store.TemplateFor(dest.ID, req.DurationDays, req.TravelerType); err == nil && ok {
		r.bestEffort("increment template usage", func() error {
			return r.store.IncrementTemplateUsage(tpl.ID)
		})
		return r.assemble(dest, tpl.TargetAudience, tpl.Days, SourceTemplate), nil
	} else if err != nil {
		r.log.Warn("template lookup failed, continuing to generation", "destination", dest.Name, "err", err)
	}

	pois, err := r.store.POIs(dest.ID, store.POIFilter{})
	if err != nil {
		r.log.Warn("poi listing failed, fallback will use placeholders", "destination", dest.Name, "err", err)
	}

	// Tier 2: generative synthesis.
	if r.enricher.Enabled() {
		if days, genErr := r.generateItinerary(ctx, dest, pois, req); genErr == nil {
			r.bestEffort("persist generated template", func() error {
				_, err := r.store.InsertTemplate(store.ItineraryTemplate{
					DestinationID:  dest.ID,
					DurationDays:   req.DurationDays,
					TargetAudience: audience,
					TripStyle:      orDefault(req.TripStyle, "balanced"),
					Days:           days,
					Source:         "generated",
				})
				return err
			})
			return r.assemble(dest, audience, days, SourceGenerated), nil
		} else {
			r.log.Warn("generative synthesis failed, falling back", "destination", dest.Name, "err", genErr)
		}
	}

	// Tier 3: deterministic fallback. Never fails for a found destination.
	days := fallbackItinerary(dest, pois, req.DurationDays)
	return r.assemble(dest, audience, days, SourceFallback), nil
}

// assemble builds the tier-independent response shape. Repository facts
// (destination name, country, daily cost) override whatever a generator
// produced for the same fields.
func (r *Resolver) assemble(dest store.Destination, audience string, days []store.DaySchedule, source string) Itinerary {
	var total float64
	for i := range days {
		if days[i].CostEstimate <= 0 {
			days[i].CostEstimate = dest.AvgDailyCostUSD
		}
		total += days[i].CostEstimate
	}
	return Itinerary{
		Destination:           dest.Name,
		Country:               dest.Country,
		DurationDays:          len(days),
		TargetAudience:        audience,
		Days:                  days,
		TotalEstimatedCostUSD: total,
		BestTimeToVisit:       dest.BestTimeReason,
		Source:                source,
	}
}

// generateItinerary asks the enricher for a day-by-day schedule and
// validates the structure before accepting it.
func (r *Resolver) generateItinerary(ctx context.Context, dest store.Destination, pois []store.POI, req ItineraryRequest) ([]store.DaySchedule, error) {
	body, err := r.enricher.GenerateJSON(ctx, itineraryPrompt(dest, pois, req))
	if err != nil {
		return nil, err
	}
	var parsed struct {
		Days []store.DaySchedule `json:"days"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse generated itinerary: %w", err)
	}
	if err := store.ValidateSchedule(parsed.Days, req.DurationDays); err != nil {
		return nil, fmt.Errorf("generated itinerary malformed: %w", err)
	}
	return parsed.Days, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
