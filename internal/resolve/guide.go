package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wayfarelabs/wayfare/internal/store"
)

// GuideSections lists the supported guide section names in render order.
var GuideSections = []string{"overview", "attractions", "dining", "practical"}

// GuideRequest describes a destination-guide request.
type GuideRequest struct {
	Destination  string
	Sections     []string // empty means all sections
	TravelerType string
	DurationDays int // optional context for the generator; 0 means unspecified
}

// GuideSection is one resolved section with its own provenance: different
// sections of the same guide may come from different tiers.
type GuideSection struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Source  string `json:"source"`
}

// Guide is the resolved destination guide.
type Guide struct {
	Destination  string         `json:"destination"`
	Country      string         `json:"country"`
	TravelerType string         `json:"traveler_type,omitempty"`
	Sections     []GuideSection `json:"sections"`
}

// Guide resolves each requested section through the tiers. Unknown
// section names are an input violation surfaced before any tier runs.
func (r *Resolver) Guide(ctx context.Context, req GuideRequest) (Guide, error) {
	sections := req.Sections
	if len(sections) == 0 {
		sections = GuideSections
	}
	for _, s := range sections {
		if !isGuideSection(s) {
			return Guide{}, fmt.Errorf("%w: unknown guide section %q (valid: %s)",
				ErrInvalidInput, s, strings.Join(GuideSections, ", "))
		}
	}

	dest, err := r.store.DestinationByName(req.Destination)
	if err != nil {
		return Guide{}, err
	}
	pois, err := r.store.POIs(dest.ID, store.POIFilter{})
	if err != nil {
		r.log.Warn("poi listing failed, guide falls back to destination fields", "destination", dest.Name, "err", err)
	}

	g := Guide{Destination: dest.Name, Country: dest.Country, TravelerType: req.TravelerType}
	for _, name := range sections {
		g.Sections = append(g.Sections, r.resolveSection(ctx, name, dest, pois, req))
	}
	return g, nil
}

// resolveSection applies the tier strategy to a single section. The only
// curated (tier 1) artifact is the destination's narrative description,
// which serves the overview section.
func (r *Resolver) resolveSection(ctx context.Context, name string, dest store.Destination, pois []store.POI, req GuideRequest) GuideSection {
	if name == "overview" && dest.Description != "" {
		return GuideSection{Name: name, Content: dest.Description, Source: SourceTemplate}
	}

	if r.enricher.Enabled() {
		if content, err := r.generateSection(ctx, name, dest, pois, req); err == nil {
			return GuideSection{Name: name, Content: content, Source: SourceGenerated}
		} else {
			r.log.Warn("section generation failed, falling back", "section", name, "destination", dest.Name, "err", err)
		}
	}

	return GuideSection{Name: name, Content: fallbackSection(name, dest, pois), Source: SourceFallback}
}

func (r *Resolver) generateSection(ctx context.Context, name string, dest store.Destination, pois []store.POI, req GuideRequest) (string, error) {
	body, err := r.enricher.GenerateJSON(ctx, sectionPrompt(name, dest, pois, req))
	if err != nil {
		return "", err
	}
	var parsed struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse generated section: %w", err)
	}
	if strings.TrimSpace(parsed.Content) == "" {
		return "", fmt.Errorf("generated section %q is empty", name)
	}
	return parsed.Content, nil
}

func isGuideSection(name string) bool {
	for _, s := range GuideSections {
		if s == name {
			return true
		}
	}
	return false
}
