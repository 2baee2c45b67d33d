package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wayfarelabs/wayfare/internal/store"
)

// ContentTypes lists the supported inspiration content types.
var ContentTypes = []string{"article", "social-post", "newsletter"}

// Word-count bounds for inspiration pieces.
const (
	defaultWordCount = 300
	minWordCount     = 50
	maxWordCount     = 2000
)

// InspirationRequest describes a travel-inspiration request. ContentType
// and Theme are required; TargetDestination narrows the piece to one
// place and must exist when given.
type InspirationRequest struct {
	ContentType       string
	Theme             string
	TargetDestination string
	Tone              string
	WordCount         int
}

// Inspiration is the resolved inspiration piece.
type Inspiration struct {
	ContentType string `json:"content_type"`
	Theme       string `json:"theme"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	Destination string `json:"destination,omitempty"`
	Source      string `json:"source"`
}

// Inspiration resolves an inspiration piece. There is no curated store
// for these, so resolution starts at tier 2 and degrades to the
// deterministic composer.
func (r *Resolver) Inspiration(ctx context.Context, req InspirationRequest) (Inspiration, error) {
	if req.ContentType == "" || req.Theme == "" {
		return Inspiration{}, fmt.Errorf("%w: content_type and theme are required", ErrInvalidInput)
	}
	if !isContentType(req.ContentType) {
		return Inspiration{}, fmt.Errorf("%w: unsupported content_type %q (valid: %s)",
			ErrInvalidInput, req.ContentType, strings.Join(ContentTypes, ", "))
	}
	if req.WordCount == 0 {
		req.WordCount = defaultWordCount
	}
	if req.WordCount < minWordCount || req.WordCount > maxWordCount {
		return Inspiration{}, fmt.Errorf("%w: word_count must be between %d and %d",
			ErrInvalidInput, minWordCount, maxWordCount)
	}
	if req.Tone == "" {
		req.Tone = "inspiring"
	}

	var dests []store.Destination
	if req.TargetDestination != "" {
		d, err := r.store.DestinationByName(req.TargetDestination)
		if err != nil {
			return Inspiration{}, err
		}
		dests = []store.Destination{d}
	} else {
		all, err := r.store.ActiveDestinations()
		if err != nil {
			return Inspiration{}, fmt.Errorf("inspiration: %w", err)
		}
		dests = matchTheme(all, req.Theme)
	}

	if r.enricher.Enabled() {
		if piece, err := r.generateInspiration(ctx, req, dests); err == nil {
			return piece, nil
		} else {
			r.log.Warn("inspiration generation failed, falling back", "theme", req.Theme, "err", err)
		}
	}

	title, body := fallbackInspiration(req, dests)
	return Inspiration{
		ContentType: req.ContentType,
		Theme:       req.Theme,
		Title:       title,
		Body:        body,
		Destination: req.TargetDestination,
		Source:      SourceFallback,
	}, nil
}

func (r *Resolver) generateInspiration(ctx context.Context, req InspirationRequest, dests []store.Destination) (Inspiration, error) {
	body, err := r.enricher.GenerateJSON(ctx, inspirationPrompt(req, dests))
	if err != nil {
		return Inspiration{}, err
	}
	var parsed struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Inspiration{}, fmt.Errorf("parse generated inspiration: %w", err)
	}
	if strings.TrimSpace(parsed.Title) == "" || strings.TrimSpace(parsed.Body) == "" {
		return Inspiration{}, fmt.Errorf("generated inspiration incomplete")
	}
	return Inspiration{
		ContentType: req.ContentType,
		Theme:       req.Theme,
		Title:       parsed.Title,
		Body:        parsed.Body,
		Destination: req.TargetDestination,
		Source:      SourceGenerated,
	}, nil
}

// matchTheme keeps destinations whose category tags relate to the theme,
// falling back to the full set so the composer always has material.
func matchTheme(dests []store.Destination, theme string) []store.Destination {
	lt := strings.ToLower(theme)
	var matched []store.Destination
	for _, d := range dests {
		for _, tag := range d.Categories {
			if strings.Contains(lt, strings.ToLower(tag)) || strings.Contains(strings.ToLower(tag), lt) {
				matched = append(matched, d)
				break
			}
		}
	}
	if len(matched) == 0 {
		return dests
	}
	return matched
}

func isContentType(ct string) bool {
	for _, t := range ContentTypes {
		if t == ct {
			return true
		}
	}
	return false
}
