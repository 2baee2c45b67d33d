// Package enrich provides the generative enrichment capability used by
// the content resolver's second tier.
//
// Availability is a typed precondition, not a nil check: callers receive
// either a Gemini-backed client or the Disabled variant, and both satisfy
// Enricher. Disabled fails every call with ErrUnavailable, which the
// resolver absorbs by falling through to its deterministic tier.
package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrUnavailable is returned when no enrichment provider is configured.
var ErrUnavailable = errors.New("enrich: provider unavailable")

// Enricher produces structured JSON from a prompt. Implementations must
// return valid JSON bytes or an error — never prose.
type Enricher interface {
	// GenerateJSON runs the prompt and returns the raw JSON response.
	GenerateJSON(ctx context.Context, prompt string) ([]byte, error)
	// Enabled reports whether calls can succeed at all.
	Enabled() bool
}

// ─── Gemini ──────────────────────────────────────────────────────────────────

// Gemini is an Enricher backed by Google's Gemini models.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini constructs a Gemini enricher. The model defaults to
// gemini-1.5-flash when empty. Each call is bounded by timeout.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("enrich: create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model, timeout: timeout}, nil
}

// GenerateJSON runs the prompt against the configured model in JSON-only
// mode and returns the response body after a validity check.
func (g *Gemini) GenerateJSON(ctx context.Context, prompt string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	m := g.client.GenerativeModel(g.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.2)
	m.SetTopP(0.5)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("enrich: gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("enrich: gemini returned no content")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("enrich: gemini returned non-text part")
	}
	body := []byte(text)
	if !json.Valid(body) {
		return nil, fmt.Errorf("enrich: gemini returned invalid JSON")
	}
	return body, nil
}

// Enabled always reports true for a constructed Gemini client.
func (g *Gemini) Enabled() bool { return true }

// Close releases the underlying API client.
func (g *Gemini) Close() error { return g.client.Close() }

// ─── Disabled ────────────────────────────────────────────────────────────────

// Disabled is the explicit "unconfigured" enricher.
type Disabled struct{}

// GenerateJSON always fails with ErrUnavailable.
func (Disabled) GenerateJSON(context.Context, string) ([]byte, error) {
	return nil, ErrUnavailable
}

// Enabled always reports false.
func (Disabled) Enabled() bool { return false }
