package resolve

import (
	"fmt"
	"strings"

	"github.com/wayfarelabs/wayfare/internal/store"
)

// Prompts force JSON-only responses with exact keys so the parser can
// reject anything malformed and fall through to the deterministic tier.

func itineraryPrompt(dest store.Destination, pois []store.POI, req ItineraryRequest) string {
	var poiBuf strings.Builder
	for _, p := range pois {
		fmt.Fprintf(&poiBuf, "- %s | category: %s | rating: %.1f | price: %s\n",
			p.Name, p.Category, p.Rating, p.PriceLevel)
	}
	audience := orDefault(req.TravelerType, "general travelers")
	style := orDefault(req.TripStyle, "balanced")

	return fmt.Sprintf(`You are planning a %d-day trip to %s, %s for %s with a %s pace.
Return JSON only, matching this schema exactly (no markdown, no comments):

{"days":[{"day":1,"morning":"...","afternoon":"...","evening":"...","meals":"...","cost_estimate_usd":%0.f}]}

Hard constraints:
- Exactly %d entries in "days", numbered 1..%d with no gaps.
- Every slot (morning, afternoon, evening, meals) is a non-empty sentence.
- Prefer the known places below; do not invent opening hours or prices.
- cost_estimate_usd per day should be near %.0f.

Known places:
%s
Travel dates (optional context): %s`,
		req.DurationDays, dest.Name, dest.Country, audience, style,
		dest.AvgDailyCostUSD,
		req.DurationDays, req.DurationDays,
		dest.AvgDailyCostUSD,
		poiBuf.String(), orDefault(req.TravelDates, "unspecified"))
}

func sectionPrompt(name string, dest store.Destination, pois []store.POI, req GuideRequest) string {
	var poiBuf strings.Builder
	for _, p := range pois {
		fmt.Fprintf(&poiBuf, "- %s (%s, rating %.1f)\n", p.Name, p.Category, p.Rating)
	}
	audience := orDefault(req.TravelerType, "general travelers")
	length := "an unspecified trip length"
	if req.DurationDays > 0 {
		length = fmt.Sprintf("a %d-day trip", req.DurationDays)
	}

	return fmt.Sprintf(`Write the %q section of a travel guide to %s, %s for %s on %s.
Return JSON only: {"content":"..."} — no markdown, no comments.

Verified facts to respect (do not contradict):
- Categories: %s
- Average daily cost: $%.0f (%s tier)
- Best months: %s (%s)
- Primary language: %s
Known places:
%s
Keep it to 2-4 paragraphs of plain prose, scoped to what fits the trip length.`,
		name, dest.Name, dest.Country, audience, length,
		strings.Join(dest.Categories, ", "),
		dest.AvgDailyCostUSD, dest.BudgetTier,
		strings.Join(dest.BestMonths, ", "), dest.BestTimeReason,
		dest.PrimaryLanguage,
		poiBuf.String())
}

func inspirationPrompt(req InspirationRequest, dests []store.Destination) string {
	var destBuf strings.Builder
	for _, d := range dests {
		fmt.Fprintf(&destBuf, "- %s, %s: %s (best months: %s)\n",
			d.Name, d.Country, d.Description, strings.Join(d.BestMonths, ", "))
	}
	return fmt.Sprintf(`Write a travel %s on the theme %q in a %s tone, about %d words.
Return JSON only: {"title":"...","body":"..."} — no markdown, no comments.

Ground the piece in these real destinations and their verified facts only:
%s
Do not invent prices, hotels, or events.`,
		req.ContentType, req.Theme, req.Tone, req.WordCount, destBuf.String())
}
