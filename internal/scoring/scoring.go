// Package scoring implements the destination-matching engine: a
// deterministic, additive score between a candidate destination and a
// traveler's durable profile plus request-scoped context.
package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/wayfarelabs/wayfare/internal/store"
)

// Context carries request-scoped, non-durable preference signals supplied
// inline with a single call. All fields are optional.
type Context struct {
	Interests            []string
	TravelMonth          string
	BudgetRange          string
	PreviousDestinations []string
}

// Scoring weights. The score is additive over independent terms on a base
// of 50, clamped to [0,100]; the popularity term saturates so it cannot
// dominate personalization.
const (
	baseScore            = 50
	maxScore             = 100
	profileInterestBonus = 10
	budgetMatchBonus     = 15
	bucketListBonus      = 25
	contextInterestBonus = 15
	seasonalBonus        = 20
	popularityPerHit     = 2
	popularityCap        = 10
	infrastructureWeight = 2
)

// Ranked is one scored candidate with its human-readable match reasons.
type Ranked struct {
	Destination  store.Destination `json:"destination"`
	Score        int               `json:"match_score"`
	MatchReasons []string          `json:"match_reasons"`
}

// Score computes the match score for one candidate. profile may be nil;
// priorCount is the number of historical recommendation-log entries that
// surfaced this candidate. The result is always in [0,100] and
// order-independent in its inputs.
func Score(d store.Destination, profile *store.PreferenceProfile, rc Context, priorCount int) int {
	total := float64(baseScore)

	if profile != nil {
		for _, tag := range d.Categories {
			if matchesAnyInterest(tag, profile.Interests) {
				total += profileInterestBonus
			}
		}
		if profile.BudgetTier != "" && strings.EqualFold(profile.BudgetTier, d.BudgetTier) {
			total += budgetMatchBonus
		}
		if containsFold(profile.BucketList, d.Name) {
			total += bucketListBonus
		}
	}

	// Request context contributes independently of the profile: a
	// candidate can earn both the profile and context interest bonuses
	// for the same tag.
	for _, tag := range d.Categories {
		if containsNormalized(rc.Interests, tag) {
			total += contextInterestBonus
		}
	}

	if rc.TravelMonth != "" && containsFold(d.BestMonths, rc.TravelMonth) {
		total += seasonalBonus
	}

	total += math.Min(float64(popularityPerHit*priorCount), popularityCap)
	total += d.InfrastructureRating * infrastructureWeight

	score := int(math.Round(total))
	if score > maxScore {
		score = maxScore
	}
	if score < 0 {
		score = 0
	}
	return score
}

// Reasons re-evaluates which scoring terms fired and renders at most
// three human-readable explanations. When no specific term fired it
// falls back to two generic reasons.
func Reasons(d store.Destination, profile *store.PreferenceProfile, rc Context) []string {
	var reasons []string

	if rc.TravelMonth != "" && containsFold(d.BestMonths, rc.TravelMonth) {
		reasons = append(reasons, "great time to visit in "+rc.TravelMonth)
	}

	if tag := firstInterestMatch(d, profile, rc); tag != "" {
		reasons = append(reasons, "matches your interest in "+tag)
	}

	if d.SafetyRating >= 4.0 {
		reasons = append(reasons, "high safety rating for travelers")
	}
	if d.InfrastructureRating >= 4.5 {
		reasons = append(reasons, "excellent tourist infrastructure")
	}

	if len(reasons) == 0 {
		return []string{"popular destination", "great for first-time visitors"}
	}
	if len(reasons) > 3 {
		reasons = reasons[:3]
	}
	return reasons
}

// Rank scores every candidate and returns the top entries, ordered by
// score descending, then tourist-infrastructure rating descending, then
// name ascending — the final key keeps ranking reproducible where the
// first two tie. count defaults to 5 and is capped at 10. Candidates
// named in rc.PreviousDestinations are skipped, and when rc.BudgetRange
// is set only candidates of that tier compete.
func Rank(candidates []store.Destination, profile *store.PreferenceProfile, rc Context, popularity map[string]int, count int) []Ranked {
	if count <= 0 {
		count = 5
	}
	if count > 10 {
		count = 10
	}

	ranked := make([]Ranked, 0, len(candidates))
	for _, d := range candidates {
		if containsFold(rc.PreviousDestinations, d.Name) {
			continue
		}
		if rc.BudgetRange != "" && !strings.EqualFold(rc.BudgetRange, d.BudgetTier) {
			continue
		}
		ranked = append(ranked, Ranked{
			Destination:  d,
			Score:        Score(d, profile, rc, popularity[d.Name]),
			MatchReasons: Reasons(d, profile, rc),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].Destination.InfrastructureRating != ranked[j].Destination.InfrastructureRating {
			return ranked[i].Destination.InfrastructureRating > ranked[j].Destination.InfrastructureRating
		}
		return ranked[i].Destination.Name < ranked[j].Destination.Name
	})

	if len(ranked) > count {
		ranked = ranked[:count]
	}
	return ranked
}

// matchesAnyInterest reports whether a category tag appears in the
// interest list, case-insensitively and by substring in either direction
// ("architecture" matches an interest of "modern architecture").
func matchesAnyInterest(tag string, interests []string) bool {
	lt := strings.ToLower(tag)
	for _, i := range interests {
		li := strings.ToLower(strings.TrimSpace(i))
		if li == "" {
			continue
		}
		if strings.Contains(li, lt) || strings.Contains(lt, li) {
			return true
		}
	}
	return false
}

// containsNormalized reports an exact match after lowercase/trim
// normalization on both sides.
func containsNormalized(haystack []string, needle string) bool {
	n := strings.ToLower(strings.TrimSpace(needle))
	for _, h := range haystack {
		if strings.ToLower(strings.TrimSpace(h)) == n {
			return true
		}
	}
	return false
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(needle)) {
			return true
		}
	}
	return false
}

func firstInterestMatch(d store.Destination, profile *store.PreferenceProfile, rc Context) string {
	for _, tag := range d.Categories {
		if containsNormalized(rc.Interests, tag) {
			return tag
		}
		if profile != nil && matchesAnyInterest(tag, profile.Interests) {
			return tag
		}
	}
	return ""
}
