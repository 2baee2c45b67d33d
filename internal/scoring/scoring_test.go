package scoring_test

import (
	"testing"

	"github.com/wayfarelabs/wayfare/internal/scoring"
	"github.com/wayfarelabs/wayfare/internal/store"
)

func dest(name string, opts ...func(*store.Destination)) store.Destination {
	d := store.Destination{
		Name:                 name,
		Country:              "Testland",
		BudgetTier:           "moderate",
		SafetyRating:         3.0,
		InfrastructureRating: 3.0,
	}
	for _, o := range opts {
		o(&d)
	}
	return d
}

func withCategories(cats ...string) func(*store.Destination) {
	return func(d *store.Destination) { d.Categories = cats }
}

func withBestMonths(months ...string) func(*store.Destination) {
	return func(d *store.Destination) { d.BestMonths = months }
}

func withTier(tier string) func(*store.Destination) {
	return func(d *store.Destination) { d.BudgetTier = tier }
}

func withInfra(r float64) func(*store.Destination) {
	return func(d *store.Destination) { d.InfrastructureRating = r }
}

// ─── Score ───────────────────────────────────────────────────────────────────

func TestScore_BaselineWithNoSignals(t *testing.T) {
	// Base 50 plus twice the infrastructure rating; nothing else fires.
	got := scoring.Score(dest("Nowhere", withInfra(3.0)), nil, scoring.Context{}, 0)
	if got != 56 {
		t.Errorf("baseline score = %d, want 56", got)
	}
}

func TestScore_AlwaysInRange(t *testing.T) {
	profile := &store.PreferenceProfile{
		Interests:  []string{"food", "culture", "beach", "architecture"},
		BudgetTier: "moderate",
		BucketList: []string{"Everywhere"},
	}
	rc := scoring.Context{
		Interests:   []string{"food", "culture", "beach", "architecture"},
		TravelMonth: "June",
	}
	d := dest("Everywhere",
		withCategories("food", "culture", "beach", "architecture"),
		withBestMonths("June"),
		withInfra(5.0),
	)

	if got := scoring.Score(d, profile, rc, 100); got != 100 {
		t.Errorf("stacked bonuses score = %d, want clamp at 100", got)
	}
	if got := scoring.Score(dest("Bare", withInfra(0)), nil, scoring.Context{}, 0); got < 0 || got > 100 {
		t.Errorf("score %d outside [0,100]", got)
	}
}

func TestScore_BucketListDelta(t *testing.T) {
	profile := &store.PreferenceProfile{BucketList: []string{"Tokyo"}}
	on := scoring.Score(dest("Tokyo"), profile, scoring.Context{}, 0)
	off := scoring.Score(dest("Osaka"), profile, scoring.Context{}, 0)
	if on-off != 25 {
		t.Errorf("bucket-list delta = %d, want 25", on-off)
	}
}

func TestScore_BudgetMatchDelta(t *testing.T) {
	profile := &store.PreferenceProfile{BudgetTier: "Luxury"}
	match := scoring.Score(dest("A", withTier("luxury")), profile, scoring.Context{}, 0)
	miss := scoring.Score(dest("A", withTier("budget")), profile, scoring.Context{}, 0)
	if match-miss != 15 {
		t.Errorf("budget-match delta = %d, want 15", match-miss)
	}
}

func TestScore_SeasonalDelta(t *testing.T) {
	d := dest("A", withBestMonths("May", "September"))
	in := scoring.Score(d, nil, scoring.Context{TravelMonth: "september"}, 0)
	out := scoring.Score(d, nil, scoring.Context{TravelMonth: "January"}, 0)
	if in-out != 20 {
		t.Errorf("seasonal delta = %d, want 20", in-out)
	}
}

func TestScore_ContextInterestsAdditivePerTag(t *testing.T) {
	rc := scoring.Context{Interests: []string{"food", "beach"}}
	one := scoring.Score(dest("A", withCategories("food")), nil, rc, 0)
	two := scoring.Score(dest("A", withCategories("food", "beach")), nil, rc, 0)
	if two-one != 15 {
		t.Errorf("second matching tag added %d, want 15", two-one)
	}
}

func TestScore_ProfileInterestSubstringMatch(t *testing.T) {
	// "architecture" category matches a "modern architecture" interest.
	profile := &store.PreferenceProfile{Interests: []string{"modern architecture"}}
	with := scoring.Score(dest("A", withCategories("architecture")), profile, scoring.Context{}, 0)
	without := scoring.Score(dest("A"), profile, scoring.Context{}, 0)
	if with-without != 10 {
		t.Errorf("substring interest delta = %d, want 10", with-without)
	}
}

func TestScore_PopularitySaturates(t *testing.T) {
	d := dest("A")
	atCap := scoring.Score(d, nil, scoring.Context{}, 5)
	beyond := scoring.Score(d, nil, scoring.Context{}, 500)
	if atCap != beyond {
		t.Errorf("popularity not capped: %d vs %d", atCap, beyond)
	}
	base := scoring.Score(d, nil, scoring.Context{}, 0)
	if atCap-base != 10 {
		t.Errorf("popularity cap delta = %d, want 10", atCap-base)
	}
}

// ─── Reasons ─────────────────────────────────────────────────────────────────

func TestReasons_CapAndFallback(t *testing.T) {
	d := dest("A",
		withCategories("food"),
		withBestMonths("June"),
		withInfra(4.8),
	)
	d.SafetyRating = 4.5
	rc := scoring.Context{Interests: []string{"food"}, TravelMonth: "June"}

	reasons := scoring.Reasons(d, nil, rc)
	if len(reasons) != 3 {
		t.Errorf("got %d reasons, want capped at 3: %v", len(reasons), reasons)
	}

	generic := scoring.Reasons(dest("B"), nil, scoring.Context{})
	if len(generic) != 2 {
		t.Errorf("generic fallback = %v, want 2 entries", generic)
	}
}

// ─── Rank ────────────────────────────────────────────────────────────────────

func TestRank_OrderingAndTieBreaks(t *testing.T) {
	candidates := []store.Destination{
		dest("Carthage", withInfra(4.0)),
		dest("Byblos", withInfra(4.0)),
		dest("Alexandria", withInfra(4.5)),
		dest("Damascus", withCategories("food"), withInfra(3.0)),
	}
	rc := scoring.Context{Interests: []string{"food"}}

	ranked := scoring.Rank(candidates, nil, rc, nil, 0)
	if len(ranked) != 4 {
		t.Fatalf("ranked %d candidates, want 4", len(ranked))
	}

	// Damascus scores highest on the interest bonus; the three equal-score
	// rest order by infrastructure desc, then name asc.
	wantOrder := []string{"Damascus", "Alexandria", "Byblos", "Carthage"}
	for i, want := range wantOrder {
		if ranked[i].Destination.Name != want {
			t.Errorf("position %d = %q, want %q", i, ranked[i].Destination.Name, want)
		}
	}

	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("scores not descending at %d: %d > %d", i, ranked[i].Score, ranked[i-1].Score)
		}
	}
}

func TestRank_CountDefaultsAndCap(t *testing.T) {
	var candidates []store.Destination
	for _, n := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"} {
		candidates = append(candidates, dest(n))
	}

	if got := len(scoring.Rank(candidates, nil, scoring.Context{}, nil, 0)); got != 5 {
		t.Errorf("default count returned %d, want 5", got)
	}
	if got := len(scoring.Rank(candidates, nil, scoring.Context{}, nil, 99)); got != 10 {
		t.Errorf("capped count returned %d, want 10", got)
	}
	if got := len(scoring.Rank(candidates, nil, scoring.Context{}, nil, 3)); got != 3 {
		t.Errorf("explicit count returned %d, want 3", got)
	}
}

func TestRank_FiltersPreviousAndBudget(t *testing.T) {
	candidates := []store.Destination{
		dest("Lisbon", withTier("budget")),
		dest("Zurich", withTier("luxury")),
		dest("Porto", withTier("budget")),
	}
	rc := scoring.Context{
		PreviousDestinations: []string{"porto"},
		BudgetRange:          "budget",
	}

	ranked := scoring.Rank(candidates, nil, rc, nil, 10)
	if len(ranked) != 1 {
		t.Fatalf("ranked = %d candidates, want 1", len(ranked))
	}
	if ranked[0].Destination.Name != "Lisbon" {
		t.Errorf("survivor = %q, want Lisbon", ranked[0].Destination.Name)
	}
}

func TestRank_PopularityInfluencesOrder(t *testing.T) {
	candidates := []store.Destination{dest("Quiet"), dest("Busy")}
	popularity := map[string]int{"Busy": 3}

	ranked := scoring.Rank(candidates, nil, scoring.Context{}, popularity, 2)
	if ranked[0].Destination.Name != "Busy" {
		t.Errorf("popular candidate not first: %q", ranked[0].Destination.Name)
	}
	if ranked[0].Score-ranked[1].Score != 6 {
		t.Errorf("popularity delta = %d, want 6", ranked[0].Score-ranked[1].Score)
	}
}
