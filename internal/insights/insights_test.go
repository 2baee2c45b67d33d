package insights_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/wayfarelabs/wayfare/internal/insights"
	"github.com/wayfarelabs/wayfare/internal/store"
)

func barcelona() store.Destination {
	return store.Destination{
		ID: 1, Name: "Barcelona", Country: "Spain", Continent: "Europe",
		PrimaryLanguage: "Spanish",
		Categories:      []string{"culture", "beach", "food"},
		AvgDailyCostUSD: 120, BudgetTier: "moderate",
		SafetyRating: 4.3, InfrastructureRating: 4.6,
		BestMonths:     []string{"May", "June", "September", "October"},
		BestTimeReason: "Warm but not scorching",
		MonthlyTempsC:  []float64{10, 11, 13, 15, 18, 22, 25, 26, 24, 19, 14, 11},
	}
}

func tokyo() store.Destination {
	return store.Destination{
		ID: 2, Name: "Tokyo", Country: "Japan", Continent: "Asia",
		PrimaryLanguage: "Japanese",
		Categories:      []string{"culture", "food", "technology"},
		AvgDailyCostUSD: 150, BudgetTier: "moderate",
		SafetyRating: 4.8, InfrastructureRating: 4.9,
		BestMonths: []string{"March", "April", "October"},
	}
}

// ─── Months and seasons ──────────────────────────────────────────────────────

func TestMonthNumber(t *testing.T) {
	cases := map[string]time.Month{
		"September": time.September,
		"september": time.September,
		"9":         time.September,
		" january ": time.January,
		"12":        time.December,
	}
	for in, want := range cases {
		got, err := insights.MonthNumber(in)
		if err != nil {
			t.Errorf("MonthNumber(%q) error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("MonthNumber(%q) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"13", "0", "Smarch", ""} {
		if _, err := insights.MonthNumber(in); !errors.Is(err, insights.ErrInvalidInput) {
			t.Errorf("MonthNumber(%q): got %v, want ErrInvalidInput", in, err)
		}
	}
}

func TestSeasonOf(t *testing.T) {
	cases := map[time.Month]string{
		time.December:  "Winter",
		time.January:   "Winter",
		time.March:     "Spring",
		time.May:       "Spring",
		time.June:      "Summer",
		time.August:    "Summer",
		time.September: "Fall",
		time.November:  "Fall",
	}
	for m, want := range cases {
		if got := insights.SeasonOf(m); got != want {
			t.Errorf("SeasonOf(%v) = %q, want %q", m, got, want)
		}
	}
}

// ─── Seasonal insight ────────────────────────────────────────────────────────

func TestSeasonal_BestMonth(t *testing.T) {
	events := []store.SeasonalEvent{{Name: "La Mercè Festival", Relevance: 0.9}}
	ins := insights.Seasonal(barcelona(), time.September, events, true, true)

	if !ins.IsBestTime {
		t.Error("September should be a best month for Barcelona")
	}
	if ins.Season != "Fall" {
		t.Errorf("season = %q, want Fall", ins.Season)
	}
	if ins.CrowdLevel != "peak season crowds" || ins.PricingTrend != "peak pricing" {
		t.Errorf("peak labels = %q / %q", ins.CrowdLevel, ins.PricingTrend)
	}
	if len(ins.Events) != 1 || ins.Events[0].Name != "La Mercè Festival" {
		t.Errorf("events = %+v", ins.Events)
	}
	if ins.Weather == nil || ins.Weather.AvgTempC != 24 {
		t.Errorf("weather = %+v, want September temp 24", ins.Weather)
	}
}

func TestSeasonal_OffSeason(t *testing.T) {
	ins := insights.Seasonal(barcelona(), time.January, nil, false, false)

	if ins.IsBestTime {
		t.Error("January is not a best month for Barcelona")
	}
	if ins.CrowdLevel != "moderate crowds" || ins.PricingTrend != "value season pricing" {
		t.Errorf("off-season labels = %q / %q", ins.CrowdLevel, ins.PricingTrend)
	}
	if ins.Weather != nil {
		t.Error("weather included despite include_weather=false")
	}
	if ins.Events != nil {
		t.Error("events included despite include_events=false")
	}
}

func TestSeasonal_WeatherBuckets(t *testing.T) {
	d := barcelona()
	cases := map[time.Month]string{
		time.August:  "warm and sunny", // 26
		time.January: "cool",           // 10
		time.May:     "mild",           // 18
	}
	for m, want := range cases {
		ins := insights.Seasonal(d, m, nil, true, false)
		if ins.Weather.Description != want {
			t.Errorf("%v weather = %q, want %q", m, ins.Weather.Description, want)
		}
	}

	// Missing temperature data degrades to a generic description.
	noTemps := tokyo()
	ins := insights.Seasonal(noTemps, time.July, nil, true, false)
	if ins.Weather.Description != "mild" {
		t.Errorf("missing temps weather = %q, want mild", ins.Weather.Description)
	}
}

// ─── Comparison ──────────────────────────────────────────────────────────────

func TestCompare_Cardinality(t *testing.T) {
	one := []store.Destination{barcelona()}
	if _, err := insights.Compare(one, nil, nil); !errors.Is(err, insights.ErrInvalidInput) {
		t.Errorf("1 destination: got %v, want ErrInvalidInput", err)
	}

	five := []store.Destination{barcelona(), tokyo(), barcelona(), tokyo(), barcelona()}
	if _, err := insights.Compare(five, nil, nil); !errors.Is(err, insights.ErrInvalidInput) {
		t.Errorf("5 destinations: got %v, want ErrInvalidInput", err)
	}
}

func TestCompare_UnknownCriterion(t *testing.T) {
	dests := []store.Destination{barcelona(), tokyo()}
	_, err := insights.Compare(dests, nil, []string{"vibes"})
	if !errors.Is(err, insights.ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}

func TestCompare_CostWinnerIsCheapest(t *testing.T) {
	dests := []store.Destination{tokyo(), barcelona()}
	cmp, err := insights.Compare(dests, nil, []string{"cost"})
	if err != nil {
		t.Fatalf("Compare() error: %v", err)
	}
	if len(cmp.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(cmp.Rows))
	}
	if cmp.Rows[0].Winner != "Barcelona" {
		t.Errorf("cost winner = %q, want Barcelona", cmp.Rows[0].Winner)
	}
	if cmp.BestForBudget != "Barcelona" {
		t.Errorf("best for budget = %q, want Barcelona", cmp.BestForBudget)
	}
	// The weather pick keeps the first-listed default.
	if cmp.BestForWeather != "Tokyo" {
		t.Errorf("best for weather = %q, want first destination", cmp.BestForWeather)
	}
}

func TestCompare_ActivitiesWinnerByCount(t *testing.T) {
	b, tk := barcelona(), tokyo()
	counts := map[int64]int{b.ID: 7, tk.ID: 3}

	cmp, err := insights.Compare([]store.Destination{b, tk}, counts, []string{"activities"})
	if err != nil {
		t.Fatal(err)
	}
	if cmp.Rows[0].Winner != "Barcelona" {
		t.Errorf("activities winner = %q, want Barcelona", cmp.Rows[0].Winner)
	}
}

func TestCompare_DefaultsToAllCriteria(t *testing.T) {
	cmp, err := insights.Compare([]store.Destination{barcelona(), tokyo()}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(cmp.Rows) != len(insights.ComparisonCriteria) {
		t.Errorf("rows = %d, want %d", len(cmp.Rows), len(insights.ComparisonCriteria))
	}

	var family *insights.CriterionRow
	for i := range cmp.Rows {
		if cmp.Rows[i].Criterion == "family_friendliness" {
			family = &cmp.Rows[i]
		}
		if cmp.Rows[i].Criterion == "weather" && cmp.Rows[i].Winner != "" {
			t.Error("weather row should have no winner")
		}
	}
	if family == nil {
		t.Fatal("family_friendliness row missing")
	}
	for _, v := range family.Values {
		if v.Value != "excellent for families" {
			t.Errorf("%s family label = %q", v.Destination, v.Value)
		}
	}
}

// ─── Local insights ──────────────────────────────────────────────────────────

func TestLocal_UnknownCategory(t *testing.T) {
	_, err := insights.Local(barcelona(), []string{"nightlife"})
	if !errors.Is(err, insights.ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}

func TestLocal_DefaultsToAllCategories(t *testing.T) {
	ins, err := insights.Local(tokyo(), nil)
	if err != nil {
		t.Fatalf("Local() error: %v", err)
	}
	if len(ins.Insights) != len(insights.InsightCategories) {
		t.Fatalf("insights = %d, want %d", len(ins.Insights), len(insights.InsightCategories))
	}
	if ins.PrimaryLanguage != "Japanese" {
		t.Errorf("primary language = %q", ins.PrimaryLanguage)
	}

	byCat := map[string]string{}
	for _, e := range ins.Insights {
		if e.Content == "" {
			t.Errorf("category %q is empty", e.Category)
		}
		byCat[e.Category] = e.Content
	}
	if !strings.Contains(byCat["language"], "Arigatou") {
		t.Errorf("language entry missing phrases: %q", byCat["language"])
	}
	if !strings.Contains(byCat["tipping"], "not expected") {
		t.Errorf("tipping entry = %q", byCat["tipping"])
	}
}

func TestLocal_UnmappedFallbacks(t *testing.T) {
	d := store.Destination{
		Name: "McMurdo", Country: "Antarctica", Continent: "Antarctica",
		PrimaryLanguage: "English",
	}
	ins, err := insights.Local(d, []string{"tipping", "language"})
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range ins.Insights {
		if e.Content == "" {
			t.Errorf("unmapped %q produced empty content", e.Category)
		}
	}
}
