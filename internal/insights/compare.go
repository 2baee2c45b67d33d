package insights

import (
	"fmt"
	"strings"

	"github.com/wayfarelabs/wayfare/internal/store"
)

// ComparisonCriteria lists the supported comparison criteria.
var ComparisonCriteria = []string{"cost", "weather", "activities", "categories", "family_friendliness"}

// Comparison cardinality bounds, inclusive.
const (
	MinCompareDestinations = 2
	MaxCompareDestinations = 4
)

// CriterionValue is one destination's value for a criterion.
type CriterionValue struct {
	Destination string `json:"destination"`
	Value       string `json:"value"`
}

// CriterionRow is one comparison row. Winner is set only for criteria
// with a natural minimum or maximum (cost: lowest wins; activities:
// highest wins).
type CriterionRow struct {
	Criterion string           `json:"criterion"`
	Values    []CriterionValue `json:"values"`
	Winner    string           `json:"winner,omitempty"`
}

// Comparison is the side-by-side view for 2-4 destinations.
type Comparison struct {
	Destinations   []string       `json:"destinations"`
	Rows           []CriterionRow `json:"comparison"`
	BestForBudget  string         `json:"best_for_budget"`
	BestForCulture string         `json:"best_for_culture,omitempty"`
	BestForWeather string         `json:"best_for_weather"`
}

// Compare builds one row per requested criterion. poiCounts maps
// destination id to its activity count.
func Compare(dests []store.Destination, poiCounts map[int64]int, criteria []string) (Comparison, error) {
	if len(dests) < MinCompareDestinations || len(dests) > MaxCompareDestinations {
		return Comparison{}, fmt.Errorf("%w: comparison requires %d to %d destinations, got %d",
			ErrInvalidInput, MinCompareDestinations, MaxCompareDestinations, len(dests))
	}
	if len(criteria) == 0 {
		criteria = ComparisonCriteria
	}
	for _, c := range criteria {
		if !isCriterion(c) {
			return Comparison{}, fmt.Errorf("%w: unknown comparison criterion %q (valid: %s)",
				ErrInvalidInput, c, strings.Join(ComparisonCriteria, ", "))
		}
	}

	cmp := Comparison{}
	for _, d := range dests {
		cmp.Destinations = append(cmp.Destinations, d.Name)
	}
	for _, c := range criteria {
		cmp.Rows = append(cmp.Rows, criterionRow(c, dests, poiCounts))
	}

	cmp.BestForBudget = minByCost(dests).Name
	cmp.BestForCulture = firstWithCategory(dests, "culture")
	cmp.BestForWeather = bestForWeather(dests)
	return cmp, nil
}

func criterionRow(criterion string, dests []store.Destination, poiCounts map[int64]int) CriterionRow {
	row := CriterionRow{Criterion: criterion}

	switch criterion {
	case "cost":
		for _, d := range dests {
			row.Values = append(row.Values, CriterionValue{
				Destination: d.Name,
				Value:       fmt.Sprintf("$%.2f/day (%s)", d.AvgDailyCostUSD, d.BudgetTier),
			})
		}
		row.Winner = minByCost(dests).Name

	case "weather":
		for _, d := range dests {
			row.Values = append(row.Values, CriterionValue{
				Destination: d.Name,
				Value:       "best months: " + strings.Join(d.BestMonths, ", "),
			})
		}

	case "activities":
		winner, best := "", -1
		for _, d := range dests {
			n := poiCounts[d.ID]
			row.Values = append(row.Values, CriterionValue{
				Destination: d.Name,
				Value:       fmt.Sprintf("%d listed activities", n),
			})
			if n > best {
				winner, best = d.Name, n
			}
		}
		row.Winner = winner

	case "categories":
		for _, d := range dests {
			row.Values = append(row.Values, CriterionValue{
				Destination: d.Name,
				Value:       strings.Join(d.Categories, ", "),
			})
		}

	case "family_friendliness":
		for _, d := range dests {
			row.Values = append(row.Values, CriterionValue{
				Destination: d.Name,
				Value:       familyLabel(d),
			})
		}
	}
	return row
}

func familyLabel(d store.Destination) string {
	switch {
	case d.SafetyRating >= 4.2 && d.InfrastructureRating >= 4.0:
		return "excellent for families"
	case d.SafetyRating >= 3.5:
		return "good for families"
	default:
		return "better suited to experienced travelers"
	}
}

func minByCost(dests []store.Destination) store.Destination {
	best := dests[0]
	for _, d := range dests[1:] {
		if d.AvgDailyCostUSD < best.AvgDailyCostUSD {
			best = d
		}
	}
	return best
}

func firstWithCategory(dests []store.Destination, category string) string {
	for _, d := range dests {
		for _, c := range d.Categories {
			if strings.EqualFold(c, category) {
				return d.Name
			}
		}
	}
	return ""
}

// bestForWeather preserves the historical behavior of defaulting to the
// first destination. It is a named strategy precisely so callers can see
// (and someday replace) the simplification instead of tripping over a
// hidden default.
func bestForWeather(dests []store.Destination) string {
	return dests[0].Name
}

func isCriterion(c string) bool {
	for _, v := range ComparisonCriteria {
		if v == c {
			return true
		}
	}
	return false
}
