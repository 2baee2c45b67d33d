package resolve

import (
	"fmt"
	"strings"

	"github.com/wayfarelabs/wayfare/internal/store"
)

// The deterministic tier composes artifacts purely from repository
// fields. It must never fail for a found destination: when rich data is
// missing it degrades to generic but non-empty placeholder text.

// fallbackItinerary fills a day-by-day skeleton by cycling through the
// destination's known attractions and dining options.
func fallbackItinerary(dest store.Destination, pois []store.POI, durationDays int) []store.DaySchedule {
	var sights, restaurants []store.POI
	for _, p := range pois {
		if p.Category == "restaurant" {
			restaurants = append(restaurants, p)
		} else {
			sights = append(sights, p)
		}
	}

	evenings := []string{
		"Evening stroll through the city center",
		"Sunset viewpoint and a relaxed dinner",
		"Local music or a night market",
		"Quiet evening at a neighborhood café",
	}

	days := make([]store.DaySchedule, durationDays)
	for i := range days {
		d := store.DaySchedule{Day: i + 1, CostEstimate: dest.AvgDailyCostUSD}

		if len(sights) > 0 {
			d.Morning = "Visit " + sights[(2*i)%len(sights)].Name
			d.Afternoon = "Explore " + sights[(2*i+1)%len(sights)].Name
		} else {
			d.Morning = fmt.Sprintf("Morning exploring %s at your own pace", dest.Name)
			d.Afternoon = "Afternoon in a neighborhood recommended by your hosts"
		}
		d.Evening = evenings[i%len(evenings)]

		if len(restaurants) > 0 {
			rst := restaurants[i%len(restaurants)]
			if rst.Cuisine != "" {
				d.Meals = fmt.Sprintf("Try %s for %s", rst.Name, rst.Cuisine)
			} else {
				d.Meals = "Try " + rst.Name
			}
		} else {
			d.Meals = "Sample the local cuisine near your accommodation"
		}
		days[i] = d
	}
	return days
}

// fallbackSection composes one guide section from destination and POI
// fields alone.
func fallbackSection(name string, dest store.Destination, pois []store.POI) string {
	switch name {
	case "overview":
		if dest.Description != "" {
			return dest.Description
		}
		return fmt.Sprintf("%s, %s is known for %s. Typical daily costs run around $%.0f.",
			dest.Name, dest.Country, listOr(dest.Categories, "its local character"), dest.AvgDailyCostUSD)

	case "attractions":
		var names []string
		for _, p := range pois {
			if p.Category != "restaurant" {
				names = append(names, p.Name)
			}
			if len(names) == 5 {
				break
			}
		}
		if len(names) == 0 {
			return fmt.Sprintf("Ask locally for the highlights of %s — the classics rarely disappoint.", dest.Name)
		}
		return "Top sights: " + strings.Join(names, "; ") + "."

	case "dining":
		var lines []string
		for _, p := range pois {
			if p.Category == "restaurant" {
				if p.Cuisine != "" {
					lines = append(lines, fmt.Sprintf("%s (%s, %s)", p.Name, p.Cuisine, p.PriceLevel))
				} else {
					lines = append(lines, fmt.Sprintf("%s (%s)", p.Name, p.PriceLevel))
				}
			}
			if len(lines) == 5 {
				break
			}
		}
		if len(lines) == 0 {
			return fmt.Sprintf("Eat where %s locals eat — busy rooms are the best guide.", dest.Name)
		}
		return "Where to eat: " + strings.Join(lines, "; ") + "."

	case "practical":
		months := listOr(dest.BestMonths, "any time of year")
		return fmt.Sprintf(
			"Best months to visit: %s. %s Primary language: %s. Budget tier: %s, around $%.0f per day. Safety rating %.1f/5.",
			months, dest.BestTimeReason, dest.PrimaryLanguage, dest.BudgetTier, dest.AvgDailyCostUSD, dest.SafetyRating)
	}
	return fmt.Sprintf("Information about %s in %s.", name, dest.Name)
}

// fallbackInspiration composes a short piece from the matched
// destinations' facts, roughly honoring the requested word count by
// trimming whole sentences.
func fallbackInspiration(req InspirationRequest, dests []store.Destination) (title, body string) {
	title = fmt.Sprintf("%s: places worth traveling for", titleCase(req.Theme))
	if len(dests) == 1 {
		title = fmt.Sprintf("%s for %s lovers", dests[0].Name, req.Theme)
	}

	var b strings.Builder
	for _, d := range dests {
		fmt.Fprintf(&b, "%s, %s — %s Best visited in %s. ",
			d.Name, d.Country, sentence(d.Description, d.Name), listOr(d.BestMonths, "any season"))
		if b.Len() > req.WordCount*6 { // rough bytes-per-word cap
			break
		}
	}
	if b.Len() == 0 {
		fmt.Fprintf(&b, "Sometimes the best trip is the one you have not planned yet. Pick a month, pick a theme like %s, and go.", req.Theme)
	}
	return title, strings.TrimSpace(b.String())
}

func sentence(desc, fallbackSubject string) string {
	if desc == "" {
		return fallbackSubject + " rewards the curious."
	}
	return desc
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func listOr(vals []string, fallback string) string {
	if len(vals) == 0 {
		return fallback
	}
	return strings.Join(vals, ", ")
}
