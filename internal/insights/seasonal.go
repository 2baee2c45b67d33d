// Package insights builds derived comparative and contextual views from
// repository data and fixed rule tables. No generative step is involved:
// every output here is reproducible from the inputs alone.
package insights

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wayfarelabs/wayfare/internal/store"
)

// ErrInvalidInput marks structural input violations (bad month, unknown
// category, wrong-cardinality comparison).
var ErrInvalidInput = errors.New("invalid input")

// MonthNumber parses a month given as an English name ("September") or a
// number ("9"), case-insensitively.
func MonthNumber(s string) (time.Month, error) {
	t := strings.TrimSpace(s)
	if n, err := strconv.Atoi(t); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("%w: month %d out of range", ErrInvalidInput, n)
		}
		return time.Month(n), nil
	}
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), t) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown month %q", ErrInvalidInput, s)
}

// SeasonOf maps a month onto the fixed four-group partition:
// Dec-Feb Winter, Mar-May Spring, Jun-Aug Summer, Sep-Nov Fall.
func SeasonOf(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return "Winter"
	case time.March, time.April, time.May:
		return "Spring"
	case time.June, time.July, time.August:
		return "Summer"
	default:
		return "Fall"
	}
}

// Weather is the qualitative weather view for one month.
type Weather struct {
	AvgTempC    float64 `json:"avg_temp_c"`
	Description string  `json:"description"`
}

// SeasonalInsight is the composed seasonal view for one destination+month.
type SeasonalInsight struct {
	Destination  string                `json:"destination"`
	Month        string                `json:"month"`
	Season       string                `json:"season"`
	IsBestTime   bool                  `json:"is_best_time"`
	BestMonths   []string              `json:"best_months"`
	Reason       string                `json:"best_time_reason,omitempty"`
	Weather      *Weather              `json:"weather,omitempty"`
	Events       []store.SeasonalEvent `json:"events,omitempty"`
	CrowdLevel   string                `json:"crowd_level"`
	PricingTrend string                `json:"pricing_trend"`
}

// Seasonal composes the insight. events should already be the month's
// rows ordered by relevance (the repository query enforces the cap of 5).
// Crowd and pricing labels are binary on the best-time fit: a best month
// is peak season, anything else is value season.
func Seasonal(dest store.Destination, month time.Month, events []store.SeasonalEvent, includeWeather, includeEvents bool) SeasonalInsight {
	best := false
	for _, m := range dest.BestMonths {
		if strings.EqualFold(m, month.String()) {
			best = true
			break
		}
	}

	ins := SeasonalInsight{
		Destination: dest.Name,
		Month:       month.String(),
		Season:      SeasonOf(month),
		IsBestTime:  best,
		BestMonths:  dest.BestMonths,
		Reason:      dest.BestTimeReason,
	}

	if best {
		ins.CrowdLevel = "peak season crowds"
		ins.PricingTrend = "peak pricing"
	} else {
		ins.CrowdLevel = "moderate crowds"
		ins.PricingTrend = "value season pricing"
	}

	if includeWeather {
		ins.Weather = weatherFor(dest, month)
	}
	if includeEvents {
		ins.Events = events
	}
	return ins
}

// weatherFor derives the qualitative description from the temperature
// threshold table: above 25°C warm/sunny, below 15°C cool, otherwise mild.
func weatherFor(dest store.Destination, month time.Month) *Weather {
	if len(dest.MonthlyTempsC) != 12 {
		return &Weather{Description: "mild"}
	}
	t := dest.MonthlyTempsC[int(month)-1]
	w := &Weather{AvgTempC: t}
	switch {
	case t > 25:
		w.Description = "warm and sunny"
	case t < 15:
		w.Description = "cool"
	default:
		w.Description = "mild"
	}
	return w
}
