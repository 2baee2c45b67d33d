package insights

import (
	"fmt"
	"strings"

	"github.com/wayfarelabs/wayfare/internal/store"
)

// InsightCategories lists the supported local-insight categories.
var InsightCategories = []string{"etiquette", "tipping", "language", "customs"}

// The local-insight content is static rule substitution over two small
// decision tables: one keyed on continent, one on primary language. It is
// deliberately a table, not an inference.

var tippingByContinent = map[string]string{
	"Europe":        "Service is often included; rounding up or 5-10% for good service is appreciated, never demanded.",
	"Asia":          "Tipping is generally not expected and can even cause confusion; exceptional service may warrant a small token.",
	"Africa":        "Tipping is customary for guides, drivers, and restaurant staff; 10% is a safe baseline.",
	"North America": "Tipping is expected: 15-20% in restaurants, a few dollars for porters and drivers.",
	"South America": "10% is standard in restaurants, often added to the bill as 'servicio'.",
	"Oceania":       "Tipping is not expected; staff are paid full wages and service charges are rare.",
}

var etiquetteByContinent = map[string]string{
	"Europe":        "Greet staff when entering small shops, keep restaurant voices moderate, and dress up slightly for dinner.",
	"Asia":          "Remove shoes where locals do, avoid public displays of anger, and hand items to people with both hands.",
	"Africa":        "Greetings matter: take time to say hello before any request. Ask before photographing people.",
	"North America": "Casual and direct is the norm; queues are taken seriously.",
	"South America": "Expect warm physical greetings and flexible timekeeping; meals are social events, not refueling stops.",
	"Oceania":       "Informality rules, but respect indigenous sites and follow posted guidance exactly.",
}

var customsByContinent = map[string]string{
	"Europe":        "Lunch runs late and dinner later in the south; many museums close one weekday.",
	"Asia":          "Carry cash for small vendors, and note that blowing your nose in public is frowned upon in many countries.",
	"Africa":        "Bargaining in markets is expected and good-natured; agree taxi fares before departing.",
	"North America": "Posted prices usually exclude tax; distances are larger than maps suggest.",
	"South America": "Dinner rarely starts before nine; carry small bills for buses and kiosks.",
	"Oceania":       "Sun protection is a genuine safety matter; beaches have flagged swim zones for a reason.",
}

var phrasesByLanguage = map[string]string{
	"Spanish":    "Hello: Hola · Thank you: Gracias · Please: Por favor · Excuse me: Perdón",
	"Japanese":   "Hello: Konnichiwa · Thank you: Arigatou gozaimasu · Please: Onegaishimasu · Excuse me: Sumimasen",
	"Indonesian": "Hello: Halo · Thank you: Terima kasih · Please: Tolong · Excuse me: Permisi",
	"Icelandic":  "Hello: Halló · Thank you: Takk · Please: Vinsamlegast · Excuse me: Afsakið",
	"Arabic":     "Hello: Marhaba · Thank you: Shukran · Please: Min fadlak · Excuse me: Afwan",
	"French":     "Hello: Bonjour · Thank you: Merci · Please: S'il vous plaît · Excuse me: Pardon",
	"Portuguese": "Hello: Olá · Thank you: Obrigado/Obrigada · Please: Por favor · Excuse me: Com licença",
}

// LocalEntry is one resolved insight category.
type LocalEntry struct {
	Category string `json:"category"`
	Content  string `json:"content"`
}

// LocalInsight is the composed local-knowledge view for a destination.
type LocalInsight struct {
	Destination     string       `json:"destination"`
	Country         string       `json:"country"`
	PrimaryLanguage string       `json:"primary_language"`
	Insights        []LocalEntry `json:"insights"`
}

// Local builds the requested insight categories from the decision tables.
// An unknown category is an input violation.
func Local(dest store.Destination, categories []string) (LocalInsight, error) {
	if len(categories) == 0 {
		categories = InsightCategories
	}
	for _, c := range categories {
		if !isInsightCategory(c) {
			return LocalInsight{}, fmt.Errorf("%w: unknown insight category %q (valid: %s)",
				ErrInvalidInput, c, strings.Join(InsightCategories, ", "))
		}
	}

	out := LocalInsight{
		Destination:     dest.Name,
		Country:         dest.Country,
		PrimaryLanguage: dest.PrimaryLanguage,
	}
	for _, c := range categories {
		out.Insights = append(out.Insights, LocalEntry{Category: c, Content: localContent(c, dest)})
	}
	return out, nil
}

func localContent(category string, dest store.Destination) string {
	switch category {
	case "tipping":
		if s, ok := tippingByContinent[dest.Continent]; ok {
			return s
		}
		return "Tipping norms vary; observe what locals do and ask your hosts."
	case "etiquette":
		if s, ok := etiquetteByContinent[dest.Continent]; ok {
			return s
		}
		return "Politeness and patience translate everywhere."
	case "customs":
		if s, ok := customsByContinent[dest.Continent]; ok {
			return s
		}
		return "Local rhythms differ; watch and follow."
	case "language":
		if s, ok := phrasesByLanguage[dest.PrimaryLanguage]; ok {
			return fmt.Sprintf("%s is the primary language. Useful phrases — %s", dest.PrimaryLanguage, s)
		}
		return fmt.Sprintf("%s is the primary language; a translation app and a smile go a long way.", dest.PrimaryLanguage)
	}
	return ""
}

func isInsightCategory(c string) bool {
	for _, v := range InsightCategories {
		if v == c {
			return true
		}
	}
	return false
}
