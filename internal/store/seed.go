package store

import (
	"encoding/json"
	"fmt"
)

// seedIfEmpty inserts the sample dataset into a database with no
// destinations. Existing databases are left untouched.
func (s *Store) seedIfEmpty() error {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM destinations`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, d := range seedDestinations {
		id, err := s.insertDestination(d.dest)
		if err != nil {
			return fmt.Errorf("destination %s: %w", d.dest.Name, err)
		}
		for _, p := range d.pois {
			p.DestinationID = id
			if err := s.insertPOI(p); err != nil {
				return fmt.Errorf("poi %s: %w", p.Name, err)
			}
		}
		for _, e := range d.events {
			e.DestinationID = id
			if err := s.InsertEvent(e); err != nil {
				return fmt.Errorf("event %s: %w", e.Name, err)
			}
		}
		for _, t := range d.templates {
			t.DestinationID = id
			if _, err := s.InsertTemplate(t); err != nil {
				return fmt.Errorf("template for %s: %w", d.dest.Name, err)
			}
		}
	}

	for _, p := range seedProfiles {
		if err := s.UpsertProfile(p); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) insertDestination(d Destination) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO destinations
		   (name, country, continent, primary_language, categories,
		    avg_daily_cost_usd, budget_tier, safety_rating, infrastructure,
		    best_months, best_time_reason, monthly_temps_c, description, image_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.Name, d.Country, d.Continent, d.PrimaryLanguage, joinList(d.Categories),
		d.AvgDailyCostUSD, d.BudgetTier, d.SafetyRating, d.InfrastructureRating,
		joinList(d.BestMonths), d.BestTimeReason, joinFloats(d.MonthlyTempsC),
		d.Description, d.ImageURL,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) insertPOI(p POI) error {
	_, err := s.db.Exec(
		`INSERT INTO points_of_interest
		   (destination_id, name, category, cuisine, description, rating,
		    review_count, price_level, lat, lon, must_see)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.DestinationID, p.Name, p.Category, nullIfEmpty(p.Cuisine), p.Description,
		p.Rating, p.ReviewCount, p.PriceLevel, p.Lat, p.Lon, p.MustSee,
	)
	return err
}

// InsertEvent writes a seasonal event. Events are normally seeded or
// managed by an external collaborator; this exists for seeding and tests.
func (s *Store) InsertEvent(e SeasonalEvent) error {
	_, err := s.db.Exec(
		`INSERT INTO seasonal_events
		   (destination_id, name, start_date, end_date, relevance, description)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.DestinationID, e.Name, e.StartDate, e.EndDate, e.Relevance, e.Description,
	)
	return err
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// mustDays builds a seed schedule from compact literals, panicking on
// malformed seed data (a programming error, not a runtime condition).
func mustDays(raw string) []DaySchedule {
	var days []DaySchedule
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		panic("store: bad seed schedule: " + err.Error())
	}
	return days
}

func fp(v float64) *float64 { return &v }

type seedEntry struct {
	dest      Destination
	pois      []POI
	events    []SeasonalEvent
	templates []ItineraryTemplate
}

var seedDestinations = []seedEntry{
	{
		dest: Destination{
			Name: "Barcelona", Country: "Spain", Continent: "Europe", PrimaryLanguage: "Spanish",
			Categories:      []string{"culture", "beach", "food", "architecture"},
			AvgDailyCostUSD: 120.00, BudgetTier: "moderate",
			SafetyRating: 4.3, InfrastructureRating: 4.6,
			BestMonths:     []string{"May", "June", "September", "October"},
			BestTimeReason: "Warm but not scorching, fewer cruise crowds than high summer",
			MonthlyTempsC:  []float64{10, 11, 13, 15, 18, 22, 25, 26, 24, 19, 14, 11},
			Description:    "Gaudí's modernist skyline meets Gothic lanes, urban beaches, and one of Europe's great food scenes.",
		},
		pois: []POI{
			{Name: "Sagrada Família", Category: "landmark", Rating: 4.8, ReviewCount: 210453, PriceLevel: "moderate", Lat: fp(41.4036), Lon: fp(2.1744), MustSee: true, Description: "Gaudí's unfinished basilica."},
			{Name: "Park Güell", Category: "park", Rating: 4.6, ReviewCount: 98761, PriceLevel: "budget", Lat: fp(41.4145), Lon: fp(2.1527), MustSee: true, Description: "Mosaic terraces above the city."},
			{Name: "Gothic Quarter", Category: "district", Rating: 4.7, ReviewCount: 65210, PriceLevel: "free", MustSee: true, Description: "Medieval core of the old city."},
			{Name: "La Boqueria Market", Category: "market", Rating: 4.5, ReviewCount: 54012, PriceLevel: "budget", Description: "Iconic food market off La Rambla."},
			{Name: "El Xampanyet", Category: "restaurant", Cuisine: "tapas", Rating: 4.6, ReviewCount: 8120, PriceLevel: "budget", Description: "Standing-room cava and anchovies since 1929."},
			{Name: "Disfrutar", Category: "restaurant", Cuisine: "modern spanish", Rating: 4.8, ReviewCount: 4230, PriceLevel: "expensive", Description: "Avant-garde tasting menus from elBulli alumni."},
			{Name: "Barceloneta Beach", Category: "beach", Rating: 4.3, ReviewCount: 40221, PriceLevel: "free", Description: "The city's front porch on the Mediterranean."},
		},
		events: []SeasonalEvent{
			{Name: "La Mercè Festival", StartDate: "2025-09-24", EndDate: "2025-09-28", Relevance: 0.9, Description: "City-wide festa major with castells, correfoc, and free concerts."},
			{Name: "Sant Jordi", StartDate: "2025-04-23", EndDate: "2025-04-23", Relevance: 0.7, Description: "Books and roses fill the streets."},
			{Name: "Primavera Sound", StartDate: "2025-06-04", EndDate: "2025-06-08", Relevance: 0.8, Description: "Flagship European music festival by the sea."},
		},
		templates: []ItineraryTemplate{
			{
				DurationDays: 3, TargetAudience: "general", TripStyle: "balanced", Source: "curated",
				Days: mustDays(`[
					{"day":1,"morning":"Sagrada Família (book the first slot)","afternoon":"Eixample architecture walk: Casa Batlló and La Pedrera","evening":"Sunset from the Bunkers del Carmel","meals":"Tapas crawl in El Born","cost_estimate_usd":110},
					{"day":2,"morning":"Gothic Quarter and the cathedral","afternoon":"Picasso Museum then La Boqueria","evening":"Flamenco at a small tablao","meals":"Market lunch, seafood dinner in Barceloneta","cost_estimate_usd":125},
					{"day":3,"morning":"Park Güell","afternoon":"Barceloneta Beach and the seafront","evening":"Vermouth hour in Gràcia","meals":"Paella by the water, pintxos in Gràcia","cost_estimate_usd":115}
				]`),
			},
			{
				DurationDays: 5, TargetAudience: "family", TripStyle: "relaxed", Source: "curated",
				Days: mustDays(`[
					{"day":1,"morning":"Sagrada Família with the kids' audio guide","afternoon":"Ice cream and a slow stroll down Passeig de Gràcia","evening":"Magic Fountain show at Montjuïc","meals":"Casual tapas near the hotel","cost_estimate_usd":140},
					{"day":2,"morning":"CosmoCaixa science museum","afternoon":"Park Güell playgrounds and mosaics","evening":"Early dinner in Gràcia","meals":"Museum café lunch, family-friendly dinner","cost_estimate_usd":130},
					{"day":3,"morning":"Barceloneta Beach morning swim","afternoon":"Aquarium at Port Vell","evening":"Gelato on the boardwalk","meals":"Beachfront chiringuito lunch","cost_estimate_usd":120},
					{"day":4,"morning":"Cable car up Montjuïc","afternoon":"Poble Espanyol crafts village","evening":"Picnic at the castle gardens","meals":"Market picnic supplies from Sant Antoni","cost_estimate_usd":115},
					{"day":5,"morning":"Gothic Quarter scavenger walk","afternoon":"Chocolate Museum","evening":"Farewell churros","meals":"Granja breakfast, early tapas dinner","cost_estimate_usd":110}
				]`),
			},
		},
	},
	{
		dest: Destination{
			Name: "Tokyo", Country: "Japan", Continent: "Asia", PrimaryLanguage: "Japanese",
			Categories:      []string{"culture", "food", "technology", "temples"},
			AvgDailyCostUSD: 150.00, BudgetTier: "moderate",
			SafetyRating: 4.8, InfrastructureRating: 4.9,
			BestMonths:     []string{"March", "April", "October", "November"},
			BestTimeReason: "Cherry blossoms in spring, crisp foliage and clear skies in autumn",
			MonthlyTempsC:  []float64{5, 6, 9, 14, 19, 22, 26, 27, 24, 18, 13, 8},
			Description:    "The world's largest metropolis layers neon futurism over Edo-period shrines and an unmatched food culture.",
		},
		pois: []POI{
			{Name: "Senso-ji", Category: "temple", Rating: 4.7, ReviewCount: 156320, PriceLevel: "free", Lat: fp(35.7148), Lon: fp(139.7967), MustSee: true, Description: "Tokyo's oldest temple, in Asakusa."},
			{Name: "Shibuya Crossing", Category: "landmark", Rating: 4.5, ReviewCount: 89214, PriceLevel: "free", MustSee: true, Description: "The scramble seen in every Tokyo montage."},
			{Name: "Meiji Shrine", Category: "temple", Rating: 4.6, ReviewCount: 74102, PriceLevel: "free", Description: "Forested Shinto shrine beside Harajuku."},
			{Name: "teamLab Planets", Category: "museum", Rating: 4.6, ReviewCount: 51230, PriceLevel: "moderate", Description: "Immersive digital art you wade through."},
			{Name: "Tsukiji Outer Market", Category: "market", Rating: 4.5, ReviewCount: 60311, PriceLevel: "budget", Description: "Street food and knife shops at the old fish market."},
			{Name: "Sukiyabashi Jiro Roppongi", Category: "restaurant", Cuisine: "sushi", Rating: 4.7, ReviewCount: 2105, PriceLevel: "expensive", Description: "Omakase counter from the famous family."},
			{Name: "Fuunji", Category: "restaurant", Cuisine: "ramen", Rating: 4.6, ReviewCount: 9321, PriceLevel: "budget", Description: "Legendary tsukemen queue in Shinjuku."},
		},
		events: []SeasonalEvent{
			{Name: "Cherry Blossom Season", StartDate: "2025-03-25", EndDate: "2025-04-10", Relevance: 0.95, Description: "Hanami picnics under the sakura in Ueno and Shinjuku Gyoen."},
			{Name: "Sumidagawa Fireworks", StartDate: "2025-07-26", EndDate: "2025-07-26", Relevance: 0.8, Description: "Japan's oldest fireworks festival over the Sumida river."},
			{Name: "Autumn Leaves at Rikugien", StartDate: "2025-11-20", EndDate: "2025-12-05", Relevance: 0.7, Description: "Evening illuminations of the maple garden."},
		},
		templates: []ItineraryTemplate{
			{
				DurationDays: 5, TargetAudience: "general", TripStyle: "balanced", Source: "curated",
				Days: mustDays(`[
					{"day":1,"morning":"Senso-ji and Nakamise shopping street","afternoon":"Sumida river walk to the Skytree","evening":"Izakaya alley in Asakusa","meals":"Street snacks at Nakamise, yakitori dinner","cost_estimate_usd":130},
					{"day":2,"morning":"Meiji Shrine","afternoon":"Harajuku and Omotesando","evening":"Shibuya Crossing at dusk","meals":"Crepes in Harajuku, conveyor sushi in Shibuya","cost_estimate_usd":140},
					{"day":3,"morning":"Tsukiji Outer Market breakfast","afternoon":"teamLab Planets","evening":"Ginza window shopping","meals":"Market tamagoyaki and tuna, tempura dinner","cost_estimate_usd":160},
					{"day":4,"morning":"Day trip to Kamakura's Great Buddha","afternoon":"Enoshima coastal walk","evening":"Back to Tokyo, Shinjuku night views","meals":"Shirasu-don lunch, ramen at Fuunji","cost_estimate_usd":170},
					{"day":5,"morning":"Imperial Palace East Gardens","afternoon":"Akihabara arcades","evening":"Golden Gai bar hop","meals":"Depachika picnic lunch, omakase splurge","cost_estimate_usd":180}
				]`),
			},
		},
	},
	{
		dest: Destination{
			Name: "Bali", Country: "Indonesia", Continent: "Asia", PrimaryLanguage: "Indonesian",
			Categories:      []string{"beach", "nature", "wellness", "temples"},
			AvgDailyCostUSD: 45.00, BudgetTier: "budget",
			SafetyRating: 4.0, InfrastructureRating: 3.8,
			BestMonths:     []string{"April", "May", "June", "September"},
			BestTimeReason: "Dry season shoulder months, before and after the Australian school-holiday peak",
			MonthlyTempsC:  []float64{27, 27, 27, 27, 27, 26, 26, 26, 26, 27, 27, 27},
			Description:    "Volcanic temples, emerald rice terraces, surf breaks, and a wellness culture that draws the world to the Island of the Gods.",
		},
		pois: []POI{
			{Name: "Tanah Lot", Category: "temple", Rating: 4.6, ReviewCount: 44210, PriceLevel: "budget", MustSee: true, Description: "Sea temple on a wave-cut rock."},
			{Name: "Tegallalang Rice Terraces", Category: "nature", Rating: 4.5, ReviewCount: 32100, PriceLevel: "budget", MustSee: true, Description: "Sculpted paddies north of Ubud."},
			{Name: "Uluwatu Temple", Category: "temple", Rating: 4.6, ReviewCount: 38450, PriceLevel: "budget", Description: "Clifftop temple with sunset kecak dance."},
			{Name: "Sacred Monkey Forest", Category: "nature", Rating: 4.3, ReviewCount: 29840, PriceLevel: "budget", Description: "Ubud's temple forest and its bold residents."},
			{Name: "Locavore NXT", Category: "restaurant", Cuisine: "indonesian", Rating: 4.7, ReviewCount: 3120, PriceLevel: "expensive", Description: "Hyper-local tasting menus in Ubud."},
			{Name: "Warung Babi Guling Ibu Oka", Category: "restaurant", Cuisine: "balinese", Rating: 4.4, ReviewCount: 12400, PriceLevel: "budget", Description: "The famous suckling pig warung."},
		},
		events: []SeasonalEvent{
			{Name: "Nyepi (Day of Silence)", StartDate: "2025-03-29", EndDate: "2025-03-30", Relevance: 0.9, Description: "The island shuts down completely; ogoh-ogoh parades the night before."},
			{Name: "Bali Arts Festival", StartDate: "2025-06-14", EndDate: "2025-07-12", Relevance: 0.75, Description: "A month of dance, gamelan, and crafts in Denpasar."},
		},
		templates: []ItineraryTemplate{
			{
				DurationDays: 4, TargetAudience: "general", TripStyle: "relaxed", Source: "curated",
				Days: mustDays(`[
					{"day":1,"morning":"Arrival and beach time in Seminyak","afternoon":"Sunset at Tanah Lot","evening":"Beach club dinner","meals":"Warung lunch, seafood on the sand","cost_estimate_usd":50},
					{"day":2,"morning":"Drive to Ubud via Tegallalang","afternoon":"Sacred Monkey Forest and palace walk","evening":"Legong dance performance","meals":"Babi guling lunch at Ibu Oka","cost_estimate_usd":45},
					{"day":3,"morning":"Sunrise yoga and campuhan ridge walk","afternoon":"Spa afternoon","evening":"Night market graze","meals":"Smoothie bowls, night market satay","cost_estimate_usd":40},
					{"day":4,"morning":"Uluwatu Temple","afternoon":"Padang Padang beach","evening":"Kecak fire dance at sunset","meals":"Fish grill at Jimbaran bay","cost_estimate_usd":55}
				]`),
			},
		},
	},
	{
		dest: Destination{
			Name: "Reykjavik", Country: "Iceland", Continent: "Europe", PrimaryLanguage: "Icelandic",
			Categories:      []string{"nature", "adventure", "wellness"},
			AvgDailyCostUSD: 210.00, BudgetTier: "luxury",
			SafetyRating: 4.9, InfrastructureRating: 4.4,
			BestMonths:     []string{"June", "July", "August", "February"},
			BestTimeReason: "Midnight sun for summer road trips; February for aurora with workable daylight",
			MonthlyTempsC:  []float64{0, 0, 1, 3, 7, 10, 12, 11, 8, 5, 2, 1},
			Description:    "The northernmost capital is the gateway to glaciers, geothermal lagoons, and the northern lights.",
		},
		pois: []POI{
			{Name: "Blue Lagoon", Category: "wellness", Rating: 4.6, ReviewCount: 51230, PriceLevel: "expensive", MustSee: true, Description: "Milky geothermal lagoon in a lava field."},
			{Name: "Hallgrímskirkja", Category: "landmark", Rating: 4.7, ReviewCount: 38900, PriceLevel: "budget", MustSee: true, Description: "Rocket-shaped church with a city-wide view."},
			{Name: "Golden Circle", Category: "nature", Rating: 4.8, ReviewCount: 45110, PriceLevel: "moderate", Description: "Þingvellir, Geysir, and Gullfoss loop."},
			{Name: "Harpa Concert Hall", Category: "landmark", Rating: 4.5, ReviewCount: 21040, PriceLevel: "free", Description: "Glass honeycomb on the harbor."},
			{Name: "Dill", Category: "restaurant", Cuisine: "new nordic", Rating: 4.6, ReviewCount: 1890, PriceLevel: "expensive", Description: "Iceland's first Michelin star."},
			{Name: "Bæjarins Beztu Pylsur", Category: "restaurant", Cuisine: "street food", Rating: 4.3, ReviewCount: 15420, PriceLevel: "budget", Description: "The famous harbor hot dog stand."},
		},
		events: []SeasonalEvent{
			{Name: "Winter Lights Festival", StartDate: "2025-02-06", EndDate: "2025-02-09", Relevance: 0.8, Description: "Light installations across the dark city."},
			{Name: "Iceland Airwaves", StartDate: "2025-11-06", EndDate: "2025-11-08", Relevance: 0.85, Description: "Showcase festival in downtown venues."},
			{Name: "Secret Solstice", StartDate: "2025-06-20", EndDate: "2025-06-22", Relevance: 0.7, Description: "Music under the midnight sun."},
		},
		templates: nil,
	},
	{
		dest: Destination{
			Name: "Marrakech", Country: "Morocco", Continent: "Africa", PrimaryLanguage: "Arabic",
			Categories:      []string{"culture", "food", "markets", "history"},
			AvgDailyCostUSD: 60.00, BudgetTier: "budget",
			SafetyRating: 3.8, InfrastructureRating: 3.9,
			BestMonths:     []string{"March", "April", "October", "November"},
			BestTimeReason: "Spring and autumn dodge the brutal summer heat of the plains",
			MonthlyTempsC:  []float64{12, 14, 17, 19, 23, 27, 31, 31, 27, 22, 17, 13},
			Description:    "The Red City's medina is a sensory maze of souks, riads, and storytellers beneath the Atlas mountains.",
		},
		pois: []POI{
			{Name: "Jemaa el-Fnaa", Category: "market", Rating: 4.5, ReviewCount: 72100, PriceLevel: "free", MustSee: true, Description: "The great square: snake charmers by day, food stalls by night."},
			{Name: "Jardin Majorelle", Category: "park", Rating: 4.6, ReviewCount: 48230, PriceLevel: "moderate", MustSee: true, Description: "Cobalt-blue garden restored by Yves Saint Laurent."},
			{Name: "Bahia Palace", Category: "landmark", Rating: 4.5, ReviewCount: 33410, PriceLevel: "budget", Description: "Nineteenth-century palace of zellige and cedar."},
			{Name: "Medina Souks", Category: "market", Rating: 4.4, ReviewCount: 29800, PriceLevel: "free", Description: "Kilometers of covered market lanes."},
			{Name: "Nomad", Category: "restaurant", Cuisine: "moroccan", Rating: 4.5, ReviewCount: 9870, PriceLevel: "moderate", Description: "Modern Moroccan on a spice-square rooftop."},
			{Name: "Mechoui Alley", Category: "restaurant", Cuisine: "moroccan", Rating: 4.4, ReviewCount: 5210, PriceLevel: "budget", Description: "Pit-roasted lamb by the kilo."},
		},
		events: []SeasonalEvent{
			{Name: "Marrakech Popular Arts Festival", StartDate: "2025-07-01", EndDate: "2025-07-06", Relevance: 0.7, Description: "Folk troupes and acrobats at El Badi Palace."},
			{Name: "Marrakech International Film Festival", StartDate: "2025-11-28", EndDate: "2025-12-06", Relevance: 0.8, Description: "Red carpets meet the red city."},
		},
		templates: nil,
	},
}

var seedProfiles = []PreferenceProfile{
	{
		PassengerID: "traveler-001",
		TravelStyle: "cultural",
		Interests:   []string{"food", "architecture", "history"},
		BudgetTier:  "moderate",
		Companion:   "partner",
		Pace:        "balanced",
		BucketList:  []string{"Tokyo", "Patagonia"},
	},
	{
		PassengerID: "traveler-002",
		TravelStyle: "adventure",
		Interests:   []string{"nature", "wellness"},
		BudgetTier:  "luxury",
		Companion:   "solo",
		Pace:        "packed",
		BucketList:  []string{"Reykjavik"},
	},
}
