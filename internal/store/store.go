// Package store implements the travel entity repository for Wayfare.
//
// It uses SQLite to hold the normalized travel domain: destinations,
// points of interest, itinerary templates, traveler preference profiles,
// seasonal events, and the append-only recommendation log. The package
// is pure data access — scoring and content decisions live elsewhere.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// ─── Types ───────────────────────────────────────────────────────────────────

// Destination is the root aggregate: a place travelers can be matched to.
type Destination struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Country              string    `json:"country"`
	Continent            string    `json:"continent"`
	PrimaryLanguage      string    `json:"primary_language"`
	Categories           []string  `json:"categories"`
	AvgDailyCostUSD      float64   `json:"avg_daily_cost_usd"`
	BudgetTier           string    `json:"budget_tier"`
	SafetyRating         float64   `json:"safety_rating"`
	InfrastructureRating float64   `json:"tourist_infrastructure_rating"`
	BestMonths           []string  `json:"best_months"`
	BestTimeReason       string    `json:"best_time_reason"`
	MonthlyTempsC        []float64 `json:"-"`
	Description          string    `json:"description"`
	ImageURL             string    `json:"image_url,omitempty"`
	Active               bool      `json:"-"`
	CreatedAt            string    `json:"-"`
	UpdatedAt            string    `json:"-"`
}

// POI is a point of interest owned by exactly one destination.
type POI struct {
	ID            int64    `json:"id"`
	DestinationID int64    `json:"-"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Cuisine       string   `json:"cuisine,omitempty"`
	Description   string   `json:"description,omitempty"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"review_count"`
	PriceLevel    string   `json:"price_level"`
	Lat           *float64 `json:"lat,omitempty"`
	Lon           *float64 `json:"lon,omitempty"`
	MustSee       bool     `json:"must_see"`
}

// DaySchedule is one day of an itinerary with named slots. Schedules are
// validated at the repository boundary rather than passed through as
// opaque JSON.
type DaySchedule struct {
	Day          int     `json:"day"`
	Morning      string  `json:"morning"`
	Afternoon    string  `json:"afternoon"`
	Evening      string  `json:"evening"`
	Meals        string  `json:"meals"`
	CostEstimate float64 `json:"cost_estimate_usd"`
}

// ItineraryTemplate is a reusable day-by-day plan for a destination.
// Source is "curated" for seeded rows and "generated" for rows persisted
// by the content resolver after a successful enrichment.
type ItineraryTemplate struct {
	ID             int64         `json:"id"`
	DestinationID  int64         `json:"-"`
	DurationDays   int           `json:"duration_days"`
	TargetAudience string        `json:"target_audience"`
	TripStyle      string        `json:"trip_style"`
	Days           []DaySchedule `json:"days"`
	UsageCount     int           `json:"usage_count"`
	Source         string        `json:"source"`
	CreatedAt      string        `json:"-"`
}

// PreferenceProfile holds the durable personalization record for one traveler.
type PreferenceProfile struct {
	PassengerID string   `json:"passenger_id"`
	TravelStyle string   `json:"travel_style"`
	Interests   []string `json:"interests"`
	BudgetTier  string   `json:"budget_tier"`
	Companion   string   `json:"companion"`
	Pace        string   `json:"pace"`
	BucketList  []string `json:"bucket_list"`
}

// SeasonalEvent is a dated event owned by one destination. Relevance in
// [0,1] is the sole ranking key within a month.
type SeasonalEvent struct {
	ID            int64   `json:"-"`
	DestinationID int64   `json:"-"`
	Name          string  `json:"name"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Relevance     float64 `json:"relevance"`
	Description   string  `json:"description,omitempty"`
}

// ShownCandidate records one destination surfaced by a scoring invocation.
type ShownCandidate struct {
	Destination string `json:"destination"`
	Score       int    `json:"score"`
}

// ─── Errors ──────────────────────────────────────────────────────────────────

// ErrNotFound is returned when a referenced destination or profile is
// absent or inactive.
var ErrNotFound = fmt.Errorf("not found")

// ─── Config & Store ──────────────────────────────────────────────────────────

// Config holds store configuration.
type Config struct {
	// DBPath is the SQLite file path. Parent directories are created.
	DBPath string
	// Seed controls whether the sample dataset is inserted into an
	// empty database on open.
	Seed bool
}

// Store is the entity repository backed by SQLite.
type Store struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// Open opens (creating if needed) the SQLite database at cfg.DBPath,
// applies pragmas, runs migrations, and seeds an empty database when
// cfg.Seed is set.
func Open(cfg Config) (*Store, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: create data dir: %w", err)
		}
	}

	db, err := openDB("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, sb: sq.StatementBuilder.PlaceholderFormat(sq.Question)}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("store: migration: %w", err)
	}
	if cfg.Seed {
		if err := s.seedIfEmpty(); err != nil {
			return nil, fmt.Errorf("store: seed: %w", err)
		}
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS destinations (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			name                TEXT    NOT NULL UNIQUE,
			country             TEXT    NOT NULL,
			continent           TEXT    NOT NULL,
			primary_language    TEXT    NOT NULL,
			categories          TEXT    NOT NULL DEFAULT '',
			avg_daily_cost_usd  REAL    NOT NULL CHECK (avg_daily_cost_usd >= 0),
			budget_tier         TEXT    NOT NULL DEFAULT 'moderate',
			safety_rating       REAL    NOT NULL CHECK (safety_rating BETWEEN 0 AND 5),
			infrastructure      REAL    NOT NULL CHECK (infrastructure BETWEEN 0 AND 5),
			best_months         TEXT    NOT NULL DEFAULT '',
			best_time_reason    TEXT    NOT NULL DEFAULT '',
			monthly_temps_c     TEXT    NOT NULL DEFAULT '',
			description         TEXT    NOT NULL DEFAULT '',
			image_url           TEXT,
			active              INTEGER NOT NULL DEFAULT 1,
			created_at          TEXT    NOT NULL DEFAULT (datetime('now')),
			updated_at          TEXT    NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_dest_active ON destinations(active);

		CREATE TABLE IF NOT EXISTS points_of_interest (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			destination_id INTEGER NOT NULL,
			name           TEXT    NOT NULL,
			category       TEXT    NOT NULL,
			cuisine        TEXT,
			description    TEXT    NOT NULL DEFAULT '',
			rating         REAL    NOT NULL DEFAULT 0 CHECK (rating BETWEEN 0 AND 5),
			review_count   INTEGER NOT NULL DEFAULT 0,
			price_level    TEXT    NOT NULL DEFAULT 'moderate',
			lat            REAL,
			lon            REAL,
			must_see       INTEGER NOT NULL DEFAULT 0,
			CHECK ((lat IS NULL) = (lon IS NULL)),
			CHECK (lat IS NULL OR (lat BETWEEN -90 AND 90 AND lon BETWEEN -180 AND 180)),
			FOREIGN KEY (destination_id) REFERENCES destinations(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_poi_dest     ON points_of_interest(destination_id);
		CREATE INDEX IF NOT EXISTS idx_poi_category ON points_of_interest(destination_id, category);

		CREATE TABLE IF NOT EXISTS itinerary_templates (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			destination_id  INTEGER NOT NULL,
			duration_days   INTEGER NOT NULL CHECK (duration_days BETWEEN 1 AND 30),
			target_audience TEXT    NOT NULL DEFAULT 'general',
			trip_style      TEXT    NOT NULL DEFAULT 'balanced',
			schedule_json   TEXT    NOT NULL,
			usage_count     INTEGER NOT NULL DEFAULT 0,
			source          TEXT    NOT NULL DEFAULT 'curated',
			created_at      TEXT    NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (destination_id) REFERENCES destinations(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_tpl_lookup ON itinerary_templates(destination_id, duration_days, target_audience);

		CREATE TABLE IF NOT EXISTS traveler_preferences (
			passenger_id TEXT PRIMARY KEY,
			travel_style TEXT NOT NULL DEFAULT '',
			interests    TEXT NOT NULL DEFAULT '',
			budget_tier  TEXT NOT NULL DEFAULT '',
			companion    TEXT NOT NULL DEFAULT '',
			pace         TEXT NOT NULL DEFAULT '',
			bucket_list  TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS seasonal_events (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			destination_id INTEGER NOT NULL,
			name           TEXT    NOT NULL,
			start_date     TEXT    NOT NULL,
			end_date       TEXT    NOT NULL,
			relevance      REAL    NOT NULL DEFAULT 0.5 CHECK (relevance BETWEEN 0 AND 1),
			description    TEXT    NOT NULL DEFAULT '',
			FOREIGN KEY (destination_id) REFERENCES destinations(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_event_dest ON seasonal_events(destination_id, start_date);

		CREATE TABLE IF NOT EXISTS recommendation_log (
			id           TEXT PRIMARY KEY,
			passenger_id TEXT NOT NULL DEFAULT '',
			created_at   TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS recommendation_log_items (
			log_id           TEXT    NOT NULL,
			destination_name TEXT    NOT NULL,
			score            INTEGER NOT NULL,
			FOREIGN KEY (log_id) REFERENCES recommendation_log(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_log_items_dest ON recommendation_log_items(destination_name);
		CREATE INDEX IF NOT EXISTS idx_log_created    ON recommendation_log(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ─── List encoding ───────────────────────────────────────────────────────────

// joinList and splitList encode string sets as comma-separated columns.
// Values never contain commas in this domain (tags, month names).
func joinList(vals []string) string {
	return strings.Join(vals, ",")
}

func splitList(col string) []string {
	if col == "" {
		return nil
	}
	parts := strings.Split(col, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func joinFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".")
	}
	return strings.Join(parts, ",")
}

func splitFloats(col string) []float64 {
	parts := splitList(col)
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		var v float64
		if _, err := fmt.Sscanf(p, "%g", &v); err == nil {
			out = append(out, v)
		}
	}
	return out
}
