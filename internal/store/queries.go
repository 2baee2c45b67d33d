package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const destinationCols = `id, name, country, continent, primary_language, categories,
	avg_daily_cost_usd, budget_tier, safety_rating, infrastructure,
	best_months, best_time_reason, monthly_temps_c, description, image_url,
	active, created_at, updated_at`

func scanDestination(row interface{ Scan(...any) error }) (Destination, error) {
	var d Destination
	var cats, months, temps string
	var img sql.NullString
	err := row.Scan(
		&d.ID, &d.Name, &d.Country, &d.Continent, &d.PrimaryLanguage, &cats,
		&d.AvgDailyCostUSD, &d.BudgetTier, &d.SafetyRating, &d.InfrastructureRating,
		&months, &d.BestTimeReason, &temps, &d.Description, &img,
		&d.Active, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return Destination{}, err
	}
	d.Categories = splitList(cats)
	d.BestMonths = splitList(months)
	d.MonthlyTempsC = splitFloats(temps)
	d.ImageURL = img.String
	return d, nil
}

// DestinationByName returns the active destination with the given name,
// matched case-insensitively. Returns ErrNotFound when absent or inactive.
func (s *Store) DestinationByName(name string) (Destination, error) {
	row := s.db.QueryRow(
		`SELECT `+destinationCols+` FROM destinations
		 WHERE active = 1 AND name = ? COLLATE NOCASE`,
		strings.TrimSpace(name),
	)
	d, err := scanDestination(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Destination{}, fmt.Errorf("destination %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Destination{}, fmt.Errorf("destination by name: %w", err)
	}
	return d, nil
}

// ActiveDestinations returns every active destination in insertion order.
func (s *Store) ActiveDestinations() ([]Destination, error) {
	rows, err := s.db.Query(
		`SELECT ` + destinationCols + ` FROM destinations WHERE active = 1 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("active destinations: %w", err)
	}
	defer rows.Close()

	var out []Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DestinationsByNames resolves each name to an active destination,
// preserving request order. A single missing name fails the whole lookup
// with ErrNotFound naming the offender.
func (s *Store) DestinationsByNames(names []string) ([]Destination, error) {
	out := make([]Destination, 0, len(names))
	for _, n := range names {
		d, err := s.DestinationByName(n)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// ─── Points of interest ──────────────────────────────────────────────────────

// POIFilter narrows a point-of-interest listing. Zero values mean "no filter".
type POIFilter struct {
	Categories []string
	Cuisines   []string
	PriceLevel string
	Limit      int
}

// POIs lists points of interest for a destination, must-see entries first,
// then by rating descending. Optional filters are applied conjunctively.
func (s *Store) POIs(destinationID int64, f POIFilter) ([]POI, error) {
	q := s.sb.Select(
		"id", "destination_id", "name", "category", "cuisine", "description",
		"rating", "review_count", "price_level", "lat", "lon", "must_see",
	).
		From("points_of_interest").
		Where(sq.Eq{"destination_id": destinationID}).
		OrderBy("must_see DESC", "rating DESC", "id")

	if len(f.Categories) > 0 {
		q = q.Where(sq.Eq{"category": f.Categories})
	}
	if len(f.Cuisines) > 0 {
		q = q.Where(sq.Eq{"cuisine": f.Cuisines})
	}
	if f.PriceLevel != "" {
		q = q.Where(sq.Eq{"price_level": f.PriceLevel})
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("pois: build query: %w", err)
	}
	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("pois: %w", err)
	}
	defer rows.Close()

	var out []POI
	for rows.Next() {
		var p POI
		var cuisine sql.NullString
		var lat, lon sql.NullFloat64
		if err := rows.Scan(
			&p.ID, &p.DestinationID, &p.Name, &p.Category, &cuisine, &p.Description,
			&p.Rating, &p.ReviewCount, &p.PriceLevel, &lat, &lon, &p.MustSee,
		); err != nil {
			return nil, err
		}
		p.Cuisine = cuisine.String
		if lat.Valid && lon.Valid {
			p.Lat, p.Lon = &lat.Float64, &lon.Float64
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CountPOIs returns the number of points of interest per destination id.
func (s *Store) CountPOIs(destinationIDs []int64) (map[int64]int, error) {
	sqlStr, args, err := s.sb.Select("destination_id", "COUNT(*)").
		From("points_of_interest").
		Where(sq.Eq{"destination_id": destinationIDs}).
		GroupBy("destination_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("count pois: build query: %w", err)
	}
	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("count pois: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int, len(destinationIDs))
	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// ─── Itinerary templates ─────────────────────────────────────────────────────

func scanTemplate(row interface{ Scan(...any) error }) (ItineraryTemplate, error) {
	var t ItineraryTemplate
	var scheduleJSON string
	err := row.Scan(
		&t.ID, &t.DestinationID, &t.DurationDays, &t.TargetAudience,
		&t.TripStyle, &scheduleJSON, &t.UsageCount, &t.Source, &t.CreatedAt,
	)
	if err != nil {
		return ItineraryTemplate{}, err
	}
	if err := json.Unmarshal([]byte(scheduleJSON), &t.Days); err != nil {
		return ItineraryTemplate{}, fmt.Errorf("template %d: bad schedule: %w", t.ID, err)
	}
	return t, nil
}

// TemplateFor finds a reusable itinerary template for the destination and
// duration. When audience is non-empty an exact audience match is required;
// among matches the most-used template wins. The boolean reports whether a
// template was found — absence is not an error.
func (s *Store) TemplateFor(destinationID int64, durationDays int, audience string) (ItineraryTemplate, bool, error) {
	q := s.sb.Select(
		"id", "destination_id", "duration_days", "target_audience",
		"trip_style", "schedule_json", "usage_count", "source", "created_at",
	).
		From("itinerary_templates").
		Where(sq.Eq{"destination_id": destinationID, "duration_days": durationDays}).
		OrderBy("usage_count DESC", "id").
		Limit(1)
	if audience != "" {
		q = q.Where(sq.Eq{"target_audience": audience})
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return ItineraryTemplate{}, false, fmt.Errorf("template lookup: build query: %w", err)
	}
	t, err := scanTemplate(s.db.QueryRow(sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return ItineraryTemplate{}, false, nil
	}
	if err != nil {
		return ItineraryTemplate{}, false, fmt.Errorf("template lookup: %w", err)
	}
	return t, true, nil
}

// IncrementTemplateUsage bumps a template's usage counter. The
// read-then-increment is not atomic with the lookup; a lost update is an
// acceptable race, not a correctness violation.
func (s *Store) IncrementTemplateUsage(id int64) error {
	_, err := s.db.Exec(
		`UPDATE itinerary_templates SET usage_count = usage_count + 1 WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("increment template usage: %w", err)
	}
	return nil
}

// InsertTemplate persists a new itinerary template and returns its id.
// The schedule is validated before writing: day numbers must run 1..N with
// every slot non-empty.
func (s *Store) InsertTemplate(t ItineraryTemplate) (int64, error) {
	if err := ValidateSchedule(t.Days, t.DurationDays); err != nil {
		return 0, fmt.Errorf("insert template: %w", err)
	}
	scheduleJSON, err := json.Marshal(t.Days)
	if err != nil {
		return 0, fmt.Errorf("insert template: encode schedule: %w", err)
	}
	res, err := s.db.Exec(
		`INSERT INTO itinerary_templates
		   (destination_id, duration_days, target_audience, trip_style, schedule_json, usage_count, source)
		 VALUES (?, ?, ?, ?, ?, 0, ?)`,
		t.DestinationID, t.DurationDays, t.TargetAudience, t.TripStyle, string(scheduleJSON), t.Source,
	)
	if err != nil {
		return 0, fmt.Errorf("insert template: %w", err)
	}
	return res.LastInsertId()
}

// ValidateSchedule checks that a day-indexed schedule is structurally
// complete: exactly wantDays entries numbered 1..N, each slot populated.
func ValidateSchedule(days []DaySchedule, wantDays int) error {
	if len(days) != wantDays {
		return fmt.Errorf("schedule has %d days, want %d", len(days), wantDays)
	}
	for i, d := range days {
		if d.Day != i+1 {
			return fmt.Errorf("day %d numbered %d", i+1, d.Day)
		}
		if d.Morning == "" || d.Afternoon == "" || d.Evening == "" || d.Meals == "" {
			return fmt.Errorf("day %d has an empty slot", d.Day)
		}
		if d.CostEstimate < 0 {
			return fmt.Errorf("day %d has negative cost", d.Day)
		}
	}
	return nil
}

// ─── Traveler preferences ────────────────────────────────────────────────────

// Profile returns the preference profile for a passenger, or ErrNotFound.
func (s *Store) Profile(passengerID string) (PreferenceProfile, error) {
	var p PreferenceProfile
	var interests, bucket string
	err := s.db.QueryRow(
		`SELECT passenger_id, travel_style, interests, budget_tier, companion, pace, bucket_list
		 FROM traveler_preferences WHERE passenger_id = ?`, passengerID,
	).Scan(&p.PassengerID, &p.TravelStyle, &interests, &p.BudgetTier, &p.Companion, &p.Pace, &bucket)
	if errors.Is(err, sql.ErrNoRows) {
		return PreferenceProfile{}, fmt.Errorf("profile %q: %w", passengerID, ErrNotFound)
	}
	if err != nil {
		return PreferenceProfile{}, fmt.Errorf("profile: %w", err)
	}
	p.Interests = splitList(interests)
	p.BucketList = splitList(bucket)
	return p, nil
}

// UpsertProfile writes a preference profile. Profiles are normally managed
// by an external collaborator; this exists for seeding and tests.
func (s *Store) UpsertProfile(p PreferenceProfile) error {
	_, err := s.db.Exec(
		`INSERT INTO traveler_preferences
		   (passenger_id, travel_style, interests, budget_tier, companion, pace, bucket_list)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(passenger_id) DO UPDATE SET
		   travel_style = excluded.travel_style,
		   interests    = excluded.interests,
		   budget_tier  = excluded.budget_tier,
		   companion    = excluded.companion,
		   pace         = excluded.pace,
		   bucket_list  = excluded.bucket_list`,
		p.PassengerID, p.TravelStyle, joinList(p.Interests), p.BudgetTier,
		p.Companion, p.Pace, joinList(p.BucketList),
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// ─── Seasonal events ─────────────────────────────────────────────────────────

// EventsForMonth returns a destination's events overlapping the given
// calendar month (1-12), ordered by relevance descending, capped at 5.
// An event counts for every month in its [start,end] range, not just the
// endpoints. Zero-padded month strings compare correctly as text.
func (s *Store) EventsForMonth(destinationID int64, month int) ([]SeasonalEvent, error) {
	mm := fmt.Sprintf("%02d", month)
	rows, err := s.db.Query(
		`SELECT id, destination_id, name, start_date, end_date, relevance, description
		 FROM seasonal_events
		 WHERE destination_id = ?
		   AND strftime('%m', start_date) <= ?
		   AND strftime('%m', end_date) >= ?
		 ORDER BY relevance DESC, id
		 LIMIT 5`,
		destinationID, mm, mm,
	)
	if err != nil {
		return nil, fmt.Errorf("events for month: %w", err)
	}
	defer rows.Close()

	var out []SeasonalEvent
	for rows.Next() {
		var e SeasonalEvent
		if err := rows.Scan(&e.ID, &e.DestinationID, &e.Name, &e.StartDate, &e.EndDate, &e.Relevance, &e.Description); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ─── Recommendation log ──────────────────────────────────────────────────────

// AppendRecommendationLog records one scoring invocation. The write is a
// single transaction (header row plus one item per shown candidate) but
// callers treat failure as non-critical.
func (s *Store) AppendRecommendationLog(passengerID string, shown []ShownCandidate) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("recommendation log: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	if _, err := tx.Exec(
		`INSERT INTO recommendation_log (id, passenger_id) VALUES (?, ?)`, id, passengerID,
	); err != nil {
		return fmt.Errorf("recommendation log: %w", err)
	}
	for _, c := range shown {
		if _, err := tx.Exec(
			`INSERT INTO recommendation_log_items (log_id, destination_name, score) VALUES (?, ?, ?)`,
			id, c.Destination, c.Score,
		); err != nil {
			return fmt.Errorf("recommendation log item: %w", err)
		}
	}
	return tx.Commit()
}

// PopularityCounts returns, per destination name, how many historical log
// entries surfaced it. Names not present in the log are absent from the map.
func (s *Store) PopularityCounts() (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT destination_name, COUNT(*) FROM recommendation_log_items GROUP BY destination_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("popularity counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		counts[name] = n
	}
	return counts, rows.Err()
}

// ─── Analytics ───────────────────────────────────────────────────────────────

// TemplateUsage is one row of the template-usage leaderboard.
type TemplateUsage struct {
	Destination  string `json:"destination"`
	DurationDays int    `json:"duration_days"`
	Audience     string `json:"target_audience"`
	Source       string `json:"source"`
	UsageCount   int    `json:"usage_count"`
}

// PerformanceStats aggregates content-performance figures for a period.
type PerformanceStats struct {
	RecommendationCount int             `json:"recommendation_count"`
	TemplateCount       int             `json:"template_count"`
	GeneratedTemplates  int             `json:"generated_templates"`
	CuratedTemplates    int             `json:"curated_templates"`
	TopTemplates        []TemplateUsage `json:"top_templates"`
}

// boundByCreatedAt narrows a query to [start,end] on the named created_at
// column. Empty bounds are left open. Dates are ISO8601 strings compared
// lexically, which is sound for this format.
func boundByCreatedAt(q sq.SelectBuilder, col, start, end string) sq.SelectBuilder {
	if start != "" {
		q = q.Where(sq.GtOrEq{col: start})
	}
	if end != "" {
		q = q.Where(sq.LtOrEq{col: end})
	}
	return q
}

// PerformanceBetween computes content-performance aggregates. The period
// bounds apply to recommendation volume and to template creation alike.
func (s *Store) PerformanceBetween(start, end string) (PerformanceStats, error) {
	var stats PerformanceStats

	recQ := boundByCreatedAt(s.sb.Select("COUNT(*)").From("recommendation_log"), "created_at", start, end)
	sqlStr, args, err := recQ.ToSql()
	if err != nil {
		return stats, fmt.Errorf("performance: build query: %w", err)
	}
	if err := s.db.QueryRow(sqlStr, args...).Scan(&stats.RecommendationCount); err != nil {
		return stats, fmt.Errorf("performance: recommendations: %w", err)
	}

	tplQ := boundByCreatedAt(s.sb.Select(
		"COUNT(*)",
		"COALESCE(SUM(CASE WHEN source = 'generated' THEN 1 ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN source = 'curated' THEN 1 ELSE 0 END), 0)",
	).From("itinerary_templates"), "created_at", start, end)
	sqlStr, args, err = tplQ.ToSql()
	if err != nil {
		return stats, fmt.Errorf("performance: build query: %w", err)
	}
	if err := s.db.QueryRow(sqlStr, args...).Scan(
		&stats.TemplateCount, &stats.GeneratedTemplates, &stats.CuratedTemplates,
	); err != nil {
		return stats, fmt.Errorf("performance: templates: %w", err)
	}

	topQ := boundByCreatedAt(s.sb.Select(
		"d.name", "t.duration_days", "t.target_audience", "t.source", "t.usage_count",
	).
		From("itinerary_templates t").
		Join("destinations d ON d.id = t.destination_id").
		OrderBy("t.usage_count DESC", "t.id").
		Limit(10), "t.created_at", start, end)
	sqlStr, args, err = topQ.ToSql()
	if err != nil {
		return stats, fmt.Errorf("performance: build query: %w", err)
	}
	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return stats, fmt.Errorf("performance: top templates: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var u TemplateUsage
		if err := rows.Scan(&u.Destination, &u.DurationDays, &u.Audience, &u.Source, &u.UsageCount); err != nil {
			return stats, err
		}
		stats.TopTemplates = append(stats.TopTemplates, u)
	}
	return stats, rows.Err()
}
