// Package logbook stores fishing trips per user and derives statistics and
// catch predictions from them
package logbook

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ngmaloney/angler-terminal/internal/database"
	"github.com/ngmaloney/angler-terminal/internal/models"
)

// DateLayout is the storage and wire format of a log date
const DateLayout = "2006-01-02"

// ErrNotFound is returned when a log does not exist or belongs to another user
var ErrNotFound = errors.New("fishing log not found")

// Repository handles persistence for fishing logs
type Repository struct {
	db *sql.DB
}

// NewRepository ensures the schema exists and returns a repository over db
func NewRepository(db *sql.DB) (*Repository, error) {
	if err := database.EnsureUserSchema(db); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

const selectColumns = `
	SELECT id, user_id, date, location_id, location_name, caught_fish, fish_count, fish_types,
	       moon_phase, tide_level, fishing_type, hook_setup, bait, notes, created_at
	FROM fishing_logs`

func scanLog(row interface{ Scan(...any) error }) (models.FishingLog, error) {
	var l models.FishingLog
	var date, fishTypes, moonPhase, tideLevel string
	if err := row.Scan(&l.ID, &l.UserID, &date, &l.LocationID, &l.LocationName, &l.CaughtFish, &l.FishCount,
		&fishTypes, &moonPhase, &tideLevel, &l.FishingType, &l.HookSetup, &l.Bait, &l.Notes, &l.CreatedAt); err != nil {
		return models.FishingLog{}, err
	}

	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return models.FishingLog{}, fmt.Errorf("parsing log date %q: %w", date, err)
	}
	l.Date = d
	l.MoonPhase = models.MoonPhaseName(moonPhase)
	l.TideLevel = models.TideLevel(tideLevel)

	if fishTypes != "" {
		if err := json.Unmarshal([]byte(fishTypes), &l.FishTypes); err != nil {
			return models.FishingLog{}, fmt.Errorf("decoding fish types: %w", err)
		}
	}
	if l.FishTypes == nil {
		l.FishTypes = []string{}
	}
	return l, nil
}

func encodeFishTypes(types []string) (string, error) {
	if types == nil {
		types = []string{}
	}
	b, err := json.Marshal(types)
	if err != nil {
		return "", fmt.Errorf("encoding fish types: %w", err)
	}
	return string(b), nil
}

// Create inserts a new log and sets its ID and CreatedAt
func (r *Repository) Create(ctx context.Context, l *models.FishingLog) error {
	fishTypes, err := encodeFishTypes(l.FishTypes)
	if err != nil {
		return err
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO fishing_logs (
			user_id, date, location_id, location_name, caught_fish, fish_count, fish_types,
			moon_phase, tide_level, fishing_type, hook_setup, bait, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.UserID, l.Date.Format(DateLayout), l.LocationID, l.LocationName, l.CaughtFish, l.FishCount, fishTypes,
		string(l.MoonPhase), string(l.TideLevel), l.FishingType, l.HookSetup, l.Bait, l.Notes, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving fishing log: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	l.ID = id
	return nil
}

// ListByUser returns a user's logs, newest first
func (r *Repository) ListByUser(ctx context.Context, userID string, limit int) ([]models.FishingLog, error) {
	if limit <= 0 {
		limit = 100
	}
	return r.query(ctx, selectColumns+` WHERE user_id = ? ORDER BY date DESC, created_at DESC, id DESC LIMIT ?`, userID, limit)
}

// Get returns one log owned by userID
func (r *Repository) Get(ctx context.Context, id int64, userID string) (*models.FishingLog, error) {
	l, err := scanLog(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ? AND user_id = ?`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying fishing log: %w", err)
	}
	return &l, nil
}

// Update replaces every editable field of a log owned by l.UserID
func (r *Repository) Update(ctx context.Context, l *models.FishingLog) error {
	fishTypes, err := encodeFishTypes(l.FishTypes)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE fishing_logs
		SET date = ?, location_id = ?, location_name = ?, caught_fish = ?, fish_count = ?, fish_types = ?,
		    moon_phase = ?, tide_level = ?, fishing_type = ?, hook_setup = ?, bait = ?, notes = ?
		WHERE id = ? AND user_id = ?`,
		l.Date.Format(DateLayout), l.LocationID, l.LocationName, l.CaughtFish, l.FishCount, fishTypes,
		string(l.MoonPhase), string(l.TideLevel), l.FishingType, l.HookSetup, l.Bait, l.Notes,
		l.ID, l.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating fishing log: %w", err)
	}
	return requireAffected(res, l.ID)
}

// Delete removes a log owned by userID
func (r *Repository) Delete(ctx context.Context, id int64, userID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM fishing_logs WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("deleting fishing log: %w", err)
	}
	return requireAffected(res, id)
}

func requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// Statistics summarises all of a user's logs
func (r *Repository) Statistics(ctx context.Context, userID string) (models.LogStatistics, error) {
	var s models.LogStatistics
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN caught_fish THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(fish_count), 0),
			COUNT(DISTINCT location_id)
		FROM fishing_logs
		WHERE user_id = ?`, userID,
	).Scan(&s.TotalTrips, &s.SuccessfulTrips, &s.TotalFishCaught, &s.LocationsVisited)
	if err != nil {
		return models.LogStatistics{}, fmt.Errorf("querying statistics: %w", err)
	}
	return s, nil
}

// CatchFilter narrows the successful logs considered for predictions.
// Empty fields match everything.
type CatchFilter struct {
	LocationID  string
	FishingType string
	Bait        string
	OrderByFish bool
	Limit       int
}

// SuccessfulLogs returns logs from every user where fish were caught
func (r *Repository) SuccessfulLogs(ctx context.Context, f CatchFilter) ([]models.FishingLog, error) {
	var where []string
	var args []any
	where = append(where, "caught_fish")
	if f.LocationID != "" {
		where = append(where, "location_id = ?")
		args = append(args, f.LocationID)
	}
	if f.FishingType != "" {
		where = append(where, "fishing_type = ? COLLATE NOCASE")
		args = append(args, f.FishingType)
	}
	if f.Bait != "" {
		where = append(where, "bait = ? COLLATE NOCASE")
		args = append(args, f.Bait)
	}

	order := "date DESC, id DESC"
	if f.OrderByFish {
		order = "fish_count DESC, date DESC, id DESC"
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 500
	}
	args = append(args, limit)

	q := fmt.Sprintf("%s WHERE %s ORDER BY %s LIMIT ?", selectColumns, strings.Join(where, " AND "), order)
	return r.query(ctx, q, args...)
}

func (r *Repository) query(ctx context.Context, q string, args ...any) ([]models.FishingLog, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying fishing logs: %w", err)
	}
	defer rows.Close()

	logs := []models.FishingLog{}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning fishing log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
