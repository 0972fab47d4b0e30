package logbook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ngmaloney/angler-terminal/internal/conditions"
	"github.com/ngmaloney/angler-terminal/internal/models"
)

var (
	// ErrInvalidLog is returned for logs missing required fields
	ErrInvalidLog = errors.New("invalid fishing log")
	// ErrNoData is returned when no successful trips match
	ErrNoData = errors.New("not enough catch data")
)

// LocationLookup resolves catalogue ids
type LocationLookup interface {
	LocationByID(ctx context.Context, id string) (models.Location, error)
}

// ConditionsProvider supplies the environmental snapshot used to fill in
// conditions the angler did not record
type ConditionsProvider interface {
	Snapshot(ctx context.Context, req conditions.Request) (*models.EnvironmentalSnapshot, error)
}

// Service orchestrates fishing log operations
type Service struct {
	repo       *Repository
	locations  LocationLookup
	conditions ConditionsProvider
	logger     *slog.Logger
}

// NewService creates a new logbook service. conditions may be nil, in which
// case unrecorded moon and tide fields stay empty.
func NewService(repo *Repository, locations LocationLookup, conditions ConditionsProvider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		locations:  locations,
		conditions: conditions,
		logger:     logger.With("module", "logbook"),
	}
}

// prepare validates l and resolves its location name
func (s *Service) prepare(ctx context.Context, l *models.FishingLog) error {
	l.UserID = strings.TrimSpace(l.UserID)
	if l.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidLog)
	}
	if l.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidLog)
	}
	if l.FishCount < 0 {
		return fmt.Errorf("%w: fish count cannot be negative", ErrInvalidLog)
	}

	loc, err := s.locations.LocationByID(ctx, l.LocationID)
	if err != nil {
		return fmt.Errorf("%w: unknown location %q", ErrInvalidLog, l.LocationID)
	}
	l.LocationName = loc.Name

	if l.FishCount > 0 {
		l.CaughtFish = true
	}
	return nil
}

// fillConditions records the moon phase and tide level at midday of the
// trip date when the angler left them blank
func (s *Service) fillConditions(ctx context.Context, l *models.FishingLog) {
	if s.conditions == nil || (l.MoonPhase != "" && l.TideLevel != "") {
		return
	}

	snap, err := s.conditions.Snapshot(ctx, conditions.Request{
		Date:          l.Date.Format(DateLayout),
		ReferenceTime: l.Date.Format(DateLayout) + "T12:00",
		LocationID:    l.LocationID,
	})
	if err != nil {
		s.logger.Warn("could not fill log conditions", "location", l.LocationID, "date", l.Date.Format(DateLayout), "error", err)
		return
	}

	if l.MoonPhase == "" {
		l.MoonPhase = snap.Moon.Phase
	}
	if l.TideLevel == "" {
		l.TideLevel = snap.Tide.Level
	}
}

// Create validates and stores a new log
func (s *Service) Create(ctx context.Context, l *models.FishingLog) error {
	if err := s.prepare(ctx, l); err != nil {
		return err
	}
	s.fillConditions(ctx, l)

	if err := s.repo.Create(ctx, l); err != nil {
		return err
	}
	s.logger.Info("fishing log created", "id", l.ID, "user", l.UserID, "location", l.LocationID)
	return nil
}

// Update validates and replaces an existing log
func (s *Service) Update(ctx context.Context, l *models.FishingLog) error {
	if err := s.prepare(ctx, l); err != nil {
		return err
	}
	return s.repo.Update(ctx, l)
}

// List returns a user's logs, newest first
func (s *Service) List(ctx context.Context, userID string, limit int) ([]models.FishingLog, error) {
	return s.repo.ListByUser(ctx, userID, limit)
}

// Get returns one of the user's logs
func (s *Service) Get(ctx context.Context, id int64, userID string) (*models.FishingLog, error) {
	return s.repo.Get(ctx, id, userID)
}

// Delete removes one of the user's logs
func (s *Service) Delete(ctx context.Context, id int64, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}

// Statistics summarises the user's logs
func (s *Service) Statistics(ctx context.Context, userID string) (models.LogStatistics, error) {
	return s.repo.Statistics(ctx, userID)
}

// Predictions derives the best conditions from the community's most recent
// successful trips
func (s *Service) Predictions(ctx context.Context) (*models.CatchPredictions, error) {
	logs, err := s.repo.SuccessfulLogs(ctx, CatchFilter{Limit: 500})
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, ErrNoData
	}
	p := predictionsFromLogs(logs)
	return &p, nil
}

// LocationStats summarises successful trips at one location
func (s *Service) LocationStats(ctx context.Context, locationID string) (*models.LocationStats, error) {
	if _, err := s.locations.LocationByID(ctx, locationID); err != nil {
		return nil, err
	}

	logs, err := s.repo.SuccessfulLogs(ctx, CatchFilter{LocationID: locationID, Limit: 1000})
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, ErrNoData
	}
	st := locationStatsFromLogs(locationID, logs)
	return &st, nil
}

// BestConditions analyses the hundred most productive successful trips for
// an optional fishing type and bait
func (s *Service) BestConditions(ctx context.Context, fishingType, bait string) (*models.BestConditions, error) {
	logs, err := s.repo.SuccessfulLogs(ctx, CatchFilter{
		FishingType: fishingType,
		Bait:        bait,
		OrderByFish: true,
		Limit:       100,
	})
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, ErrNoData
	}
	bc := bestConditionsFromLogs(fishingType, bait, logs)
	return &bc, nil
}
