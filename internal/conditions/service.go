// Package conditions assembles environmental snapshots for a fishing
// location by fanning out to the astronomical, tidal, solunar, weather and
// marine sources and falling back per source when one is unavailable.
package conditions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ngmaloney/angler-terminal/internal/astro"
	"github.com/ngmaloney/angler-terminal/internal/models"
	"github.com/ngmaloney/angler-terminal/internal/openmeteo"
	"github.com/ngmaloney/angler-terminal/internal/solunar"
	"github.com/ngmaloney/angler-terminal/internal/tides"
)

var (
	ErrInvalidDate        = astro.ErrInvalidDate
	ErrInvalidTime        = errors.New("invalid time")
	ErrUnknownLocation    = errors.New("unknown location")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// Mauritius is UTC+4 all year.
var Mauritius = time.FixedZone("Indian/Mauritius", 4*60*60)

// Upstream source names used in logs and metrics
const (
	SourceTide           = "tide"
	SourceWeather        = "weather"
	SourceMarine         = "marine"
	SourceSeaTemperature = "sea_temperature"
	SourceSolunar        = "solunar"
)

// LocationLookup resolves catalogue locations
type LocationLookup interface {
	LocationByID(ctx context.Context, id string) (models.Location, error)
	Nearest(ctx context.Context, lat, lon float64) (models.Location, float64, error)
}

// RegionResolver maps coordinates to a fishing region name
type RegionResolver interface {
	Lookup(lat, lon float64) (string, bool)
}

// Recorder receives upstream timings and fallback events
type Recorder interface {
	ObserveUpstream(source string, elapsed time.Duration, err error)
	RecordFallback(source string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveUpstream(string, time.Duration, error) {}
func (nopRecorder) RecordFallback(string)                        {}

// Timeouts bound each upstream branch
type Timeouts struct {
	Tide           time.Duration
	Weather        time.Duration
	Marine         time.Duration
	SeaTemperature time.Duration
}

// DefaultTimeouts applies to every Open-Meteo call
var DefaultTimeouts = Timeouts{
	Tide:           5 * time.Second,
	Weather:        5 * time.Second,
	Marine:         5 * time.Second,
	SeaTemperature: 5 * time.Second,
}

// Request selects a catalogue location and instant
type Request struct {
	Date          string // YYYY-MM-DD
	ReferenceTime string // optional; ISO-8601 or HH:MM, local to Mauritius when unqualified
	LocationID    string
}

// Service builds environmental snapshots
type Service struct {
	locations LocationLookup
	regions   RegionResolver
	marine    openmeteo.MarineClient
	weather   openmeteo.WeatherClient
	solunar   *solunar.Engine
	harmonic  tides.HarmonicModel
	live      tides.Thresholds
	timeouts  Timeouts
	loc       *time.Location
	clock     solunar.Clock
	metrics   Recorder
	logger    *slog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithMarineClient sets the sea level, wave and sea temperature source
func WithMarineClient(c openmeteo.MarineClient) Option {
	return func(s *Service) { s.marine = c }
}

// WithWeatherClient sets the hourly weather source
func WithWeatherClient(c openmeteo.WeatherClient) Option {
	return func(s *Service) { s.weather = c }
}

// WithSolunarEngine sets the solunar engine
func WithSolunarEngine(e *solunar.Engine) Option {
	return func(s *Service) { s.solunar = e }
}

// WithRegions sets the region resolver used for custom coordinates
func WithRegions(r RegionResolver) Option {
	return func(s *Service) { s.regions = r }
}

// WithHarmonicModel overrides the fallback tide model
func WithHarmonicModel(m tides.HarmonicModel) Option {
	return func(s *Service) { s.harmonic = m }
}

// WithLiveThresholds overrides the level bands for live tide readings
func WithLiveThresholds(th tides.Thresholds) Option {
	return func(s *Service) { s.live = th }
}

// WithTimeouts overrides the per-branch timeouts; zero fields keep defaults
func WithTimeouts(t Timeouts) Option {
	return func(s *Service) {
		if t.Tide > 0 {
			s.timeouts.Tide = t.Tide
		}
		if t.Weather > 0 {
			s.timeouts.Weather = t.Weather
		}
		if t.Marine > 0 {
			s.timeouts.Marine = t.Marine
		}
		if t.SeaTemperature > 0 {
			s.timeouts.SeaTemperature = t.SeaTemperature
		}
	}
}

// WithTimeLocation sets the zone all time-of-day logic is anchored to
func WithTimeLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// WithClock sets the source of "now" for requests without a reference time
func WithClock(c solunar.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithRecorder sets the metrics recorder
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.metrics = r }
}

// WithLogger sets the service logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a conditions service. Without marine or weather
// clients those readings always use their fallbacks.
func NewService(locations LocationLookup, opts ...Option) *Service {
	s := &Service{
		locations: locations,
		harmonic:  tides.PortLouis(),
		live:      tides.LiveThresholds,
		timeouts:  DefaultTimeouts,
		loc:       Mauritius,
		clock:     solunar.SystemClock,
		metrics:   nopRecorder{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.solunar == nil {
		s.solunar = solunar.NewEngine(nil, nil, s.loc, solunar.WithLogger(s.logger))
	}
	s.logger = s.logger.With("module", "conditions")
	return s
}

// Location returns the zone the service works in
func (s *Service) Location() *time.Location { return s.loc }

// Today is the current local date as "2006-01-02"
func (s *Service) Today() string {
	return s.clock.Now().In(s.loc).Format(time.DateOnly)
}

// Moon returns the moon phase for a date
func (s *Service) Moon(date string) (models.MoonPhase, error) {
	day, err := parseDay(date)
	if err != nil {
		return models.MoonPhase{}, err
	}
	return s.moon(day), nil
}

// RefreshSolunarTables discards the cached published rise/set tables so the
// next request fetches them again
func (s *Service) RefreshSolunarTables() {
	s.solunar.Refresh()
}

// moon computes the phase with next new and full moon in local time
func (s *Service) moon(day time.Time) models.MoonPhase {
	m := astro.ComputeMoonPhase(day)
	m.NextNewMoon = m.NextNewMoon.In(s.loc)
	m.NextFullMoon = m.NextFullMoon.In(s.loc)
	return m
}

// Tide returns the tide at lat, lon. ref pins the instant; empty means now.
func (s *Service) Tide(ctx context.Context, lat, lon float64, date, ref string) (models.TideReading, error) {
	day, at, err := s.parseTimes(date, ref)
	if err != nil {
		return models.TideReading{}, err
	}
	if err := validateCoordinates(lat, lon); err != nil {
		return models.TideReading{}, err
	}
	return s.tide(ctx, lat, lon, day, at), nil
}

// Solunar returns the solunar snapshot for a date at lat, lon
func (s *Service) Solunar(ctx context.Context, date string, lat, lon float64) (models.SolunarSnapshot, error) {
	day, err := parseDay(date)
	if err != nil {
		return models.SolunarSnapshot{}, err
	}
	if err := validateCoordinates(lat, lon); err != nil {
		return models.SolunarSnapshot{}, err
	}
	return s.solunarSnapshot(ctx, day, lat, lon), nil
}

// CurrentActivity reports which solunar period contains the local time hhmm
func (s *Service) CurrentActivity(snapshot *models.SolunarSnapshot, hhmm string) (models.CurrentActivity, error) {
	at, err := models.ParseClockTime(hhmm)
	if err != nil {
		return models.CurrentActivity{}, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	return solunar.CurrentActivity(snapshot, at), nil
}

// Snapshot assembles every reading for a catalogue location
func (s *Service) Snapshot(ctx context.Context, req Request) (*models.EnvironmentalSnapshot, error) {
	day, at, err := s.parseTimes(req.Date, req.ReferenceTime)
	if err != nil {
		return nil, err
	}

	id := strings.TrimSpace(req.LocationID)
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrUnknownLocation)
	}
	loc, err := s.locations.LocationByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrUnknownLocation, id, err)
	}

	return s.assemble(ctx, day, at, loc), nil
}

// SnapshotAt assembles every reading for arbitrary coordinates
func (s *Service) SnapshotAt(ctx context.Context, date, ref string, lat, lon float64) (*models.EnvironmentalSnapshot, error) {
	day, at, err := s.parseTimes(date, ref)
	if err != nil {
		return nil, err
	}
	if err := validateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	return s.assemble(ctx, day, at, s.customLocation(ctx, lat, lon)), nil
}

func (s *Service) parseTimes(date, ref string) (time.Time, time.Time, error) {
	day, err := parseDay(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	at, err := parseReference(ref, day, s.loc, s.clock.Now())
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return day, at, nil
}

// customLocation names a point by its region, taken from the region index
// or else from the nearest catalogue location
func (s *Service) customLocation(ctx context.Context, lat, lon float64) models.Location {
	l := models.Location{
		ID:        "custom",
		Name:      fmt.Sprintf("Custom (%.4f, %.4f)", lat, lon),
		Latitude:  lat,
		Longitude: lon,
		Type:      models.LocationCustom,
	}

	if s.regions != nil {
		if region, ok := s.regions.Lookup(lat, lon); ok {
			l.Region = region
		}
	}

	nearest, dist, err := s.locations.Nearest(ctx, lat, lon)
	if err != nil {
		s.logger.Debug("no nearby catalogue location", "lat", lat, "lon", lon, "error", err)
		return l
	}
	l.Name = fmt.Sprintf("Custom (%.1f km from %s)", dist, nearest.Name)
	if l.Region == "" {
		l.Region = nearest.Region
	}
	return l
}

// assemble runs every branch concurrently. No branch returns an error;
// each settles on live data or its fallback.
func (s *Service) assemble(ctx context.Context, day, at time.Time, loc models.Location) *models.EnvironmentalSnapshot {
	snap := &models.EnvironmentalSnapshot{
		Date:          day.Format(time.DateOnly),
		ReferenceTime: at.In(s.loc),
		Location:      loc,
	}
	lat, lon := loc.Latitude, loc.Longitude

	var g errgroup.Group
	g.Go(func() error {
		snap.Moon = s.moon(day)
		return nil
	})
	g.Go(func() error {
		snap.Tide = s.tide(ctx, lat, lon, day, at)
		return nil
	})
	g.Go(func() error {
		snap.Solunar = s.solunarSnapshot(ctx, day, lat, lon)
		return nil
	})
	g.Go(func() error {
		snap.Weather = s.weatherReading(ctx, lat, lon, at)
		return nil
	})
	g.Go(func() error {
		snap.Marine = s.marineReading(ctx, lat, lon, at)
		return nil
	})
	g.Go(func() error {
		snap.SeaTemperature = s.seaTemperature(ctx, lat, lon, at)
		return nil
	})
	_ = g.Wait()

	snap.CurrentActivity = solunar.CurrentActivity(&snap.Solunar, models.ClockTimeOf(at.In(s.loc)))

	if est := snap.Estimated(); len(est) > 0 {
		s.logger.Debug("snapshot uses estimates", "location", loc.ID, "estimated", est)
	}
	return snap
}

// fetch times an upstream call bounded by timeout
func fetch[T any](ctx context.Context, s *Service, source string, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	v, err := callWithTimeout(ctx, timeout, fn)
	s.metrics.ObserveUpstream(source, time.Since(start), err)
	return v, err
}

func (s *Service) fallback(source string, err error) {
	s.logger.Warn("upstream unavailable, using fallback", "source", source, "error", err)
	s.metrics.RecordFallback(source)
}

var errNoClient = errors.New("no client configured")

// tide prefers the live sea level series and falls back to the harmonic model
func (s *Service) tide(ctx context.Context, lat, lon float64, day, at time.Time) models.TideReading {
	reading, err := s.liveTide(ctx, lat, lon, day, at)
	if err != nil {
		s.fallback(SourceTide, err)
		reading = s.harmonic.Synthesize(at, s.loc)
	}
	return tides.Normalize(reading, s.loc)
}

func (s *Service) liveTide(ctx context.Context, lat, lon float64, day, at time.Time) (models.TideReading, error) {
	if s.marine == nil {
		return models.TideReading{}, errNoClient
	}
	series, err := fetch(ctx, s, SourceTide, s.timeouts.Tide, func(ctx context.Context) ([]models.TidePoint, error) {
		return s.marine.GetSeaLevelSeries(ctx, lat, lon, day)
	})
	if err != nil {
		return models.TideReading{}, err
	}
	reading, err := tides.Interpolate(series, at, s.live)
	if err != nil {
		return models.TideReading{}, err
	}
	reading.Provider = "open-meteo"
	return reading, nil
}

func (s *Service) weatherReading(ctx context.Context, lat, lon float64, at time.Time) models.WeatherReading {
	if s.weather == nil {
		s.fallback(SourceWeather, errNoClient)
		return FallbackWeather(at)
	}
	w, err := fetch(ctx, s, SourceWeather, s.timeouts.Weather, func(ctx context.Context) (*models.WeatherReading, error) {
		return s.weather.GetHourlyWeather(ctx, lat, lon, at)
	})
	if err != nil || w == nil {
		s.fallback(SourceWeather, err)
		return FallbackWeather(at)
	}
	return *w
}

func (s *Service) marineReading(ctx context.Context, lat, lon float64, at time.Time) models.MarineReading {
	if s.marine == nil {
		s.fallback(SourceMarine, errNoClient)
		return FallbackMarine()
	}
	m, err := fetch(ctx, s, SourceMarine, s.timeouts.Marine, func(ctx context.Context) (*models.MarineReading, error) {
		return s.marine.GetWaveConditions(ctx, lat, lon, at)
	})
	if err != nil || m == nil {
		s.fallback(SourceMarine, err)
		return FallbackMarine()
	}
	return *m
}

func (s *Service) seaTemperature(ctx context.Context, lat, lon float64, at time.Time) models.SeaTemperatureReading {
	if s.marine == nil {
		s.fallback(SourceSeaTemperature, errNoClient)
		return FallbackSeaTemperatureReading()
	}
	t, err := fetch(ctx, s, SourceSeaTemperature, s.timeouts.SeaTemperature, func(ctx context.Context) (*models.SeaTemperatureReading, error) {
		return s.marine.GetSeaSurfaceTemperature(ctx, lat, lon, at)
	})
	if err != nil || t == nil {
		s.fallback(SourceSeaTemperature, err)
		return FallbackSeaTemperatureReading()
	}
	return *t
}

func (s *Service) solunarSnapshot(ctx context.Context, day time.Time, lat, lon float64) models.SolunarSnapshot {
	snap := s.solunar.Compute(ctx, day, lat, lon)
	if snap.SunSource.IsEstimate() || snap.MoonSource.IsEstimate() {
		s.metrics.RecordFallback(SourceSolunar)
	}
	return snap
}
