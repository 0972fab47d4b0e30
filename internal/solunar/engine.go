package solunar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/ngmaloney/angler-terminal/internal/astro"
	"github.com/ngmaloney/angler-terminal/internal/models"
)

// TableFetcher retrieves published monthly rise/set tables
type TableFetcher interface {
	FetchSunTable(ctx context.Context) (models.RiseSetTable, error)
	FetchMoonTable(ctx context.Context) (models.RiseSetTable, error)
}

// DefaultRetryAfter is how long a failed table fetch is remembered before
// the source is tried again
const DefaultRetryAfter = time.Minute

// Engine computes solunar snapshots, preferring published rise/set times
// and falling back to closed-form estimates.
type Engine struct {
	fetcher    TableFetcher
	cache      *TableCache
	failures   *cache.Cache
	retryAfter time.Duration
	twilight   *Twilight
	loc        *time.Location
	timeout    time.Duration
	logger     *slog.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithFetchTimeout bounds each table fetch
func WithFetchTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithRetryAfter sets how long a failed fetch suppresses further attempts
func WithRetryAfter(d time.Duration) Option {
	return func(e *Engine) { e.retryAfter = d }
}

// WithLogger sets the engine logger
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithTwilight enables civil dawn and dusk on snapshots
func WithTwilight(tw *Twilight) Option {
	return func(e *Engine) { e.twilight = tw }
}

// NewEngine creates an engine. fetcher may be nil, in which case only estimates are used.
func NewEngine(fetcher TableFetcher, tables *TableCache, loc *time.Location, opts ...Option) *Engine {
	if tables == nil {
		tables = NewTableCache(DefaultTableTTL, nil)
	}
	e := &Engine{
		fetcher:    fetcher,
		cache:      tables,
		retryAfter: DefaultRetryAfter,
		loc:        loc,
		timeout:    10 * time.Second,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	// No janitor goroutine: expired failures are ignored by Get and overwritten.
	e.failures = cache.New(e.retryAfter, 0)
	return e
}

// Compute returns the solunar snapshot for date's local calendar day at lat, lon
func (e *Engine) Compute(ctx context.Context, date time.Time, lat, lon float64) models.SolunarSnapshot {
	local := date.In(e.loc)
	moon := astro.ComputeMoonPhase(date)
	published := e.tables(ctx)

	in := Inputs{Illumination: moon.Illumination}
	sunSource, moonSource := models.SourceLive, models.SourceLive
	var live []TableKind

	if rs, ok := e.lookup(published[SunTable], SunTable, local); ok {
		in.Sunrise, in.Sunset = *rs.Rise, *rs.Set
		live = append(live, SunTable)
	} else {
		in.Sunrise, in.Sunset = ApproximateSun(local)
		sunSource = models.SourceApproximate
	}

	if rs, ok := e.lookup(published[MoonTable], MoonTable, local); ok {
		in.Moonrise, in.Moonset = *rs.Rise, *rs.Set
		live = append(live, MoonTable)
	} else {
		in.Moonrise, in.Moonset = ApproximateMoon(moon.AgeDays)
		moonSource = models.SourceApproximate
	}

	snapshot := Build(local.Format(time.DateOnly), in, sunSource, moonSource)
	snapshot.TablesFetchedAt = e.oldestFetch(live)

	if e.twilight != nil {
		if tw, err := e.twilight.Times(local, lat, lon); err != nil {
			e.logger.Debug("civil twilight unavailable", "date", snapshot.Date, "error", err)
		} else {
			dawn, dusk := models.ClockTimeOf(tw.CivilDawn), models.ClockTimeOf(tw.CivilDusk)
			snapshot.CivilDawn, snapshot.CivilDusk = &dawn, &dusk
		}
	}

	return snapshot
}

// Refresh drops the cached tables and any remembered failures so the next
// Compute fetches both tables again
func (e *Engine) Refresh() {
	for _, kind := range []TableKind{SunTable, MoonTable} {
		e.cache.Invalidate(kind)
		e.failures.Delete(string(kind))
	}
}

type tableResult struct {
	table models.RiseSetTable
	err   error
}

// tables loads the sun and moon tables concurrently. Each result carries its
// own error; one table failing never blocks the other.
func (e *Engine) tables(ctx context.Context) map[TableKind]tableResult {
	var (
		g         errgroup.Group
		sun, moon tableResult
	)
	g.Go(func() error {
		sun.table, sun.err = e.table(ctx, SunTable)
		return nil
	})
	g.Go(func() error {
		moon.table, moon.err = e.table(ctx, MoonTable)
		return nil
	})
	_ = g.Wait()

	return map[TableKind]tableResult{SunTable: sun, MoonTable: moon}
}

// lookup returns the day's entry when both rise and set are published
func (e *Engine) lookup(res tableResult, kind TableKind, local time.Time) (models.RiseSet, bool) {
	if res.err != nil {
		e.logger.Warn("rise/set table unavailable, using estimate", "table", kind, "error", res.err)
		return models.RiseSet{}, false
	}
	rs, ok := res.table.Lookup(local)
	if !ok || !rs.Complete() {
		e.logger.Debug("no published rise/set for day", "table", kind, "date", local.Format(time.DateOnly))
		return models.RiseSet{}, false
	}
	return rs, true
}

func (e *Engine) table(ctx context.Context, kind TableKind) (models.RiseSetTable, error) {
	if table, ok := e.cache.Get(kind); ok {
		return table, nil
	}
	if e.fetcher == nil {
		return nil, fmt.Errorf("no %s table source configured", kind)
	}
	if v, ok := e.failures.Get(string(kind)); ok {
		return nil, fmt.Errorf("%s table recently failed, retrying later: %w", kind, v.(error))
	}

	table, err := e.fetch(ctx, kind)
	if err != nil {
		if ctx.Err() == nil {
			e.failures.SetDefault(string(kind), err)
		}
		return nil, err
	}

	e.cache.Put(kind, table)
	return table, nil
}

func (e *Engine) fetch(ctx context.Context, kind TableKind) (models.RiseSetTable, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var (
		table models.RiseSetTable
		err   error
	)
	switch kind {
	case SunTable:
		table, err = e.fetcher.FetchSunTable(ctx)
	case MoonTable:
		table, err = e.fetcher.FetchMoonTable(ctx)
	default:
		return nil, fmt.Errorf("unknown table %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s table: %w", kind, err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("%s table is empty", kind)
	}
	return table, nil
}

// oldestFetch returns the earliest fetch time among the given tables
func (e *Engine) oldestFetch(kinds []TableKind) *time.Time {
	var oldest *time.Time
	for _, kind := range kinds {
		at, ok := e.cache.FetchedAt(kind)
		if !ok {
			continue
		}
		if oldest == nil || at.Before(*oldest) {
			oldest = &at
		}
	}
	return oldest
}
