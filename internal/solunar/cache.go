package solunar

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

// TableKind names a published rise/set table
type TableKind string

const (
	SunTable  TableKind = "sun"
	MoonTable TableKind = "moon"
)

// DefaultTableTTL is how long a fetched table stays valid
const DefaultTableTTL = 24 * time.Hour

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is the wall clock
var SystemClock Clock = ClockFunc(time.Now)

type cachedTable struct {
	table     models.RiseSetTable
	fetchedAt time.Time
}

// TableCache keeps fetched rise/set tables for a fixed window.
// Staleness is judged against the injected clock, so it is safe to share
// between goroutines and deterministic in tests.
type TableCache struct {
	store *cache.Cache
	ttl   time.Duration
	clock Clock
}

// NewTableCache creates a cache. A zero ttl uses DefaultTableTTL and a nil clock the system clock.
func NewTableCache(ttl time.Duration, clock Clock) *TableCache {
	if ttl <= 0 {
		ttl = DefaultTableTTL
	}
	if clock == nil {
		clock = SystemClock
	}
	return &TableCache{
		store: cache.New(cache.NoExpiration, 0),
		ttl:   ttl,
		clock: clock,
	}
}

// Get returns a table fetched less than ttl ago
func (c *TableCache) Get(kind TableKind) (models.RiseSetTable, bool) {
	v, ok := c.store.Get(string(kind))
	if !ok {
		return nil, false
	}
	entry := v.(cachedTable)
	if c.clock.Now().Sub(entry.fetchedAt) >= c.ttl {
		c.store.Delete(string(kind))
		return nil, false
	}
	return entry.table, true
}

// Put stores a table stamped with the current clock time
func (c *TableCache) Put(kind TableKind, table models.RiseSetTable) {
	c.store.Set(string(kind), cachedTable{table: table, fetchedAt: c.clock.Now()}, cache.NoExpiration)
}

// Invalidate drops a table
func (c *TableCache) Invalidate(kind TableKind) {
	c.store.Delete(string(kind))
}

// FetchedAt returns when the cached table was stored
func (c *TableCache) FetchedAt(kind TableKind) (time.Time, bool) {
	v, ok := c.store.Get(string(kind))
	if !ok {
		return time.Time{}, false
	}
	return v.(cachedTable).fetchedAt, true
}
