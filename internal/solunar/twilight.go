package solunar

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sj14/astral/pkg/astral"
)

// TwilightTTL is how long computed twilight times are kept
const TwilightTTL = 24 * time.Hour

// TwilightTimes holds civil dawn and dusk in local time
type TwilightTimes struct {
	CivilDawn time.Time
	CivilDusk time.Time
}

// Twilight calculates civil twilight and caches it per date and place
type Twilight struct {
	loc   *time.Location
	cache *cache.Cache
}

// NewTwilight creates a calculator reporting times in loc
func NewTwilight(loc *time.Location) *Twilight {
	return &Twilight{
		loc:   loc,
		cache: cache.New(TwilightTTL, 0),
	}
}

// Times returns civil dawn and dusk for date at lat, lon
func (tw *Twilight) Times(date time.Time, lat, lon float64) (TwilightTimes, error) {
	local := date.In(tw.loc)
	key := fmt.Sprintf("%s/%.4f/%.4f", local.Format(time.DateOnly), lat, lon)

	if v, ok := tw.cache.Get(key); ok {
		return v.(TwilightTimes), nil
	}

	observer := astral.Observer{Latitude: lat, Longitude: lon}
	day := time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, tw.loc)

	dawn, err := astral.Dawn(observer, day, astral.DepressionCivil)
	if err != nil {
		return TwilightTimes{}, fmt.Errorf("failed to calculate civil dawn: %w", err)
	}
	dusk, err := astral.Dusk(observer, day, astral.DepressionCivil)
	if err != nil {
		return TwilightTimes{}, fmt.Errorf("failed to calculate civil dusk: %w", err)
	}

	times := TwilightTimes{CivilDawn: dawn.In(tw.loc), CivilDusk: dusk.In(tw.loc)}
	tw.cache.DeleteExpired()
	tw.cache.SetDefault(key, times)
	return times, nil
}
