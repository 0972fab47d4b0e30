package tides

import (
	"time"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

// Normalize fills local time strings for the next high and low and settles the trend.
// An explicit IsRising wins; otherwise whichever extreme comes first decides.
func Normalize(r models.TideReading, loc *time.Location) models.TideReading {
	if r.NextHigh != nil {
		e := *r.NextHigh
		e.TimeString = e.Time.In(loc).Format("15:04")
		r.NextHigh = &e
	}
	if r.NextLow != nil {
		e := *r.NextLow
		e.TimeString = e.Time.In(loc).Format("15:04")
		r.NextLow = &e
	}

	switch {
	case r.IsRising != nil && *r.IsRising:
		r.Trend = models.TrendRising
	case r.IsRising != nil:
		r.Trend = models.TrendFalling
	case r.NextHigh != nil && (r.NextLow == nil || r.NextHigh.Time.Before(r.NextLow.Time)):
		r.Trend = models.TrendRising
	case r.NextLow != nil:
		r.Trend = models.TrendFalling
	default:
		r.Trend = models.TrendUnknown
	}
	return r
}
