package conditions

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ngmaloney/angler-terminal/internal/astro"
	"github.com/ngmaloney/angler-terminal/internal/models"
)

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// parseDay returns the requested calendar day anchored at 12:00 UTC.
// Timestamps contribute only their written date.
func parseDay(s string) (time.Time, error) {
	t, err := astro.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC), nil
}

// parseReference resolves the reference instant. Zone-qualified timestamps
// are kept, other timestamps and bare "HH:MM" clock times are read in loc
// (the latter on day). An empty string means now.
func parseReference(s string, day time.Time, loc *time.Location, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if c, err := models.ParseClockTime(s); err == nil {
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc).
			Add(time.Duration(c.Minutes()) * time.Minute), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
}

func validateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 || math.IsNaN(lat) || math.IsNaN(lon) {
		return fmt.Errorf("%w: %v, %v", ErrInvalidCoordinates, lat, lon)
	}
	return nil
}
