package astro

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate is returned for dates that cannot be parsed
var ErrInvalidDate = errors.New("invalid date")

// ParseDate parses "2006-01-02" or an ISO-8601 timestamp.
// A bare date is anchored at 12:00 UTC; a timestamp without zone is taken as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}

	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d.Add(12 * time.Hour), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
