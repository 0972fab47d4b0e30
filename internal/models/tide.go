package models

import "time"

// TideType represents whether a tide is high or low
type TideType string

const (
	TideHigh TideType = "H"
	TideLow  TideType = "L"
)

// TideLevel is the categorical sea level band
type TideLevel string

const (
	TideLevelLow        TideLevel = "Low"
	TideLevelMedium     TideLevel = "Medium"
	TideLevelMediumHigh TideLevel = "Medium-High"
	TideLevelHigh       TideLevel = "High"
)

// TideTrend is the direction the water is moving
type TideTrend string

const (
	TrendRising  TideTrend = "rising"
	TrendFalling TideTrend = "falling"
	TrendUnknown TideTrend = "unknown"
)

// TideEvent represents a single high or low tide occurrence
type TideEvent struct {
	Time       time.Time `json:"time"`
	Type       TideType  `json:"type"`
	Height     float64   `json:"height"`               // metres above chart datum
	TimeString string    `json:"timeString,omitempty"` // local HH:MM
}

// TidePoint is one sample of a sea level series
type TidePoint struct {
	Time   time.Time `json:"time"`
	Height float64   `json:"height"`
}

// TideReading is the tide state at a reference instant
type TideReading struct {
	Height        float64     `json:"height"`
	Level         TideLevel   `json:"level"`
	Trend         TideTrend   `json:"trend"`
	IsRising      *bool       `json:"isRising,omitempty"`
	NextHigh      *TideEvent  `json:"nextHigh,omitempty"`
	NextLow       *TideEvent  `json:"nextLow,omitempty"`
	Series        []TidePoint `json:"series,omitempty"` // ordered by time
	ReferenceTime time.Time   `json:"referenceTime"`
	Source        Source      `json:"source"`
	Provider      string      `json:"provider,omitempty"`
}

// EventsForDay returns the series samples that fall on the given local day
func (r *TideReading) EventsForDay(date time.Time) []TidePoint {
	var points []TidePoint
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	for _, p := range r.Series {
		if !p.Time.Before(startOfDay) && p.Time.Before(endOfDay) {
			points = append(points, p)
		}
	}
	return points
}
