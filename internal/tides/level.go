package tides

import "github.com/ngmaloney/angler-terminal/internal/models"

// Thresholds are the lower bounds, in metres, of the upper three tide levels
type Thresholds struct {
	High       float64 `mapstructure:"high"`
	MediumHigh float64 `mapstructure:"medium_high"`
	Medium     float64 `mapstructure:"medium"`
}

var (
	// LiveThresholds apply to measured sea level heights
	LiveThresholds = Thresholds{High: 1.5, MediumHigh: 1.0, Medium: 0.5}
	// HarmonicThresholds apply to the synthesized curve
	HarmonicThresholds = Thresholds{High: 1.3, MediumHigh: 0.9, Medium: 0.6}
)

// Categorize maps a height to a level. Bounds are exclusive.
func (th Thresholds) Categorize(height float64) models.TideLevel {
	switch {
	case height > th.High:
		return models.TideLevelHigh
	case height > th.MediumHigh:
		return models.TideLevelMediumHigh
	case height > th.Medium:
		return models.TideLevelMedium
	default:
		return models.TideLevelLow
	}
}
