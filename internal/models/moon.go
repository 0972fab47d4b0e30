package models

import "time"

// MoonPhaseName is one of the eight named lunar phases
type MoonPhaseName string

const (
	PhaseNewMoon        MoonPhaseName = "New Moon"
	PhaseWaxingCrescent MoonPhaseName = "Waxing Crescent"
	PhaseFirstQuarter   MoonPhaseName = "First Quarter"
	PhaseWaxingGibbous  MoonPhaseName = "Waxing Gibbous"
	PhaseFullMoon       MoonPhaseName = "Full Moon"
	PhaseWaningGibbous  MoonPhaseName = "Waning Gibbous"
	PhaseLastQuarter    MoonPhaseName = "Last Quarter"
	PhaseWaningCrescent MoonPhaseName = "Waning Crescent"
)

// MoonPhases lists the phases in cycle order starting at new moon
var MoonPhases = []MoonPhaseName{
	PhaseNewMoon,
	PhaseWaxingCrescent,
	PhaseFirstQuarter,
	PhaseWaxingGibbous,
	PhaseFullMoon,
	PhaseWaningGibbous,
	PhaseLastQuarter,
	PhaseWaningCrescent,
}

// MoonPhase is the lunar state for an instant
type MoonPhase struct {
	Phase        MoonPhaseName `json:"phase"`
	Illumination float64       `json:"illumination"` // percent, one decimal
	AgeDays      float64       `json:"ageDays"`      // days since the last new moon
	NextNewMoon  time.Time     `json:"nextNewMoon"`
	NextFullMoon time.Time     `json:"nextFullMoon"`
	Source       Source        `json:"source"`
}

// Valid reports whether s names a known phase
func (n MoonPhaseName) Valid() bool {
	for _, p := range MoonPhases {
		if p == n {
			return true
		}
	}
	return false
}
