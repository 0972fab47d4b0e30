// Package astro computes the lunar cycle from calendar dates.
package astro

import (
	"math"
	"time"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

const (
	// SynodicMonth is the mean new-moon to new-moon period in days
	SynodicMonth = 29.53058867

	// referenceNewMoon is the Julian date of the new moon of 6 January 2000
	referenceNewMoon = 2451550.1
)

// Upper age bounds, in days, of each phase. Ages past the last bound are a new moon again.
var phaseBounds = []struct {
	maxAge float64
	phase  models.MoonPhaseName
}{
	{1.84566, models.PhaseNewMoon},
	{5.53699, models.PhaseWaxingCrescent},
	{9.22831, models.PhaseFirstQuarter},
	{12.91963, models.PhaseWaxingGibbous},
	{16.61096, models.PhaseFullMoon},
	{20.30228, models.PhaseWaningGibbous},
	{23.99361, models.PhaseLastQuarter},
	{27.68493, models.PhaseWaningCrescent},
}

// JulianDayNumber converts a Gregorian calendar date to its Julian Day Number
func JulianDayNumber(year int, month time.Month, day int) int {
	a := (14 - int(month)) / 12
	y := year + 4800 - a
	m := int(month) + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// JulianDate returns the Julian date of t. Noon UTC maps exactly to the JDN of that day.
func JulianDate(t time.Time) float64 {
	u := t.UTC()
	jdn := JulianDayNumber(u.Year(), u.Month(), u.Day())
	dayFraction := (float64(u.Hour())-12)/24 +
		float64(u.Minute())/1440 +
		(float64(u.Second())+float64(u.Nanosecond())/1e9)/86400
	return float64(jdn) + dayFraction
}

// CyclePosition returns the fraction of the synodic month elapsed at t, in [0, 1)
func CyclePosition(t time.Time) float64 {
	days := JulianDate(t) - referenceNewMoon
	pos := math.Mod(days/SynodicMonth, 1)
	if pos < 0 {
		pos++
	}
	if pos >= 1 {
		pos = 0
	}
	return pos
}

// Age returns the days elapsed since the last new moon
func Age(t time.Time) float64 {
	return CyclePosition(t) * SynodicMonth
}

// Illumination returns the lit percentage of the disc for a cycle position,
// rounded to one decimal.
func Illumination(position float64) float64 {
	lit := (1 - math.Cos(position*2*math.Pi)) * 50
	lit = math.Round(lit*10) / 10
	return math.Max(0, math.Min(100, lit))
}

// PhaseForAge names the phase for a moon age in days
func PhaseForAge(age float64) models.MoonPhaseName {
	for _, b := range phaseBounds {
		if age < b.maxAge {
			return b.phase
		}
	}
	return models.PhaseNewMoon
}

// ComputeMoonPhase returns the moon phase at t.
// Dates without a time of day should be anchored at 12:00 UTC (see ParseDate).
func ComputeMoonPhase(t time.Time) models.MoonPhase {
	pos := CyclePosition(t)
	age := pos * SynodicMonth
	return models.MoonPhase{
		Phase:        PhaseForAge(age),
		Illumination: Illumination(pos),
		AgeDays:      age,
		NextNewMoon:  NextNewMoon(t),
		NextFullMoon: NextFullMoon(t),
		Source:       models.SourceComputed,
	}
}

// NextNewMoon estimates the next new moon after t
func NextNewMoon(t time.Time) time.Time {
	return t.Add(days(SynodicMonth - Age(t)))
}

// NextFullMoon estimates the next full moon after t
func NextFullMoon(t time.Time) time.Time {
	age := Age(t)
	full := SynodicMonth / 2
	if age < full {
		return t.Add(days(full - age))
	}
	return t.Add(days(SynodicMonth - age + full))
}

func days(d float64) time.Duration {
	return time.Duration(d * 24 * float64(time.Hour))
}
