// Package solunar derives the daily major and minor feeding windows from
// sun and moon rise/set times.
package solunar

import "github.com/ngmaloney/angler-terminal/internal/models"

const (
	transitOffset  = 6 * 60  // moonrise to upper transit
	opposingOffset = 12 * 60 // upper to lower transit
	majorHalfWidth = 60
	minorHalfWidth = 30
	twilightMargin = 60
	lastMinute     = models.MinutesPerDay - 1
)

// Inputs are the per-day values the periods are derived from
type Inputs struct {
	Sunrise      models.ClockTime
	Sunset       models.ClockTime
	Moonrise     models.ClockTime
	Moonset      models.ClockTime
	Illumination float64
}

// Transit returns the upper and lower lunar transit for a moonrise
func Transit(moonrise models.ClockTime) (upper, lower models.ClockTime) {
	upper = models.NewClockTime(moonrise.Minutes() + transitOffset)
	lower = models.NewClockTime(upper.Minutes() + opposingOffset)
	return upper, lower
}

// Periods returns the two major and two minor windows for in
func Periods(in Inputs) (majors, minors [2]models.SolunarPeriod) {
	upper, lower := Transit(in.Moonrise)

	majors[0] = window(models.PeriodMajor, upper, majorHalfWidth, "Lunar transit (moon up)", in)
	majors[1] = window(models.PeriodMajor, lower, majorHalfWidth, "Opposing lunar transit (moon down)", in)
	minors[0] = window(models.PeriodMinor, in.Moonrise, minorHalfWidth, "Moonrise", in)
	minors[1] = window(models.PeriodMinor, in.Moonset, minorHalfWidth, "Moonset", in)
	return majors, minors
}

func window(kind models.PeriodKind, center models.ClockTime, half int, desc string, in Inputs) models.SolunarPeriod {
	start := models.ClockTime(max(0, center.Minutes()-half))
	end := models.ClockTime(min(lastMinute, center.Minutes()+half))
	score := Score(kind, start, in)
	return models.SolunarPeriod{
		Kind:        kind,
		Start:       start,
		End:         end,
		Activity:    LevelForScore(score),
		Score:       score,
		Description: desc,
	}
}

// Score rates a window by kind, moon brightness and closeness of its start to sunrise or sunset
func Score(kind models.PeriodKind, start models.ClockTime, in Inputs) float64 {
	score := 1.0
	if kind == models.PeriodMajor {
		score = 2
	}

	switch illum := in.Illumination; {
	case illum > 90 || illum < 10:
		score++
	case illum > 75 || illum < 25:
		score += 0.5
	}

	if nearTwilight(start, in.Sunrise) || nearTwilight(start, in.Sunset) {
		score += 0.5
	}
	return score
}

func nearTwilight(t, sunEvent models.ClockTime) bool {
	lo := max(0, sunEvent.Minutes()-twilightMargin)
	hi := sunEvent.Minutes() + twilightMargin
	return t.Minutes() >= lo && t.Minutes() <= hi
}

// LevelForScore maps a window score to an activity level
func LevelForScore(score float64) models.ActivityLevel {
	switch {
	case score >= 3:
		return models.ActivityHigh
	case score >= 2:
		return models.ActivityAverage
	case score >= 1:
		return models.ActivityLow
	default:
		return models.ActivityVeryLow
	}
}

// RatingFor labels the day by moon illumination; new and full moons fish best
func RatingFor(illumination float64) models.SolunarRating {
	switch {
	case illumination > 90 || illumination < 10:
		return models.RatingBest
	case illumination > 75 || illumination < 25:
		return models.RatingGood
	default:
		return models.RatingAverage
	}
}

// Build assembles a snapshot from inputs
func Build(date string, in Inputs, sunSource, moonSource models.Source) models.SolunarSnapshot {
	majors, minors := Periods(in)
	upper, _ := Transit(in.Moonrise)
	return models.SolunarSnapshot{
		Date:         date,
		Rating:       RatingFor(in.Illumination),
		MajorPeriods: majors,
		MinorPeriods: minors,
		Moonrise:     in.Moonrise,
		Moonset:      in.Moonset,
		MoonTransit:  upper,
		Sunrise:      in.Sunrise,
		Sunset:       in.Sunset,
		Illumination: in.Illumination,
		SunSource:    sunSource,
		MoonSource:   moonSource,
	}
}
