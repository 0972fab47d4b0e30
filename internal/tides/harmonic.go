// Package tides estimates sea level from harmonic constituents or from a sampled series.
package tides

import (
	"math"
	"time"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

// Constituent is one tidal component of the harmonic sum
type Constituent struct {
	Name        string  `mapstructure:"name" yaml:"name"`
	PeriodHours float64 `mapstructure:"period_hours" yaml:"period_hours"`
	AmplitudeM  float64 `mapstructure:"amplitude_m" yaml:"amplitude_m"`
}

// HarmonicModel synthesizes a plausible tide curve for a reference port
type HarmonicModel struct {
	Constituents []Constituent `mapstructure:"constituents"`
	// LunarAmplitude scales the spring/neap term that follows the synodic month
	LunarAmplitude float64    `mapstructure:"lunar_amplitude"`
	LunarPeriod    float64    `mapstructure:"lunar_period_days"`
	MeanSeaLevel   float64    `mapstructure:"mean_sea_level"`
	MinHeight      float64    `mapstructure:"min_height"`
	MaxHeight      float64    `mapstructure:"max_height"`
	Thresholds     Thresholds `mapstructure:"thresholds"`
}

// semidiurnalCutoff separates twice-daily constituents from diurnal ones
const semidiurnalCutoff = 18.0

// PortLouis returns the model tuned to the Port Louis tide gauge
func PortLouis() HarmonicModel {
	return HarmonicModel{
		Constituents: []Constituent{
			{Name: "M2", PeriodHours: 12.42, AmplitudeM: 0.58},
			{Name: "S2", PeriodHours: 12.00, AmplitudeM: 0.18},
			{Name: "N2", PeriodHours: 12.66, AmplitudeM: 0.11},
			{Name: "K1", PeriodHours: 23.93, AmplitudeM: 0.08},
		},
		LunarAmplitude: 0.15,
		LunarPeriod:    29.53,
		MeanSeaLevel:   0.95,
		MinHeight:      0.1,
		MaxHeight:      2.0,
		Thresholds:     HarmonicThresholds,
	}
}

// Synthesize returns the tide at ref. The clock used for the constituents is
// the local hour of day in loc.
func (m HarmonicModel) Synthesize(ref time.Time, loc *time.Location) models.TideReading {
	local := ref.In(loc)
	hour := hourOfDay(local)
	lunar := m.lunarTerm(local)
	height := m.clamp(m.heightAt(hour, lunar))

	dom := m.dominant()
	phase := math.Mod(hour, dom.PeriodHours)
	rate := -(dom.AmplitudeM * 2 * math.Pi / dom.PeriodHours) * math.Sin(2*math.Pi*hour/dom.PeriodHours)
	rising := rate > 0

	toHigh := dom.PeriodHours - phase
	toLow := dom.PeriodHours/2 - phase
	if toLow <= 0 {
		toLow += dom.PeriodHours
	}

	swing := m.semidiurnalAmplitude()
	reading := models.TideReading{
		Height:   height,
		Level:    m.Thresholds.Categorize(height),
		IsRising: &rising,
		NextHigh: &models.TideEvent{
			Time:   local.Add(hours(toHigh)),
			Type:   models.TideHigh,
			Height: m.clamp(m.MeanSeaLevel + swing + lunar),
		},
		NextLow: &models.TideEvent{
			Time:   local.Add(hours(toLow)),
			Type:   models.TideLow,
			Height: m.clamp(m.MeanSeaLevel - swing + lunar),
		},
		Series:        m.DaySeries(local, loc, time.Hour),
		ReferenceTime: ref,
		Source:        models.SourceHarmonic,
		Provider:      "harmonic",
	}
	if rising {
		reading.Trend = models.TrendRising
	} else {
		reading.Trend = models.TrendFalling
	}
	return reading
}

// DaySeries samples the model from local midnight of date to the next midnight
func (m HarmonicModel) DaySeries(date time.Time, loc *time.Location, step time.Duration) []models.TidePoint {
	local := date.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	lunar := m.lunarTerm(midnight)

	var points []models.TidePoint
	for t := midnight; !t.After(midnight.Add(24 * time.Hour)); t = t.Add(step) {
		h := t.Sub(midnight).Hours()
		points = append(points, models.TidePoint{Time: t, Height: m.clamp(m.heightAt(h, lunar))})
	}
	return points
}

func (m HarmonicModel) heightAt(hour, lunar float64) float64 {
	h := m.MeanSeaLevel + lunar
	for _, c := range m.Constituents {
		h += c.AmplitudeM * math.Cos(2*math.Pi*hour/c.PeriodHours)
	}
	return h
}

func (m HarmonicModel) lunarTerm(local time.Time) float64 {
	if m.LunarPeriod == 0 {
		return 0
	}
	return m.LunarAmplitude * math.Sin(2*math.Pi*float64(local.YearDay())/m.LunarPeriod)
}

func (m HarmonicModel) dominant() Constituent {
	dom := Constituent{Name: "M2", PeriodHours: 12.42}
	for _, c := range m.Constituents {
		if c.AmplitudeM > dom.AmplitudeM {
			dom = c
		}
	}
	return dom
}

func (m HarmonicModel) semidiurnalAmplitude() float64 {
	var sum float64
	for _, c := range m.Constituents {
		if c.PeriodHours < semidiurnalCutoff {
			sum += c.AmplitudeM
		}
	}
	return sum
}

func (m HarmonicModel) clamp(h float64) float64 {
	if h < m.MinHeight {
		return m.MinHeight
	}
	if m.MaxHeight > m.MinHeight && h > m.MaxHeight {
		return m.MaxHeight
	}
	return h
}

func hourOfDay(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

func hours(h float64) time.Duration {
	d := time.Duration(h * float64(time.Hour)).Round(time.Minute)
	if d < time.Minute {
		return time.Minute
	}
	return d
}
