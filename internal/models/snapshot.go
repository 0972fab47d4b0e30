package models

import "time"

// EnvironmentalSnapshot merges every reading for one location and instant.
// It is computed on demand and never persisted.
type EnvironmentalSnapshot struct {
	Date            string                `json:"date"`
	ReferenceTime   time.Time             `json:"referenceTime"`
	Location        Location              `json:"location"`
	Moon            MoonPhase             `json:"moon"`
	Tide            TideReading           `json:"tide"`
	Weather         WeatherReading        `json:"weather"`
	Marine          MarineReading         `json:"marine"`
	SeaTemperature  SeaTemperatureReading `json:"seaTemperature"`
	Solunar         SolunarSnapshot       `json:"solunar"`
	CurrentActivity CurrentActivity       `json:"currentActivity"`
}

// Estimated lists the readings that fell back to estimates
func (s *EnvironmentalSnapshot) Estimated() []string {
	var out []string
	if s.Tide.Source != SourceLive {
		out = append(out, "tide")
	}
	if s.Weather.Source.IsEstimate() {
		out = append(out, "weather")
	}
	if s.Marine.Source.IsEstimate() {
		out = append(out, "marine")
	}
	if s.SeaTemperature.Source.IsEstimate() {
		out = append(out, "seaTemperature")
	}
	if s.Solunar.SunSource.IsEstimate() || s.Solunar.MoonSource.IsEstimate() {
		out = append(out, "solunar")
	}
	return out
}
