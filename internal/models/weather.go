package models

import "time"

// WeatherRating classifies how fishable the weather is
type WeatherRating string

const (
	WeatherExcellent WeatherRating = "excellent"
	WeatherGood      WeatherRating = "good"
	WeatherFair      WeatherRating = "fair"
	WeatherPoor      WeatherRating = "poor"
)

// WeatherReading is the forecast at the reference hour
type WeatherReading struct {
	Temperature   float64       `json:"temperature"`   // Celsius
	WindSpeed     float64       `json:"windSpeed"`     // m/s
	WindDirection float64       `json:"windDirection"` // degrees
	CloudCover    float64       `json:"cloudCover"`    // percent
	Precipitation float64       `json:"precipitation"` // mm
	Description   string        `json:"description"`   // e.g., "Clear", "Rain"
	Rating        WeatherRating `json:"rating"`
	ForecastTime  time.Time     `json:"forecastTime,omitempty"`
	Source        Source        `json:"source"`
	Provider      string        `json:"provider,omitempty"`
}

// SeaCondition is the wave band
type SeaCondition string

const (
	SeaVeryCalm  SeaCondition = "Very Calm"
	SeaCalm      SeaCondition = "Calm"
	SeaModerate  SeaCondition = "Moderate"
	SeaRough     SeaCondition = "Rough"
	SeaVeryRough SeaCondition = "Very Rough"
)

// MarineReading represents wave and current conditions
type MarineReading struct {
	WaveHeight      float64      `json:"waveHeight"`      // metres
	WaveHeightMax   float64      `json:"waveHeightMax"`   // metres, daily max
	WaveDirection   float64      `json:"waveDirection"`   // degrees
	WavePeriod      float64      `json:"wavePeriod"`      // seconds
	CurrentVelocity float64      `json:"currentVelocity"` // km/h
	Condition       SeaCondition `json:"condition"`
	Source          Source       `json:"source"`
	Provider        string       `json:"provider,omitempty"`
}

// SeaTemperatureBand classifies surface water temperature
type SeaTemperatureBand string

const (
	SeaWarm        SeaTemperatureBand = "warm"
	SeaComfortable SeaTemperatureBand = "comfortable"
	SeaCool        SeaTemperatureBand = "cool"
	SeaCold        SeaTemperatureBand = "cold"
)

// SeaTemperatureReading is the sea surface temperature
type SeaTemperatureReading struct {
	Temperature float64            `json:"temperature"` // Celsius
	Band        SeaTemperatureBand `json:"band"`
	Source      Source             `json:"source"`
	Provider    string             `json:"provider,omitempty"`
}

// ClassifyWaves maps a wave height in metres to a sea condition
func ClassifyWaves(height float64) SeaCondition {
	switch {
	case height > 3:
		return SeaVeryRough
	case height > 2:
		return SeaRough
	case height > 1:
		return SeaModerate
	case height > 0.5:
		return SeaCalm
	default:
		return SeaVeryCalm
	}
}

// ClassifySeaTemperature maps a temperature in Celsius to a band
func ClassifySeaTemperature(celsius float64) SeaTemperatureBand {
	switch {
	case celsius >= 28:
		return SeaWarm
	case celsius >= 25:
		return SeaComfortable
	case celsius >= 22:
		return SeaCool
	default:
		return SeaCold
	}
}

// RateWeather classifies conditions for fishing from wind (m/s), rain (mm) and cloud (%)
func RateWeather(windSpeed, precipitation, cloudCover float64) WeatherRating {
	switch {
	case windSpeed > 10 || precipitation > 5:
		return WeatherPoor
	case windSpeed > 7 || precipitation > 2 || cloudCover > 85:
		return WeatherFair
	case windSpeed < 5 && cloudCover < 40 && precipitation == 0:
		return WeatherExcellent
	default:
		return WeatherGood
	}
}

// DescribeSky gives a short sky description from cloud cover and rain
func DescribeSky(cloudCover, precipitation float64) string {
	switch {
	case precipitation > 0:
		return "Rain"
	case cloudCover > 70:
		return "Cloudy"
	case cloudCover > 30:
		return "Partly Cloudy"
	default:
		return "Clear"
	}
}
