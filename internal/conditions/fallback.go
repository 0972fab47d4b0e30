package conditions

import (
	"time"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

// Fallback payloads used when an upstream source is unavailable.
const (
	FallbackTemperature    = 26.0
	FallbackWindSpeed      = 5.0
	FallbackWindDirection  = 90.0
	FallbackCloudCover     = 50.0
	FallbackDescription    = "Typical Mauritius weather"
	FallbackWaveHeight     = 1.2
	FallbackWaveHeightMax  = 1.5
	FallbackSeaTemperature = 26.0
	fallbackProvider       = "fallback"
)

// FallbackWeather is the typical Mauritius weather at ref
func FallbackWeather(ref time.Time) models.WeatherReading {
	return models.WeatherReading{
		Temperature:   FallbackTemperature,
		WindSpeed:     FallbackWindSpeed,
		WindDirection: FallbackWindDirection,
		CloudCover:    FallbackCloudCover,
		Description:   FallbackDescription,
		Rating:        models.WeatherGood,
		ForecastTime:  ref,
		Source:        models.SourceFallback,
		Provider:      fallbackProvider,
	}
}

// FallbackMarine is a moderate sea
func FallbackMarine() models.MarineReading {
	return models.MarineReading{
		WaveHeight:    FallbackWaveHeight,
		WaveHeightMax: FallbackWaveHeightMax,
		Condition:     models.SeaModerate,
		Source:        models.SourceFallback,
		Provider:      fallbackProvider,
	}
}

// FallbackSeaTemperatureReading is the typical sea surface temperature
func FallbackSeaTemperatureReading() models.SeaTemperatureReading {
	return models.SeaTemperatureReading{
		Temperature: FallbackSeaTemperature,
		Band:        models.ClassifySeaTemperature(FallbackSeaTemperature),
		Source:      models.SourceFallback,
		Provider:    fallbackProvider,
	}
}
