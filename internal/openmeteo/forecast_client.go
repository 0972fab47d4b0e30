package openmeteo

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

// DefaultForecastURL is the Open-Meteo weather forecast endpoint
const DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

// OpenMeteoWeatherClient implements WeatherClient using the Open-Meteo forecast API
type OpenMeteoWeatherClient struct {
	apiClient
}

// NewWeatherClient creates a new forecast client
func NewWeatherClient(opts ...Option) *OpenMeteoWeatherClient {
	return &OpenMeteoWeatherClient{apiClient: newAPIClient(DefaultForecastURL, opts)}
}

// GetHourlyWeather retrieves the forecast for the hour closest to ref
func (c *OpenMeteoWeatherClient) GetHourlyWeather(ctx context.Context, lat, lon float64, ref time.Time) (*models.WeatherReading, error) {
	params := url.Values{}
	params.Add("hourly", "temperature_2m,wind_speed_10m,wind_direction_10m,precipitation,cloud_cover")
	params.Add("wind_speed_unit", "ms")

	var resp forecastResponse
	if err := c.get(ctx, lat, lon, ref, params, &resp); err != nil {
		return nil, err
	}

	times, err := c.parseTimes(resp.Hourly.Time)
	if err != nil {
		return nil, err
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("no hourly forecast for %.4f,%.4f", lat, lon)
	}
	i := nearestHour(times, ref)

	temp, ok := valueAt(resp.Hourly.Temperature2m, i)
	if !ok {
		return nil, fmt.Errorf("temperature missing at %s", times[i].Format(time.RFC3339))
	}
	wind, _ := valueAt(resp.Hourly.WindSpeed10m, i)
	dir, _ := valueAt(resp.Hourly.WindDirection10m, i)
	rain, _ := valueAt(resp.Hourly.Precipitation, i)
	cloud, _ := valueAt(resp.Hourly.CloudCover, i)

	return &models.WeatherReading{
		Temperature:   math.Round(temp*10) / 10,
		WindSpeed:     math.Round(wind*10) / 10,
		WindDirection: dir,
		CloudCover:    cloud,
		Precipitation: rain,
		Description:   models.DescribeSky(cloud, rain),
		Rating:        models.RateWeather(wind, rain, cloud),
		ForecastTime:  times[i],
		Source:        models.SourceLive,
		Provider:      "open-meteo",
	}, nil
}

// Internal types for Open-Meteo forecast API responses

type forecastResponse struct {
	Hourly struct {
		Time             []string   `json:"time"`
		Temperature2m    []*float64 `json:"temperature_2m"`
		WindSpeed10m     []*float64 `json:"wind_speed_10m"`
		WindDirection10m []*float64 `json:"wind_direction_10m"`
		Precipitation    []*float64 `json:"precipitation"`
		CloudCover       []*float64 `json:"cloud_cover"`
	} `json:"hourly"`
}
