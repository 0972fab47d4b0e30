package openmeteo

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

// DefaultMarineURL is the Open-Meteo marine forecast endpoint
const DefaultMarineURL = "https://marine-api.open-meteo.com/v1/marine"

const marineProvider = "open-meteo-marine"

// OpenMeteoMarineClient implements MarineClient using the Open-Meteo marine API
type OpenMeteoMarineClient struct {
	apiClient
}

// NewMarineClient creates a new marine client
func NewMarineClient(opts ...Option) *OpenMeteoMarineClient {
	return &OpenMeteoMarineClient{apiClient: newAPIClient(DefaultMarineURL, opts)}
}

// GetSeaLevelSeries retrieves hourly sea level heights relative to mean sea level
func (c *OpenMeteoMarineClient) GetSeaLevelSeries(ctx context.Context, lat, lon float64, date time.Time) ([]models.TidePoint, error) {
	params := url.Values{}
	params.Add("hourly", "sea_level_height_msl")

	var resp marineResponse
	if err := c.get(ctx, lat, lon, date, params, &resp); err != nil {
		return nil, err
	}

	times, err := c.parseTimes(resp.Hourly.Time)
	if err != nil {
		return nil, err
	}

	series := make([]models.TidePoint, 0, len(times))
	for i, t := range times {
		h, ok := valueAt(resp.Hourly.SeaLevelHeightMSL, i)
		if !ok {
			continue // Skip gaps
		}
		series = append(series, models.TidePoint{Time: t, Height: h})
	}
	return series, nil
}

// GetWaveConditions retrieves waves and currents for the hour closest to ref
func (c *OpenMeteoMarineClient) GetWaveConditions(ctx context.Context, lat, lon float64, ref time.Time) (*models.MarineReading, error) {
	params := url.Values{}
	params.Add("hourly", "wave_height,wave_direction,wave_period,ocean_current_velocity")
	params.Add("daily", "wave_height_max")

	var resp marineResponse
	if err := c.get(ctx, lat, lon, ref, params, &resp); err != nil {
		return nil, err
	}

	times, err := c.parseTimes(resp.Hourly.Time)
	if err != nil {
		return nil, err
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("no hourly wave data for %.4f,%.4f", lat, lon)
	}
	i := nearestHour(times, ref)

	height, ok := valueAt(resp.Hourly.WaveHeight, i)
	if !ok {
		return nil, fmt.Errorf("no wave height at %s", times[i].Format(time.RFC3339))
	}

	reading := &models.MarineReading{
		WaveHeight: height,
		Condition:  models.ClassifyWaves(height),
		Source:     models.SourceLive,
		Provider:   marineProvider,
	}
	reading.WaveDirection, _ = valueAt(resp.Hourly.WaveDirection, i)
	reading.WavePeriod, _ = valueAt(resp.Hourly.WavePeriod, i)
	reading.CurrentVelocity, _ = valueAt(resp.Hourly.OceanCurrentVelocity, i)
	if peak, ok := valueAt(resp.Daily.WaveHeightMax, 0); ok {
		reading.WaveHeightMax = peak
	} else {
		reading.WaveHeightMax = maxOf(resp.Hourly.WaveHeight)
	}

	return reading, nil
}

// GetSeaSurfaceTemperature retrieves the sea surface temperature for the hour closest to ref
func (c *OpenMeteoMarineClient) GetSeaSurfaceTemperature(ctx context.Context, lat, lon float64, ref time.Time) (*models.SeaTemperatureReading, error) {
	params := url.Values{}
	params.Add("hourly", "sea_surface_temperature")

	var resp marineResponse
	if err := c.get(ctx, lat, lon, ref, params, &resp); err != nil {
		return nil, err
	}

	times, err := c.parseTimes(resp.Hourly.Time)
	if err != nil {
		return nil, err
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("no hourly sea temperature for %.4f,%.4f", lat, lon)
	}

	temp, ok := valueAt(resp.Hourly.SeaSurfaceTemperature, nearestHour(times, ref))
	if !ok {
		return nil, fmt.Errorf("sea surface temperature missing")
	}

	return &models.SeaTemperatureReading{
		Temperature: math.Round(temp*10) / 10,
		Band:        models.ClassifySeaTemperature(temp),
		Source:      models.SourceLive,
		Provider:    marineProvider,
	}, nil
}

func maxOf(values []*float64) float64 {
	var m float64
	for _, v := range values {
		if v != nil && *v > m {
			m = *v
		}
	}
	return m
}

// Internal types for Open-Meteo marine API responses

type marineResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Hourly    struct {
		Time                  []string   `json:"time"`
		SeaLevelHeightMSL     []*float64 `json:"sea_level_height_msl"`
		WaveHeight            []*float64 `json:"wave_height"`
		WaveDirection         []*float64 `json:"wave_direction"`
		WavePeriod            []*float64 `json:"wave_period"`
		OceanCurrentVelocity  []*float64 `json:"ocean_current_velocity"`
		SeaSurfaceTemperature []*float64 `json:"sea_surface_temperature"`
	} `json:"hourly"`
	Daily struct {
		Time          []string   `json:"time"`
		WaveHeightMax []*float64 `json:"wave_height_max"`
	} `json:"daily"`
}
