// Package openmeteo fetches marine and weather forecasts from the Open-Meteo APIs.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

// MarineClient defines the interface for fetching sea state data
type MarineClient interface {
	// GetSeaLevelSeries retrieves hourly sea level heights for the local day of date
	GetSeaLevelSeries(ctx context.Context, lat, lon float64, date time.Time) ([]models.TidePoint, error)

	// GetWaveConditions retrieves wave and current conditions for the hour of ref
	GetWaveConditions(ctx context.Context, lat, lon float64, ref time.Time) (*models.MarineReading, error)

	// GetSeaSurfaceTemperature retrieves the sea surface temperature for the hour of ref
	GetSeaSurfaceTemperature(ctx context.Context, lat, lon float64, ref time.Time) (*models.SeaTemperatureReading, error)
}

// WeatherClient defines the interface for fetching weather forecasts
type WeatherClient interface {
	// GetHourlyWeather retrieves the forecast for the hour of ref
	GetHourlyWeather(ctx context.Context, lat, lon float64, ref time.Time) (*models.WeatherReading, error)
}

// Option configures a client
type Option func(*apiClient)

// WithBaseURL overrides the API endpoint
func WithBaseURL(u string) Option {
	return func(c *apiClient) { c.baseURL = u }
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(c *apiClient) { c.httpClient = h }
}

// WithLocation sets the zone used for request dates and returned timestamps
func WithLocation(loc *time.Location, name string) Option {
	return func(c *apiClient) {
		c.loc = loc
		c.timezone = name
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *apiClient) { c.userAgent = ua }
}

// apiClient holds what every Open-Meteo endpoint needs
type apiClient struct {
	baseURL    string
	httpClient *http.Client
	loc        *time.Location
	timezone   string
	userAgent  string
}

func newAPIClient(baseURL string, opts []Option) apiClient {
	c := apiClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		loc:       time.FixedZone("Indian/Mauritius", 4*3600),
		timezone:  "Indian/Mauritius",
		userAgent: "AnglerTerminal/1.0 (github.com/ngmaloney/angler-terminal)",
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// get requests baseURL with params for the local day of date and decodes JSON into out
func (c *apiClient) get(ctx context.Context, lat, lon float64, date time.Time, params url.Values, out any) error {
	day := date.In(c.loc).Format(time.DateOnly)
	params.Set("latitude", fmt.Sprintf("%.4f", lat))
	params.Set("longitude", fmt.Sprintf("%.4f", lon))
	params.Set("timezone", c.timezone)
	params.Set("start_date", day)
	params.Set("end_date", day)

	requestURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseTimes parses local ISO timestamps as returned when a timezone is requested
func (c *apiClient) parseTimes(raw []string) ([]time.Time, error) {
	times := make([]time.Time, len(raw))
	for i, s := range raw {
		t, err := time.ParseInLocation("2006-01-02T15:04", s, c.loc)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
		times[i] = t
	}
	return times, nil
}

// nearestHour returns the index of the sample closest to ref
func nearestHour(times []time.Time, ref time.Time) int {
	best, bestDiff := 0, math.MaxFloat64
	for i, t := range times {
		if d := math.Abs(float64(t.Sub(ref))); d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return best
}

// valueAt returns the value at i, or false when missing or null
func valueAt(values []*float64, i int) (float64, bool) {
	if i < 0 || i >= len(values) || values[i] == nil {
		return 0, false
	}
	return *values[i], true
}
