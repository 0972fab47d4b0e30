// Package geocoding turns free-text place names and coordinate pairs into
// positions in Mauritius
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"
	userAgent           = "AnglerTerminal/1.0" // Required by Nominatim ToS
)

// ErrNoResults is returned when the query matched nothing
var ErrNoResults = errors.New("no results found")

// Geocoder converts place names to coordinates
type Geocoder struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Location represents a geocoded location
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Name      string  `json:"name"`
}

// Option configures a Geocoder
type Option func(*Geocoder)

// WithBaseURL overrides the Nominatim search endpoint.
func WithBaseURL(u string) Option {
	return func(g *Geocoder) { g.baseURL = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Geocoder) { g.httpClient = c }
}

// WithRateLimit overrides the request rate (Nominatim allows one per second).
func WithRateLimit(l rate.Limit, burst int) Option {
	return func(g *Geocoder) { g.limiter = rate.NewLimiter(l, burst) }
}

// NewGeocoder creates a new geocoder
func NewGeocoder(opts ...Option) *Geocoder {
	g := &Geocoder{
		baseURL: DefaultNominatimURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// nominatimResponse represents the Nominatim API response
type nominatimResponse struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

var coordinatePattern = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)\s*[, ]\s*(-?\d+(?:\.\d+)?)\s*$`)

// parseCoordinates accepts "lat, lon" or "lat lon" in decimal degrees.
func parseCoordinates(s string) (float64, float64, bool) {
	m := coordinatePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	lat, err1 := strconv.ParseFloat(m[1], 64)
	lon, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}

// Geocode converts a query (place name or "lat, lon") to coordinates
func (g *Geocoder) Geocode(ctx context.Context, query string) (*Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	if lat, lon, ok := parseCoordinates(query); ok {
		return &Location{
			Latitude:  lat,
			Longitude: lon,
			Name:      fmt.Sprintf("%.4f, %.4f", lat, lon),
		}, nil
	}

	params := url.Values{}
	params.Add("format", "json")
	params.Add("limit", "1")
	params.Add("countrycodes", "mu")
	params.Add("q", query)

	reqURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim API returned status %d", resp.StatusCode)
	}

	var results []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("%w for '%s'", ErrNoResults, query)
	}

	result := results[0]

	lat, err := strconv.ParseFloat(result.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(result.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing longitude: %w", err)
	}

	return &Location{
		Latitude:  lat,
		Longitude: lon,
		Name:      result.DisplayName,
	}, nil
}
