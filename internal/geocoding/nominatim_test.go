package geocoding

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const testURL = "https://nominatim.test/search"

func newMockedGeocoder(t *testing.T) *Geocoder {
	t.Helper()
	client := &http.Client{}
	httpmock.ActivateNonDefault(client)
	t.Cleanup(httpmock.DeactivateAndReset)

	return NewGeocoder(
		WithBaseURL(testURL),
		WithHTTPClient(client),
		WithRateLimit(rate.Inf, 1),
	)
}

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		input   string
		lat     float64
		lon     float64
		matched bool
	}{
		{"-20.1609, 57.4989", -20.1609, 57.4989, true},
		{"-20.1609 57.4989", -20.1609, 57.4989, true},
		{"  -20,57 ", -20, 57, true},
		{"-95, 57", 0, 0, false},
		{"Grand Baie", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lat, lon, ok := parseCoordinates(tt.input)
			if ok != tt.matched {
				t.Fatalf("parseCoordinates(%q) ok = %v, want %v", tt.input, ok, tt.matched)
			}
			if lat != tt.lat || lon != tt.lon {
				t.Errorf("parseCoordinates(%q) = %v, %v, want %v, %v", tt.input, lat, lon, tt.lat, tt.lon)
			}
		})
	}
}

func TestGeocode_Nominatim(t *testing.T) {
	g := newMockedGeocoder(t)

	httpmock.RegisterResponder(http.MethodGet, testURL,
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "mu", req.URL.Query().Get("countrycodes"))
			assert.Equal(t, "Mahebourg", req.URL.Query().Get("q"))
			assert.Equal(t, userAgent, req.Header.Get("User-Agent"))
			return httpmock.NewStringResponse(http.StatusOK,
				`[{"lat":"-20.4081","lon":"57.7000","display_name":"Mahébourg, Grand Port, Mauritius"}]`), nil
		})

	loc, err := g.Geocode(context.Background(), "Mahebourg")
	require.NoError(t, err)
	assert.InDelta(t, -20.4081, loc.Latitude, 1e-9)
	assert.InDelta(t, 57.7, loc.Longitude, 1e-9)
	assert.Equal(t, "Mahébourg, Grand Port, Mauritius", loc.Name)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestGeocode_Coordinates(t *testing.T) {
	g := newMockedGeocoder(t)

	loc, err := g.Geocode(context.Background(), "-20.2750, 57.3667")
	require.NoError(t, err)
	assert.Equal(t, -20.275, loc.Latitude)
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestGeocode_Errors(t *testing.T) {
	g := newMockedGeocoder(t)

	httpmock.RegisterResponder(http.MethodGet, testURL+"?countrycodes=mu&format=json&limit=1&q=Atlantis",
		httpmock.NewStringResponder(http.StatusOK, `[]`))
	httpmock.RegisterResponder(http.MethodGet, testURL+"?countrycodes=mu&format=json&limit=1&q=Broken",
		httpmock.NewStringResponder(http.StatusServiceUnavailable, ``))

	_, err := g.Geocode(context.Background(), "")
	assert.Error(t, err)

	_, err = g.Geocode(context.Background(), "Atlantis")
	assert.True(t, errors.Is(err, ErrNoResults))

	_, err = g.Geocode(context.Background(), "Broken")
	assert.ErrorContains(t, err, "status 503")
}

func TestGeocode_RateLimitHonoursContext(t *testing.T) {
	g := NewGeocoder(WithBaseURL(testURL), WithRateLimit(rate.Limit(0.001), 1))
	g.limiter.Allow() // drain the only token

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Geocode(ctx, "Grand Baie")
	assert.ErrorContains(t, err, "rate limiter")
}
