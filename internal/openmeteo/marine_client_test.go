package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

var mauritius = time.FixedZone("Indian/Mauritius", 4*3600)

func fixtureServer(t *testing.T, fixture string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	data, err := os.ReadFile("testdata/" + fixture)
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewMarineClient(t *testing.T) {
	client := NewMarineClient()

	if client == nil {
		t.Fatal("NewMarineClient() returned nil")
	}

	if client.baseURL != DefaultMarineURL {
		t.Errorf("baseURL = %s, unexpected value", client.baseURL)
	}

	if client.httpClient.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", client.httpClient.Timeout)
	}

	if client.timezone != "Indian/Mauritius" {
		t.Errorf("timezone = %s, want Indian/Mauritius", client.timezone)
	}
}

func TestOpenMeteoMarineClient_GetSeaLevelSeries(t *testing.T) {
	server := fixtureServer(t, "sea_level_response.json", func(r *http.Request) {
		// Verify query parameters
		query := r.URL.Query()
		if query.Get("hourly") != "sea_level_height_msl" {
			t.Errorf("hourly param = %s, want sea_level_height_msl", query.Get("hourly"))
		}
		if query.Get("start_date") != "2024-05-01" || query.Get("end_date") != "2024-05-01" {
			t.Errorf("date range = %s..%s, want the local day", query.Get("start_date"), query.Get("end_date"))
		}
		if query.Get("latitude") != "-20.1609" {
			t.Errorf("latitude param = %s", query.Get("latitude"))
		}
		if query.Get("timezone") != "Indian/Mauritius" {
			t.Error("timezone param should be Indian/Mauritius")
		}
	})

	client := NewMarineClient(WithBaseURL(server.URL))

	// 22:00 UTC on 30 April is already 1 May in Mauritius
	date := time.Date(2024, 4, 30, 22, 0, 0, 0, time.UTC)
	series, err := client.GetSeaLevelSeries(context.Background(), -20.1609, 57.5012, date)

	if err != nil {
		t.Fatalf("GetSeaLevelSeries() error = %v", err)
	}

	if len(series) != 23 {
		t.Errorf("len(series) = %d, want 23 (null sample skipped)", len(series))
	}

	first := series[0]
	if !first.Time.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, mauritius)) {
		t.Errorf("first sample time = %v, want local midnight", first.Time)
	}
	if first.Height != 0.4 {
		t.Errorf("first sample height = %v, want 0.4", first.Height)
	}
}

func TestOpenMeteoMarineClient_GetWaveConditions(t *testing.T) {
	server := fixtureServer(t, "marine_response.json", func(r *http.Request) {
		if r.URL.Query().Get("daily") != "wave_height_max" {
			t.Error("daily param should request wave_height_max")
		}
	})

	client := NewMarineClient(WithBaseURL(server.URL))
	ref := time.Date(2024, 5, 1, 10, 20, 0, 0, mauritius)

	reading, err := client.GetWaveConditions(context.Background(), -20.16, 57.50, ref)
	if err != nil {
		t.Fatalf("GetWaveConditions() error = %v", err)
	}

	if reading.WaveHeight != 1.3 {
		t.Errorf("WaveHeight = %v, want 1.3 (10:00 sample)", reading.WaveHeight)
	}
	if reading.WaveHeightMax != 1.62 {
		t.Errorf("WaveHeightMax = %v, want 1.62", reading.WaveHeightMax)
	}
	if reading.Condition != models.SeaModerate {
		t.Errorf("Condition = %s, want Moderate", reading.Condition)
	}
	if reading.WavePeriod != 8.5 || reading.WaveDirection != 120 {
		t.Errorf("period/direction = %v/%v, want 8.5/120", reading.WavePeriod, reading.WaveDirection)
	}
	if reading.Source != models.SourceLive {
		t.Errorf("Source = %s, want live", reading.Source)
	}
}

func TestOpenMeteoMarineClient_GetSeaSurfaceTemperature(t *testing.T) {
	server := fixtureServer(t, "marine_response.json", nil)

	client := NewMarineClient(WithBaseURL(server.URL))
	ref := time.Date(2024, 5, 1, 10, 0, 0, 0, mauritius)

	reading, err := client.GetSeaSurfaceTemperature(context.Background(), -20.16, 57.50, ref)
	if err != nil {
		t.Fatalf("GetSeaSurfaceTemperature() error = %v", err)
	}

	if reading.Temperature != 26.8 {
		t.Errorf("Temperature = %v, want 26.8", reading.Temperature)
	}
	if reading.Band != models.SeaComfortable {
		t.Errorf("Band = %s, want comfortable", reading.Band)
	}
}

func TestOpenMeteoMarineClient_ErrorHandling(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":true,"reason":"No data is available for this location"}`))
	}))
	defer server.Close()

	client := NewMarineClient(WithBaseURL(server.URL))
	ctx := context.Background()

	if _, err := client.GetSeaLevelSeries(ctx, 0, 0, time.Now()); err == nil {
		t.Error("Expected error for bad request, got nil")
	}
	if _, err := client.GetWaveConditions(ctx, 0, 0, time.Now()); err == nil {
		t.Error("Expected error for bad request, got nil")
	}
}

func TestOpenMeteoMarineClient_ContextCancelled(t *testing.T) {
	server := fixtureServer(t, "marine_response.json", nil)
	client := NewMarineClient(WithBaseURL(server.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.GetWaveConditions(ctx, -20.16, 57.50, time.Now()); err == nil {
		t.Error("Expected error for cancelled context, got nil")
	}
}
