package cli

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ngmaloney/angler-terminal/internal/conditions"
	"github.com/ngmaloney/angler-terminal/internal/config"
	"github.com/ngmaloney/angler-terminal/internal/database"
	"github.com/ngmaloney/angler-terminal/internal/geocoding"
	"github.com/ngmaloney/angler-terminal/internal/locations"
	"github.com/ngmaloney/angler-terminal/internal/logbook"
	"github.com/ngmaloney/angler-terminal/internal/meteomu"
	"github.com/ngmaloney/angler-terminal/internal/metrics"
	"github.com/ngmaloney/angler-terminal/internal/openmeteo"
	"github.com/ngmaloney/angler-terminal/internal/regions"
	"github.com/ngmaloney/angler-terminal/internal/solunar"
)

// Runtime holds the opened database and the services built on it
type Runtime struct {
	DB         *sql.DB
	Locations  *locations.Repository
	Regions    *regions.Index
	Conditions *conditions.Service
	Logbook    *logbook.Service
	Geocoder   *geocoding.Geocoder
	Metrics    *metrics.Metrics
}

// NewRuntime opens storage and wires every service from settings
func NewRuntime(s *config.Settings, logger *slog.Logger) (*Runtime, error) {
	db, err := database.Open(s.Database.Path)
	if err != nil {
		return nil, err
	}
	rt := &Runtime{DB: db}

	if err := rt.build(s, logger); err != nil {
		db.Close()
		return nil, err
	}
	return rt, nil
}

func (rt *Runtime) build(s *config.Settings, logger *slog.Logger) error {
	var err error
	if rt.Locations, err = locations.NewRepository(rt.DB); err != nil {
		return fmt.Errorf("opening location catalogue: %w", err)
	}

	if rt.Regions, err = loadRegions(rt.DB, s.Regions.Shapefile, logger); err != nil {
		return err
	}

	if rt.Metrics, err = metrics.New(metrics.NewRegistry()); err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	loc := s.Location()
	httpClient := &http.Client{Timeout: s.OpenMeteo.Timeout}
	marine := openmeteo.NewMarineClient(
		openmeteo.WithBaseURL(s.OpenMeteo.MarineURL),
		openmeteo.WithHTTPClient(httpClient),
		openmeteo.WithLocation(loc, s.Time.ZoneName),
	)
	weather := openmeteo.NewWeatherClient(
		openmeteo.WithBaseURL(s.OpenMeteo.ForecastURL),
		openmeteo.WithHTTPClient(httpClient),
		openmeteo.WithLocation(loc, s.Time.ZoneName),
	)

	scraper := meteomu.NewClient()
	scraper.SetURLs(s.MeteoMauritius.SunURL, s.MeteoMauritius.MoonURL)
	scraper.SetTimeout(s.MeteoMauritius.Timeout)
	engine := solunar.NewEngine(scraper, solunar.NewTableCache(s.MeteoMauritius.CacheTTL, nil), loc,
		solunar.WithFetchTimeout(s.MeteoMauritius.Timeout),
		solunar.WithTwilight(solunar.NewTwilight(loc)),
		solunar.WithLogger(logger),
	)

	rt.Conditions = conditions.NewService(rt.Locations,
		conditions.WithMarineClient(marine),
		conditions.WithWeatherClient(weather),
		conditions.WithSolunarEngine(engine),
		conditions.WithRegions(rt.Regions),
		conditions.WithHarmonicModel(s.Tide.Harmonic),
		conditions.WithLiveThresholds(s.Tide.LiveThresholds),
		conditions.WithTimeouts(conditions.Timeouts{
			Tide:           s.OpenMeteo.Timeout,
			Weather:        s.OpenMeteo.Timeout,
			Marine:         s.OpenMeteo.Timeout,
			SeaTemperature: s.OpenMeteo.Timeout,
		}),
		conditions.WithTimeLocation(loc),
		conditions.WithRecorder(rt.Metrics),
		conditions.WithLogger(logger),
	)

	logs, err := logbook.NewRepository(rt.DB)
	if err != nil {
		return fmt.Errorf("opening logbook: %w", err)
	}
	rt.Logbook = logbook.NewService(logs, rt.Locations, rt.Conditions, logger)

	rt.Geocoder = geocoding.NewGeocoder(geocoding.WithBaseURL(s.Nominatim.URL))
	return nil
}

// loadRegions provisions the region table from a shapefile when one is
// configured and loads whatever regions are stored. No regions is not an error.
func loadRegions(db *sql.DB, shapefile string, logger *slog.Logger) (*regions.Index, error) {
	if shapefile != "" {
		if _, err := regions.ProvisionFromShapefile(db, shapefile, logger); err != nil {
			logger.Warn("region provisioning failed, naming custom points by nearest spot", "shapefile", shapefile, "error", err)
		}
	}

	needed, err := regions.NeedsProvisioning(db)
	if err != nil {
		return nil, fmt.Errorf("checking regions: %w", err)
	}
	if needed {
		return regions.NewIndex(nil), nil
	}
	return regions.LoadIndex(db)
}

// Close closes the database
func (rt *Runtime) Close() error {
	return rt.DB.Close()
}
