// Package api exposes fishing conditions and catch statistics over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ngmaloney/angler-terminal/internal/conditions"
	"github.com/ngmaloney/angler-terminal/internal/metrics"
	"github.com/ngmaloney/angler-terminal/internal/models"
)

const shutdownTimeout = 10 * time.Second

// ConditionsService computes environmental readings
type ConditionsService interface {
	Today() string
	Moon(date string) (models.MoonPhase, error)
	Tide(ctx context.Context, lat, lon float64, date, ref string) (models.TideReading, error)
	Solunar(ctx context.Context, date string, lat, lon float64) (models.SolunarSnapshot, error)
	CurrentActivity(snapshot *models.SolunarSnapshot, hhmm string) (models.CurrentActivity, error)
	Snapshot(ctx context.Context, req conditions.Request) (*models.EnvironmentalSnapshot, error)
	SnapshotAt(ctx context.Context, date, ref string, lat, lon float64) (*models.EnvironmentalSnapshot, error)
}

// LocationLister lists catalogue locations
type LocationLister interface {
	List(ctx context.Context, region string) ([]models.Location, error)
}

// CatchStatistics reports community catch analysis
type CatchStatistics interface {
	Predictions(ctx context.Context) (*models.CatchPredictions, error)
	LocationStats(ctx context.Context, locationID string) (*models.LocationStats, error)
	BestConditions(ctx context.Context, fishingType, bait string) (*models.BestConditions, error)
}

// Deps are the collaborators the server routes to. Catches and Metrics
// are optional.
type Deps struct {
	Conditions ConditionsService
	Locations  LocationLister
	Catches    CatchStatistics
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
}

// Server is the HTTP front end
type Server struct {
	echo       *echo.Echo
	conditions ConditionsService
	locations  LocationLister
	catches    CatchStatistics
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// New creates a server with every route registered
func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:       e,
		conditions: deps.Conditions,
		locations:  deps.Locations,
		catches:    deps.Catches,
		metrics:    deps.Metrics,
		logger:     logger.With("module", "api"),
	}

	e.Use(s.requestID)
	e.Use(s.observe)
	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/healthz", s.health)

	api := s.echo.Group("/api")
	api.GET("/locations", s.listLocations)
	api.GET("/environment", s.environment)
	api.GET("/environment/coordinates", s.environmentAt)
	api.GET("/moon", s.moon)
	api.GET("/tide", s.tide)
	api.GET("/solunar", s.solunar)

	if s.catches != nil {
		api.GET("/predictions", s.predictions)
		api.GET("/locations/:id/stats", s.locationStats)
		api.GET("/best-conditions", s.bestConditions)
	}

	if s.metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))
	}
}

// Handler returns the underlying http.Handler
func (s *Server) Handler() http.Handler { return s.echo }

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api server listening", "address", addr)
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api server shutdown: %w", err)
	}
	s.logger.Info("api server stopped")
	return nil
}
