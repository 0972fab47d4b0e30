package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ngmaloney/angler-terminal/internal/conditions"
	"github.com/ngmaloney/angler-terminal/internal/locations"
	"github.com/ngmaloney/angler-terminal/internal/logbook"
	"github.com/ngmaloney/angler-terminal/internal/models"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// SolunarResponse pairs the day's periods with the activity at a local time
type SolunarResponse struct {
	Solunar         models.SolunarSnapshot  `json:"solunar"`
	CurrentActivity *models.CurrentActivity `json:"currentActivity,omitempty"`
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listLocations(c echo.Context) error {
	locs, err := s.locations.List(c.Request().Context(), c.QueryParam("region"))
	if err != nil {
		return s.fail(c, err)
	}
	if locs == nil {
		locs = []models.Location{}
	}
	return c.JSON(http.StatusOK, locs)
}

func (s *Server) environment(c echo.Context) error {
	snap, err := s.conditions.Snapshot(c.Request().Context(), conditions.Request{
		Date:          s.date(c),
		ReferenceTime: c.QueryParam("referenceTime"),
		LocationID:    c.QueryParam("locationId"),
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, snap)
}

func (s *Server) environmentAt(c echo.Context) error {
	lat, lon, err := coordinates(c)
	if err != nil {
		return s.fail(c, err)
	}
	snap, err := s.conditions.SnapshotAt(c.Request().Context(), s.date(c), c.QueryParam("referenceTime"), lat, lon)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, snap)
}

func (s *Server) moon(c echo.Context) error {
	m, err := s.conditions.Moon(s.date(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (s *Server) tide(c echo.Context) error {
	lat, lon, err := coordinates(c)
	if err != nil {
		return s.fail(c, err)
	}
	t, err := s.conditions.Tide(c.Request().Context(), lat, lon, s.date(c), c.QueryParam("referenceTime"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) solunar(c echo.Context) error {
	lat, lon, err := coordinates(c)
	if err != nil {
		return s.fail(c, err)
	}
	snap, err := s.conditions.Solunar(c.Request().Context(), s.date(c), lat, lon)
	if err != nil {
		return s.fail(c, err)
	}

	resp := SolunarResponse{Solunar: snap}
	if hhmm := c.QueryParam("time"); hhmm != "" {
		act, err := s.conditions.CurrentActivity(&snap, hhmm)
		if err != nil {
			return s.fail(c, err)
		}
		resp.CurrentActivity = &act
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) predictions(c echo.Context) error {
	p, err := s.catches.Predictions(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) locationStats(c echo.Context) error {
	st, err := s.catches.LocationStats(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

func (s *Server) bestConditions(c echo.Context) error {
	bc, err := s.catches.BestConditions(c.Request().Context(), c.QueryParam("fishingType"), c.QueryParam("bait"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, bc)
}

// date returns the requested date, defaulting to today
func (s *Server) date(c echo.Context) string {
	if d := strings.TrimSpace(c.QueryParam("date")); d != "" {
		return d
	}
	return s.conditions.Today()
}

func coordinates(c echo.Context) (float64, float64, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(c.QueryParam("lat")), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: lat %q", conditions.ErrInvalidCoordinates, c.QueryParam("lat"))
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(c.QueryParam("lon")), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: lon %q", conditions.ErrInvalidCoordinates, c.QueryParam("lon"))
	}
	return lat, lon, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, conditions.ErrInvalidDate),
		errors.Is(err, conditions.ErrInvalidTime),
		errors.Is(err, conditions.ErrInvalidCoordinates):
		return http.StatusBadRequest
	case errors.Is(err, conditions.ErrUnknownLocation),
		errors.Is(err, locations.ErrNotFound),
		errors.Is(err, logbook.ErrNoData):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a JSON error. Internal errors are logged and not echoed.
func (s *Server) fail(c echo.Context, err error) error {
	code := statusFor(err)
	id, _ := c.Get(requestIDKey).(string)

	msg := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", id, "path", c.Request().URL.Path, "error", err)
		msg = http.StatusText(code)
	}
	return c.JSON(code, ErrorResponse{Error: msg, RequestID: id})
}
