package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/angler-terminal/internal/conditions"
	"github.com/ngmaloney/angler-terminal/internal/geocoding"
	"github.com/ngmaloney/angler-terminal/internal/models"
)

// nearbyRadiusKm bounds the catalogue spots offered for a geocoded place
const nearbyRadiusKm = 25.0

// Message types for async operations

// searchResultMsg is sent when a search completes. point is set when the
// query was geocoded rather than matched in the catalogue.
type searchResultMsg struct {
	spots []spotItem
	point *geocoding.Location
	err   error
}

// snapshotMsg is sent when conditions for a day have been assembled
type snapshotMsg struct {
	date     string
	snapshot *models.EnvironmentalSnapshot
	err      error
}

// errMsg is a message type for errors
type errMsg struct {
	err error
}

// searchSpots matches the catalogue first and falls back to geocoding the
// query and listing the spots near it
func searchSpots(finder LocationFinder, geocoder Geocoder, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		matches, err := finder.Search(ctx, query)
		if err != nil {
			return searchResultMsg{err: fmt.Errorf("searching spots: %w", err)}
		}
		if len(matches) > 0 {
			spots := make([]spotItem, len(matches))
			for i, l := range matches {
				spots[i] = spotItem{location: l, distanceKm: -1}
			}
			return searchResultMsg{spots: spots}
		}

		if geocoder == nil {
			return searchResultMsg{err: fmt.Errorf("no fishing spots match '%s'", query)}
		}
		point, err := geocoder.Geocode(ctx, query)
		if err != nil {
			return searchResultMsg{err: fmt.Errorf("geocoding failed: %w", err)}
		}

		nearby, err := finder.FindNearby(ctx, point.Latitude, point.Longitude, nearbyRadiusKm)
		if err != nil {
			return searchResultMsg{err: fmt.Errorf("finding nearby spots: %w", err)}
		}
		spots := make([]spotItem, len(nearby))
		for i, n := range nearby {
			spots[i] = spotItem{location: n.Location, distanceKm: n.DistanceKm}
		}
		return searchResultMsg{spots: spots, point: point}
	}
}

// fetchSnapshot assembles conditions for the target on date
func fetchSnapshot(provider ConditionsProvider, t target, date, ref string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var (
			snap *models.EnvironmentalSnapshot
			err  error
		)
		if t.location != nil {
			snap, err = provider.Snapshot(ctx, conditions.Request{
				Date:          date,
				ReferenceTime: ref,
				LocationID:    t.location.ID,
			})
		} else {
			snap, err = provider.SnapshotAt(ctx, date, ref, t.point.Latitude, t.point.Longitude)
		}
		return snapshotMsg{date: date, snapshot: snap, err: err}
	}
}
