package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

// spotItem wraps a catalogue Location for use in a list
type spotItem struct {
	location   models.Location
	distanceKm float64 // negative when the spot came from a name match
}

// FilterValue implements list.Item
func (s spotItem) FilterValue() string {
	return s.location.Name + " " + s.location.Region
}

// Title implements list.DefaultItem
func (s spotItem) Title() string {
	return s.location.Name
}

// Description implements list.DefaultItem
func (s spotItem) Description() string {
	desc := fmt.Sprintf("%s • %s", s.location.Region, s.location.Type)
	if s.distanceKm >= 0 {
		desc += fmt.Sprintf(" • %.1f km away", s.distanceKm)
	}
	return desc
}

// createSpotList creates a list.Model from spots
func createSpotList(spots []spotItem, width, height int) list.Model {
	items := make([]list.Item, len(spots))
	for i, spot := range spots {
		items[i] = spot
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Select a Fishing Spot"
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)

	return l
}
