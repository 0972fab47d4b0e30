package models

// LocationType is the kind of fishing spot
type LocationType string

const (
	LocationBeach   LocationType = "beach"
	LocationBay     LocationType = "bay"
	LocationShore   LocationType = "shore"
	LocationVillage LocationType = "village"
	LocationReserve LocationType = "reserve"
	LocationHarbour LocationType = "harbour"
	LocationRiver   LocationType = "river"
	LocationDeepSea LocationType = "deep-sea"
	LocationIsland  LocationType = "island"
	LocationCustom  LocationType = "custom"
)

// Location represents a named fishing spot.
// It is read-only reference data loaded from the bundled catalogue.
type Location struct {
	ID        string       `json:"id" yaml:"id"`     // slug (e.g. "grand-baie")
	Name      string       `json:"name" yaml:"name"` // display name
	Latitude  float64      `json:"lat" yaml:"lat"`
	Longitude float64      `json:"lon" yaml:"lon"`
	Type      LocationType `json:"type" yaml:"type"`
	Region    string       `json:"region" yaml:"region"` // e.g. "North", "Offshore"
}
