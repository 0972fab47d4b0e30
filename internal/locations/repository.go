// Package locations serves the catalogue of Mauritius fishing spots from SQLite
package locations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ngmaloney/angler-terminal/internal/models"
	"github.com/ngmaloney/angler-terminal/internal/regions"
)

// ErrNotFound is returned when no location has the requested id
var ErrNotFound = errors.New("location not found")

// NearbyLocation is a location with its distance from a point
type NearbyLocation struct {
	models.Location
	DistanceKm float64 `json:"distanceKm"`
}

// Repository reads locations from the provisioned table
type Repository struct {
	db *sql.DB
}

// NewRepository provisions the catalogue if needed and returns a repository over db
func NewRepository(db *sql.DB) (*Repository, error) {
	if err := Provision(db, nil); err != nil {
		return nil, fmt.Errorf("provisioning locations: %w", err)
	}
	return &Repository{db: db}, nil
}

const selectColumns = "SELECT id, name, type, region, latitude, longitude FROM locations"

func scanLocation(row interface{ Scan(...any) error }) (models.Location, error) {
	var l models.Location
	var typ string
	if err := row.Scan(&l.ID, &l.Name, &typ, &l.Region, &l.Latitude, &l.Longitude); err != nil {
		return models.Location{}, err
	}
	l.Type = models.LocationType(typ)
	return l, nil
}

func (r *Repository) query(ctx context.Context, query string, args ...any) ([]models.Location, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying locations: %w", err)
	}
	defer rows.Close()

	var out []models.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// LocationByID retrieves a single location by its id.
func (r *Repository) LocationByID(ctx context.Context, id string) (models.Location, error) {
	l, err := scanLocation(r.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Location{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return models.Location{}, fmt.Errorf("querying location by ID: %w", err)
	}
	return l, nil
}

// List returns all locations ordered by region and name, optionally
// restricted to one region (case-insensitive).
func (r *Repository) List(ctx context.Context, region string) ([]models.Location, error) {
	if region == "" {
		return r.query(ctx, selectColumns+" ORDER BY region, name")
	}
	return r.query(ctx, selectColumns+" WHERE region = ? COLLATE NOCASE ORDER BY name", region)
}

// Regions returns the distinct region names.
func (r *Repository) Regions(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT region FROM locations ORDER BY region")
	if err != nil {
		return nil, fmt.Errorf("querying regions: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning region: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// Search finds locations whose name, id or region contains the query.
func (r *Repository) Search(ctx context.Context, query string) ([]models.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.List(ctx, "")
	}
	like := "%" + query + "%"
	return r.query(ctx,
		selectColumns+" WHERE name LIKE ? OR id LIKE ? OR region LIKE ? ORDER BY name",
		like, like, like)
}

// FindNearby finds locations near the given coordinates within maxDistanceKm,
// nearest first.
func (r *Repository) FindNearby(ctx context.Context, lat, lon, maxDistanceKm float64) ([]NearbyLocation, error) {
	// Bounding box prefilter: 1 degree of latitude is about 111 km.
	latDelta := (maxDistanceKm / 111.0) * 1.5
	lonDelta := (maxDistanceKm / (111.0 * math.Cos(lat*math.Pi/180))) * 1.5

	candidates, err := r.query(ctx,
		selectColumns+" WHERE latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?",
		lat-latDelta, lat+latDelta, lon-lonDelta, lon+lonDelta)
	if err != nil {
		return nil, err
	}

	var nearby []NearbyLocation
	for _, l := range candidates {
		d := regions.HaversineDistance(lat, lon, l.Latitude, l.Longitude)
		if d <= maxDistanceKm {
			nearby = append(nearby, NearbyLocation{Location: l, DistanceKm: d})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})
	return nearby, nil
}

// Nearest returns the closest catalogue location regardless of distance.
func (r *Repository) Nearest(ctx context.Context, lat, lon float64) (models.Location, float64, error) {
	all, err := r.List(ctx, "")
	if err != nil {
		return models.Location{}, 0, err
	}
	if len(all) == 0 {
		return models.Location{}, 0, ErrNotFound
	}

	best, bestDist := all[0], math.Inf(1)
	for _, l := range all {
		if d := regions.HaversineDistance(lat, lon, l.Latitude, l.Longitude); d < bestDist {
			best, bestDist = l, d
		}
	}
	return best, bestDist, nil
}
