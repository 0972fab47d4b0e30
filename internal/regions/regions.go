// Package regions resolves coordinates to named fishing regions using
// polygons stored in SQLite
package regions

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"sync"
)

// Region is a named fishing region polygon.
// Ring coordinates are [lon, lat] pairs.
type Region struct {
	Name      string
	Ring      [][]float64
	MinLat    float64
	MaxLat    float64
	MinLon    float64
	MaxLon    float64
	CenterLat float64
	CenterLon float64
}

// Index answers point-in-region queries. The zero value and a nil *Index
// contain no regions.
type Index struct {
	mu      sync.RWMutex
	regions []Region
}

// NewIndex builds an index over the given regions.
func NewIndex(regions []Region) *Index {
	return &Index{regions: regions}
}

// LoadIndex reads every region from the fishing_regions table.
func LoadIndex(db *sql.DB) (*Index, error) {
	rows, err := db.Query(`
		SELECT name, geometry, bbox_min_lat, bbox_max_lat, bbox_min_lon, bbox_max_lon, center_lat, center_lon
		FROM fishing_regions
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying regions: %w", err)
	}
	defer rows.Close()

	var regions []Region
	for rows.Next() {
		var r Region
		var geometry string
		if err := rows.Scan(&r.Name, &geometry, &r.MinLat, &r.MaxLat, &r.MinLon, &r.MaxLon, &r.CenterLat, &r.CenterLon); err != nil {
			return nil, fmt.Errorf("scanning region: %w", err)
		}
		if err := json.Unmarshal([]byte(geometry), &r.Ring); err != nil {
			return nil, fmt.Errorf("decoding geometry for %s: %w", r.Name, err)
		}
		regions = append(regions, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading regions: %w", err)
	}

	return NewIndex(regions), nil
}

// Len returns the number of indexed regions.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.regions)
}

// Lookup returns the name of the region containing the point.
func (idx *Index) Lookup(lat, lon float64) (string, bool) {
	if idx == nil {
		return "", false
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	for _, r := range idx.regions {
		if lat < r.MinLat || lat > r.MaxLat || lon < r.MinLon || lon > r.MaxLon {
			continue
		}
		if containsPoint(r.Ring, lon, lat) {
			return r.Name, true
		}
	}
	return "", false
}

// Nearest returns the region whose center is closest to the point,
// with the distance in kilometres.
func (idx *Index) Nearest(lat, lon float64) (string, float64, bool) {
	if idx.Len() == 0 {
		return "", 0, false
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	type candidate struct {
		name string
		dist float64
	}
	candidates := make([]candidate, 0, len(idx.regions))
	for _, r := range idx.regions {
		candidates = append(candidates, candidate{r.Name, HaversineDistance(lat, lon, r.CenterLat, r.CenterLon)})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})
	return candidates[0].name, candidates[0].dist, true
}

// containsPoint is an even-odd ray cast against a closed ring.
func containsPoint(ring [][]float64, x, y float64) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// HaversineDistance calculates distance in kilometres between two lat/lon points
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
