package regions

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonas-p/go-shp"
)

// NameField is the DBF attribute holding the region name.
const NameField = "NAME"

// NeedsProvisioning reports whether the fishing_regions table is missing.
func NeedsProvisioning(db *sql.DB) (bool, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='fishing_regions'").Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking for fishing_regions table: %w", err)
	}
	return count == 0, nil
}

// ProvisionFromShapefile loads region polygons from a shapefile into the
// fishing_regions table. It is a no-op when the table already exists.
func ProvisionFromShapefile(db *sql.DB, shapefilePath string, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.Default()
	}

	needs, err := NeedsProvisioning(db)
	if err != nil {
		return 0, err
	}
	if !needs {
		return 0, nil
	}

	shape, err := shp.Open(shapefilePath)
	if err != nil {
		return 0, fmt.Errorf("opening shapefile: %w", err)
	}
	defer shape.Close()

	nameIdx := -1
	for i, f := range shape.Fields() {
		if strings.EqualFold(f.String(), NameField) {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return 0, fmt.Errorf("shapefile %s has no %s attribute", shapefilePath, NameField)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		CREATE TABLE fishing_regions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			geometry TEXT NOT NULL,
			bbox_min_lat REAL NOT NULL,
			bbox_max_lat REAL NOT NULL,
			bbox_min_lon REAL NOT NULL,
			bbox_max_lon REAL NOT NULL,
			center_lat REAL NOT NULL,
			center_lon REAL NOT NULL
		);
		CREATE INDEX idx_regions_bbox ON fishing_regions(
			bbox_min_lat, bbox_max_lat, bbox_min_lon, bbox_max_lon
		);
	`)
	if err != nil {
		return 0, fmt.Errorf("creating table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO fishing_regions (
			name, geometry,
			bbox_min_lat, bbox_max_lat, bbox_min_lon, bbox_max_lon,
			center_lat, center_lon
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for shape.Next() {
		n, p := shape.Shape()
		name := strings.TrimRight(shape.ReadAttribute(n, nameIdx), "\x00 ")

		polygon, ok := p.(*shp.Polygon)
		if !ok {
			continue
		}

		coords := largestRing(polygon)
		if len(coords) < 3 {
			continue
		}
		geometryJSON, err := json.Marshal(coords)
		if err != nil {
			logger.Warn("marshaling region geometry", "region", name, "error", err)
			continue
		}

		bbox := polygon.BBox()
		_, err = stmt.Exec(name, string(geometryJSON),
			bbox.MinY, bbox.MaxY, bbox.MinX, bbox.MaxX,
			(bbox.MinY+bbox.MaxY)/2, (bbox.MinX+bbox.MaxX)/2)
		if err != nil {
			logger.Warn("inserting region", "region", name, "error", err)
			continue
		}
		count++
	}
	if err := shape.Err(); err != nil {
		return 0, fmt.Errorf("reading shapefile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	logger.Info("provisioned fishing regions", "count", count, "source", shapefilePath)
	return count, nil
}

// largestRing returns the part with the most points, which is taken as the
// outer boundary of multi-part polygons.
func largestRing(polygon *shp.Polygon) [][]float64 {
	if len(polygon.Parts) == 0 {
		return nil
	}

	largestIdx, largestSize := 0, 0
	for i := range polygon.Parts {
		start, end := partBounds(polygon, i)
		if end-start > largestSize {
			largestSize = end - start
			largestIdx = i
		}
	}

	start, end := partBounds(polygon, largestIdx)
	coords := make([][]float64, 0, end-start)
	for _, p := range polygon.Points[start:end] {
		coords = append(coords, []float64{p.X, p.Y})
	}
	return coords
}

func partBounds(polygon *shp.Polygon, i int) (int, int) {
	start := int(polygon.Parts[i])
	end := len(polygon.Points)
	if i+1 < len(polygon.Parts) {
		end = int(polygon.Parts[i+1])
	}
	return start, end
}
