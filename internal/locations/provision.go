package locations

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

//go:embed catalogue.yaml
var catalogueYAML []byte

var provisionMu sync.Mutex

type catalogueFile struct {
	Locations []models.Location `yaml:"locations"`
}

// Catalogue returns the bundled fishing locations.
func Catalogue() ([]models.Location, error) {
	return parseCatalogue(catalogueYAML)
}

func parseCatalogue(data []byte) ([]models.Location, error) {
	var file catalogueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding location catalogue: %w", err)
	}

	seen := make(map[string]bool, len(file.Locations))
	for _, loc := range file.Locations {
		if loc.ID == "" || loc.Name == "" {
			return nil, fmt.Errorf("catalogue entry %+v is missing id or name", loc)
		}
		if seen[loc.ID] {
			return nil, fmt.Errorf("duplicate catalogue id %q", loc.ID)
		}
		seen[loc.ID] = true
	}
	return file.Locations, nil
}

// NeedsProvisioning checks if the locations table needs to be provisioned
func NeedsProvisioning(db *sql.DB) (bool, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='locations'").Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking for locations table: %w", err)
	}
	if count == 0 {
		return true, nil
	}

	err = db.QueryRow("SELECT COUNT(*) FROM locations").Scan(&count)
	if err != nil {
		return false, fmt.Errorf("counting locations: %w", err)
	}
	return count == 0, nil
}

// Provision stores the bundled catalogue in the locations table
func Provision(db *sql.DB, logger *slog.Logger) error {
	provisionMu.Lock()
	defer provisionMu.Unlock()

	if logger == nil {
		logger = slog.Default()
	}

	needs, err := NeedsProvisioning(db)
	if err != nil {
		return err
	}
	if !needs {
		return nil
	}

	catalogue, err := Catalogue()
	if err != nil {
		return err
	}

	logger.Info("locations table not found, provisioning", "entries", len(catalogue))
	if err := buildLocationsTable(db, catalogue, logger); err != nil {
		return fmt.Errorf("building locations table: %w", err)
	}
	return nil
}

// buildLocationsTable creates the locations table and inserts the catalogue
func buildLocationsTable(db *sql.DB, catalogue []models.Location, logger *slog.Logger) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS locations (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			region TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_locations_coords ON locations(latitude, longitude);
		CREATE INDEX IF NOT EXISTS idx_locations_region ON locations(region);
	`)
	if err != nil {
		return fmt.Errorf("creating locations table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO locations (id, name, type, region, latitude, longitude) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	count := 0
	for _, l := range catalogue {
		if _, err := stmt.Exec(l.ID, l.Name, string(l.Type), l.Region, l.Latitude, l.Longitude); err != nil {
			logger.Warn("inserting location", "id", l.ID, "error", err)
			continue
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	logger.Info("provisioned locations", "count", count)
	return nil
}
