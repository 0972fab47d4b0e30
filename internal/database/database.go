package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// DBPath returns the path to the single shared database
func DBPath() string {
	return filepath.Join("data", "angler-terminal.db")
}

// InMemory reports whether path names a private in-memory database.
func InMemory(path string) bool {
	return path == ":memory:" || strings.HasPrefix(path, "file::memory:")
}

// Open opens (creating if needed) the SQLite database at path and applies
// the connection pragmas used across the application.
func Open(path string) (*sql.DB, error) {
	if !InMemory(path) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	if InMemory(path) {
		db.SetMaxOpenConns(1)
	} else {
		_, _ = db.Exec("PRAGMA journal_mode=WAL")
		_, _ = db.Exec("PRAGMA synchronous=NORMAL")
	}
	_, _ = db.Exec("PRAGMA cache_size=10000")
	_, _ = db.Exec("PRAGMA foreign_keys=ON")

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

// EnsureUserSchema ensures that the user-owned tables (fishing_logs) exist.
func EnsureUserSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS fishing_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			date TEXT NOT NULL,
			location_id TEXT NOT NULL,
			location_name TEXT NOT NULL DEFAULT '',
			caught_fish INTEGER NOT NULL DEFAULT 0,
			fish_count INTEGER NOT NULL DEFAULT 0,
			fish_types TEXT NOT NULL DEFAULT '',
			moon_phase TEXT NOT NULL DEFAULT '',
			tide_level TEXT NOT NULL DEFAULT '',
			fishing_type TEXT NOT NULL DEFAULT '',
			hook_setup TEXT NOT NULL DEFAULT '',
			bait TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_fishing_logs_user ON fishing_logs(user_id, date);
		CREATE INDEX IF NOT EXISTS idx_fishing_logs_location ON fishing_logs(location_id);
	`)
	if err != nil {
		return fmt.Errorf("creating fishing_logs table: %w", err)
	}

	return nil
}
