package database

import (
	"path/filepath"
	"testing"
)

func TestDBPath(t *testing.T) {
	expected := filepath.Join("data", "angler-terminal.db")
	if got := DBPath(); got != expected {
		t.Errorf("DBPath() = %v, want %v", got, expected)
	}
}

func TestInMemory(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{":memory:", true},
		{"file::memory:?cache=shared", true},
		{filepath.Join("data", "angler-terminal.db"), false},
	}

	for _, tt := range tests {
		if got := InMemory(tt.path); got != tt.want {
			t.Errorf("InMemory(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestOpen_CreatesDataDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "angler.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("reading journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}
