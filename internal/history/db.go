// Package history persists refresh snapshots in a local SQLite database.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite snapshot database.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the snapshot database at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Enable WAL mode for better concurrent access
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	h := &DB{db: sqlDB, path: path}
	if err := h.migrate(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return h, nil
}

// Close closes the database.
func (h *DB) Close() error {
	return h.db.Close()
}

// Path returns the path to the database file.
func (h *DB) Path() string {
	return h.path
}

func (h *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		serial TEXT NOT NULL,
		state TEXT NOT NULL,
		battery_level INTEGER NOT NULL DEFAULT -1,
		battery_status TEXT NOT NULL DEFAULT '',
		voltage_mv INTEGER NOT NULL DEFAULT -1,
		temperature_tenths INTEGER NOT NULL DEFAULT -1,
		fingerprint TEXT NOT NULL DEFAULT '',
		root_available INTEGER NOT NULL DEFAULT 0,
		taken_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_serial ON snapshots(serial, taken_at);
	`
	if _, err := h.db.Exec(schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
