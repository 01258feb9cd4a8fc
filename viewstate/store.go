// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: viewstate/store.go
// Summary: SQLite-backed persistence for per-file scroll positions, so a
// reopened file lands where the reader left it.

package viewstate

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Config holds configuration for the view state store.
type Config struct {
	// DBPath is the path to the SQLite database file.
	DBPath string
}

// DefaultConfig returns sensible defaults rooted at the user config dir.
func DefaultConfig() Config {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return Config{
		DBPath: filepath.Join(base, "texelview", "viewstate.db"),
	}
}

// State is the remembered view of one file: scroll position plus whether
// the reader pinned the scrollbars on.
type State struct {
	OffsetX    int
	OffsetY    int
	PinnedBars bool
	UpdatedAt  time.Time
}

// Current schema version - increment this when schema changes require a reset
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS view_state (
    path TEXT PRIMARY KEY,
    offset_x INTEGER NOT NULL DEFAULT 0,
    offset_y INTEGER NOT NULL DEFAULT 0,
    pinned_bars INTEGER NOT NULL DEFAULT 0,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_view_state_updated ON view_state(updated_at);
`

// Store persists per-file view state in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the store at cfg.DBPath.
func Open(cfg Config) (*Store, error) {
	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := cfg.DBPath +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=temp_store(MEMORY)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// migrate drops remembered state when the schema version changes. The data
// is a cache of reading positions, so a reset is acceptable.
func migrate(db *sql.DB) error {
	var current int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&current)
	if err == sql.ErrNoRows {
		current = 0
	} else if err != nil {
		current = 0
	}
	if current == schemaVersion {
		return nil
	}
	if current != 0 {
		if _, err := db.Exec("DELETE FROM view_state"); err != nil {
			return fmt.Errorf("failed to reset view state: %w", err)
		}
	}
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear schema version: %w", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}
	return nil
}

// Save upserts the remembered view for a file path. st.UpdatedAt is
// ignored; the write records the current time.
func (s *Store) Save(path string, st State) error {
	pinned := 0
	if st.PinnedBars {
		pinned = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO view_state (path, offset_x, offset_y, pinned_bars, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			offset_x = excluded.offset_x,
			offset_y = excluded.offset_y,
			pinned_bars = excluded.pinned_bars,
			updated_at = excluded.updated_at`,
		path, st.OffsetX, st.OffsetY, pinned, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to save view state for %s: %w", path, err)
	}
	return nil
}

// Load returns the remembered state for a file path. The second return is
// false when no state is stored.
func (s *Store) Load(path string) (State, bool, error) {
	var st State
	var pinned int
	var nanos int64
	err := s.db.QueryRow(
		"SELECT offset_x, offset_y, pinned_bars, updated_at FROM view_state WHERE path = ?",
		path).Scan(&st.OffsetX, &st.OffsetY, &pinned, &nanos)
	if err == sql.ErrNoRows {
		return State{}, false, nil
	}
	if err != nil {
		return State{}, false, fmt.Errorf("failed to load view state for %s: %w", path, err)
	}
	st.PinnedBars = pinned != 0
	st.UpdatedAt = time.Unix(0, nanos)
	return st, true, nil
}

// Forget removes the remembered state for a file path.
func (s *Store) Forget(path string) error {
	if _, err := s.db.Exec("DELETE FROM view_state WHERE path = ?", path); err != nil {
		return fmt.Errorf("failed to forget view state for %s: %w", path, err)
	}
	return nil
}

// Prune deletes entries not updated within keep and returns how many were
// removed.
func (s *Store) Prune(keep time.Duration) (int, error) {
	cutoff := time.Now().Add(-keep).UnixNano()
	res, err := s.db.Exec("DELETE FROM view_state WHERE updated_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune view state: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned view state: %w", err)
	}
	return int(n), nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
