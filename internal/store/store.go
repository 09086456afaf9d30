// Package store is the durable local cache: three collections (texts,
// calendar, meta) in an embedded SQLite database. The same database file also
// holds the user-data tables (completions, bookmarks, pins, notes) owned by
// the application's state layer; this package creates them but never writes
// to them — eviction only ever deletes cached remote content.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a collection has no entry under the given key.
// Callers treat it the same as an empty cache.
var ErrNotFound = errors.New("entry not found")

const schema = `
CREATE TABLE IF NOT EXISTS texts (
	ref TEXT PRIMARY KEY,
	units TEXT NOT NULL,
	chapter_breaks TEXT NOT NULL,
	has_primary INTEGER NOT NULL,
	has_secondary INTEGER NOT NULL,
	fetched_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS calendar (
	path TEXT NOT NULL,
	day TEXT NOT NULL,
	title TEXT NOT NULL,
	title_secondary TEXT NOT NULL DEFAULT '',
	refs TEXT NOT NULL,
	unit_count INTEGER NOT NULL,
	date_label TEXT NOT NULL DEFAULT '',
	date_label_secondary TEXT NOT NULL DEFAULT '',
	fetched_at INTEGER NOT NULL,
	PRIMARY KEY (path, day)
);
CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS completions (
	path TEXT NOT NULL,
	day TEXT NOT NULL,
	unit_index INTEGER NOT NULL,
	completed_at INTEGER NOT NULL,
	PRIMARY KEY (path, day, unit_index)
);
CREATE TABLE IF NOT EXISTS bookmarks (
	path TEXT NOT NULL,
	day TEXT NOT NULL,
	unit_index INTEGER NOT NULL,
	created_at INTEGER NOT NULL,
	PRIMARY KEY (path, day, unit_index)
);
CREATE TABLE IF NOT EXISTS pins (
	path TEXT NOT NULL,
	day TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	PRIMARY KEY (path, day)
);
CREATE TABLE IF NOT EXISTS notes (
	path TEXT NOT NULL,
	day TEXT NOT NULL,
	unit_index INTEGER NOT NULL,
	body TEXT NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (path, day, unit_index)
);
`

// Store wraps the embedded database. A nil *Store is a valid degraded cache:
// the caller-facing layers treat it as always empty.
type Store struct {
	db   *sqlx.DB
	path string
}

// Open creates or opens the cache database under dir. Failure here must not
// crash the app; callers fall back to network-only operation.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll > %w", err)
	}

	path := filepath.Join(dir, "cache.db")
	db, err := sqlx.Open("sqlite", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open > %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping > %w", err)
	}

	// WAL keeps reads cheap while the background sync writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for read-only consumers of the user-data
// tables.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Clear drops all cached remote content and scheduler metadata. User-data
// tables are untouched.
func (s *Store) Clear(ctx context.Context) error {
	for _, table := range []string{"texts", "calendar", "meta"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// Size returns the database file size in bytes.
func (s *Store) Size() (int64, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return 0, fmt.Errorf("os.Stat > %w", err)
	}
	return info.Size(), nil
}
