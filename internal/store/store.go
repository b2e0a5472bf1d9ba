// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/salat/internal/kv"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for settings, alarms, cached days and tallies.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// The daemon and the dashboard may share the file.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`PRAGMA busy_timeout = 5000;`,
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS alarms (
			code INTEGER PRIMARY KEY,
			kind TEXT NOT NULL,
			fire_at_ms INTEGER NOT NULL,
			exact INTEGER NOT NULL,
			token TEXT NOT NULL,
			payload TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS alarm_fires (
			id INTEGER PRIMARY KEY,
			code INTEGER NOT NULL,
			kind TEXT NOT NULL,
			token TEXT NOT NULL,
			fired_at_ms INTEGER NOT NULL,
			late_ms INTEGER NOT NULL,
			err TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS days (
			date TEXT NOT NULL,
			city TEXT NOT NULL,
			country TEXT NOT NULL,
			payload TEXT NOT NULL,
			fetched_at_ms INTEGER NOT NULL,
			PRIMARY KEY (date, city, country)
		);`,
		`CREATE TABLE IF NOT EXISTS tally_days (
			day TEXT PRIMARY KEY,
			count INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_alarms_fire_at ON alarms(fire_at_ms);`,
		`CREATE INDEX IF NOT EXISTS idx_alarm_fires_fired_at ON alarm_fires(fired_at_ms);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Get implements kv.Store.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", kv.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set implements kv.Store.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli())
	return err
}

// Delete implements kv.Store.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

var _ kv.Store = (*Store)(nil)
