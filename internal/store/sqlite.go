package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteScope is the durable Scope, backed by a single-table SQLite
// database. Values written here survive closing and reopening the
// client.
type SQLiteScope struct {
	db *sql.DB
}

// Open opens (or creates) the durable store at the given path.
// If path is ":memory:", uses an in-memory database.
// Sets WAL mode and creates the schema if missing.
func Open(path string) (*SQLiteScope, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating kv table: %w", err)
	}

	return &SQLiteScope{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteScope) Close() error {
	return s.db.Close()
}

func (s *SQLiteScope) Get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		// Absent and unreadable look the same to callers; every read
		// falls back to the type's safe default.
		return "", false
	}
	return value, true
}

func (s *SQLiteScope) Set(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteScope) Remove(key string) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}
