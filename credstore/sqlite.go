package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteKV stores slots in a table inside the application's on-device SQLite
// database, for embeddings that already ship one.
type SQLiteKV struct {
	db    *sql.DB
	owned bool
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS session_slots (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// OpenSQLiteKV opens (creating if needed) the database at path and prepares
// the slot table. Close releases the handle.
func OpenSQLiteKV(path string) (*SQLiteKV, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// The store is accessed by one manager; a single connection avoids
	// SQLITE_BUSY churn on mobile filesystems.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init slot table: %w", err)
	}
	return &SQLiteKV{db: db, owned: true}, nil
}

// NewSQLiteKV wraps an existing database handle; the slot table is created if
// missing. The caller keeps ownership of db.
func NewSQLiteKV(db *sql.DB) (*SQLiteKV, error) {
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("init slot table: %w", err)
	}
	return &SQLiteKV{db: db}, nil
}

// Close closes the handle when this store opened it.
func (s *SQLiteKV) Close() error {
	if s == nil || !s.owned {
		return nil
	}
	return s.db.Close()
}

// Get implements [KV].
func (s *SQLiteKV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM session_slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set implements [KV].
func (s *SQLiteKV) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_slots (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// Delete implements [KV].
func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM session_slots WHERE key = ?`, key)
	return err
}
