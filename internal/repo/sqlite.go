package repo

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	_ "modernc.org/sqlite" // registers the "sqlite" driver for database/sql

	"github.com/safari-hire/dashboard/internal/domain"
)

// OpenSQLite opens (creating if needed) the SQLite database file at path.
// SQLite allows one writer at a time, so the pool is limited to a single
// connection to avoid SQLITE_BUSY under concurrent requests.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "repo.OpenSQLite: open")
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "repo.OpenSQLite: ping")
	}
	return db, nil
}

// sqliteKV stores values in a kv_entries table inside an embedded SQLite file.
type sqliteKV struct {
	db *sql.DB
}

// NewSQLiteKV returns a KV over db, creating the kv_entries table if it does
// not exist yet.
func NewSQLiteKV(ctx context.Context, db *sql.DB) (KV, error) {
	const q = `
		CREATE TABLE IF NOT EXISTS kv_entries (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
	if _, err := db.ExecContext(ctx, q); err != nil {
		return nil, errors.Wrap(err, "repo.NewSQLiteKV: create table")
	}
	return &sqliteKV{db: db}, nil
}

func (s *sqliteKV) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM kv_entries WHERE key = ?`

	var value []byte
	err := s.db.QueryRowContext(ctx, q, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(domain.ErrNotFound, "repo.sqliteKV.Get: %q", key)
	}
	if err != nil {
		return nil, errors.Wrap(err, "repo.sqliteKV.Get")
	}
	return value, nil
}

func (s *sqliteKV) Put(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return errors.Wrap(err, "repo.sqliteKV.Put")
	}
	const q = `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

	if _, err := s.db.ExecContext(ctx, q, key, value); err != nil {
		return errors.Wrap(err, "repo.sqliteKV.Put")
	}
	return nil
}

func (s *sqliteKV) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM kv_entries WHERE key = ?`

	if _, err := s.db.ExecContext(ctx, q, key); err != nil {
		return errors.Wrap(err, "repo.sqliteKV.Delete")
	}
	return nil
}
