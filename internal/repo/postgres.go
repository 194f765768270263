package repo

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/safari-hire/dashboard/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgKV stores values in the kv_entries table created by the goose migrations.
type pgKV struct {
	db db
}

// NewPostgresKV constructs a KV backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx.
func NewPostgresKV(db db) KV {
	return &pgKV{db: db}
}

func (r *pgKV) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM kv_entries WHERE key = @key`

	var value []byte
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.Wrapf(domain.ErrNotFound, "repo.pgKV.Get: %q", key)
	}
	if err != nil {
		return nil, errors.Wrap(err, "repo.pgKV.Get")
	}
	return value, nil
}

func (r *pgKV) Put(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return errors.Wrap(err, "repo.pgKV.Put")
	}
	const q = `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (@key, @value, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	args := pgx.NamedArgs{
		"key":   key,
		"value": value,
	}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return errors.Wrap(err, "repo.pgKV.Put")
	}
	return nil
}

func (r *pgKV) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM kv_entries WHERE key = @key`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key}); err != nil {
		return errors.Wrap(err, "repo.pgKV.Delete")
	}
	return nil
}
