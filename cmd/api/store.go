package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"

	"github.com/safari-hire/dashboard/internal/config"
	"github.com/safari-hire/dashboard/internal/repo"
	"github.com/safari-hire/dashboard/migrations"
)

// connectTimeout bounds backend connection and migration at startup.
const connectTimeout = 10 * time.Second

// newKV opens the backend selected by STORE_BACKEND and registers its
// cleanup with the lifecycle.
func newKV(lc fx.Lifecycle, cfg config.Config, log *slog.Logger) (repo.KV, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	sc := cfg.Store
	switch sc.Backend {
	case config.BackendMemory:
		log.Warn("using in-memory store; data is lost on restart")
		return repo.NewMemoryKV(), nil

	case config.BackendFile:
		return repo.NewFileKV(sc.Dir)

	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(sc.SQLitePath), 0o755); err != nil {
			return nil, errors.Wrap(err, "newKV: create sqlite directory")
		}
		db, err := repo.OpenSQLite(ctx, sc.SQLitePath)
		if err != nil {
			return nil, err
		}
		onStop(lc, func() error { return db.Close() })
		return repo.NewSQLiteKV(ctx, db)

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, sc.DatabaseURL)
		if err != nil {
			return nil, errors.Wrap(err, "newKV: create database pool")
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, errors.Wrap(err, "newKV: connect to database")
		}
		onStop(lc, func() error { pool.Close(); return nil })

		if err := migrate(ctx, pool, log); err != nil {
			return nil, err
		}
		return repo.NewPostgresKV(pool), nil

	case config.BackendRedis:
		client, err := repo.NewRedisClient(ctx, repo.RedisOptions{
			Addr:     sc.RedisAddr,
			Password: sc.RedisPassword,
			DB:       sc.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		onStop(lc, client.Close)
		return repo.NewRedisKV(client, sc.KeyPrefix), nil

	default:
		return nil, errors.Newf("newKV: unknown backend %q", sc.Backend)
	}
}

// migrate applies the embedded goose migrations. goose needs database/sql,
// so the pool is wrapped for the duration of the run.
func migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer func(db *sql.DB) { _ = db.Close() }(db)

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return errors.Wrap(err, "migrate: create goose provider")
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Wrap(err, "migrate: up")
	}
	for _, r := range results {
		log.Info("migration applied", "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}

func onStop(lc fx.Lifecycle, fn func() error) {
	lc.Append(fx.Hook{OnStop: func(context.Context) error { return fn() }})
}
