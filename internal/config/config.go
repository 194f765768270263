// Package config loads and validates application configuration from
// environment variables, optionally seeded from a .env file.
package config

import (
	"io/fs"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

var backends = []string{BackendMemory, BackendFile, BackendSQLite, BackendPostgres, BackendRedis}

// Config holds all configuration values for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `envconfig:"PORT" default:"8080"`

	// LogLevel is the minimum log level: debug, info, warn, or error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// The default is the Vite dev server.
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`

	// LoginDelay is the pause before every login check.
	LoginDelay time.Duration `envconfig:"LOGIN_DELAY" default:"800ms"`

	// MaxBodyBytes caps request body size.
	MaxBodyBytes int64 `envconfig:"MAX_BODY_BYTES" default:"1048576"`

	Store StoreConfig
}

// StoreConfig selects and configures the key-value backend the collections
// and the session are persisted to.
type StoreConfig struct {
	Backend string `envconfig:"STORE_BACKEND" default:"file"`

	// Dir is the directory used by the file backend.
	Dir string `envconfig:"STORE_DIR" default:"./data"`

	// SQLitePath is the database file used by the sqlite backend.
	SQLitePath string `envconfig:"SQLITE_PATH" default:"./data/dashboard.db"`

	// DatabaseURL is the Postgres connection string. Required for the postgres backend.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// KeyPrefix namespaces keys in the redis backend.
	KeyPrefix string `envconfig:"STORE_KEY_PREFIX" default:"dashboard"`
}

// Load reads a .env file from the working directory if one exists, then
// reads configuration from the environment. Variables already set in the
// environment win over the .env file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, errors.Wrap(err, "config.Load: read .env")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "config.Load")
	}
	cfg.CORSOrigins = cleanList(cfg.CORSOrigins)

	if err := cfg.validate(); err != nil {
		return Config{}, errors.Wrap(err, "config.Load")
	}
	return cfg, nil
}

// SlogLevel returns LogLevel as a slog.Level.
func (c Config) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func (c Config) validate() error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return errors.Newf("LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel)
	}
	if !slices.Contains(backends, c.Store.Backend) {
		return errors.Newf("STORE_BACKEND %q is not one of %s", c.Store.Backend, strings.Join(backends, ", "))
	}
	if c.Store.Backend == BackendPostgres && c.Store.DatabaseURL == "" {
		return errors.New("required environment variables not set: DATABASE_URL")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.Newf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}

// cleanList trims each entry and drops empty ones.
func cleanList(in []string) []string {
	var out []string
	for _, part := range in {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
