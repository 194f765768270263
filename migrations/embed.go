// Package migrations embeds the SQL migrations for the Postgres key-value
// backend so they can be applied through the goose programmatic API at
// startup and in tests.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
