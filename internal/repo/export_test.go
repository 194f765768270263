package repo

import "log/slog"

// NewAdapterWithMigrations lets tests replace the migration chain.
func NewAdapterWithMigrations(kv KV, log *slog.Logger, m map[int]Migration) *Adapter {
	return &Adapter{kv: kv, log: log, migrations: m}
}
