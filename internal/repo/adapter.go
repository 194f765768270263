package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"reflect"

	"github.com/cockroachdb/errors"

	"github.com/safari-hire/dashboard/internal/domain"
)

// CurrentVersion is the schema version written by Save.
const CurrentVersion = 1

// Migration upgrades the data of one record from version N to N+1.
// It receives the key so a step can apply to some collections only.
type Migration func(key string, data json.RawMessage) (json.RawMessage, error)

// migrations maps a source version to the step that lifts it by one.
// Version 0 is the bare, unversioned JSON written before records carried an
// envelope. Its field names and JSON types match version 1 (numberOfDays and
// the amounts are plain numbers in both), so the step passes data through.
var migrations = map[int]Migration{
	0: func(_ string, data json.RawMessage) (json.RawMessage, error) { return data, nil },
}

// envelope is the on-disk shape of every versioned record.
type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// flagTrue is the literal stored for a set boolean flag.
var flagTrue = []byte("true")

// Adapter serializes values to a KV as versioned records and reads them back,
// migrating older records forward. Load reports absence rather than failing:
// a missing, malformed, or too-new record is simply not there.
type Adapter struct {
	kv         KV
	log        *slog.Logger
	migrations map[int]Migration
}

// NewAdapter wraps kv. log receives a warning for every unreadable record.
func NewAdapter(kv KV, log *slog.Logger) *Adapter {
	return &Adapter{kv: kv, log: log, migrations: migrations}
}

// Save writes v under key wrapped in a CurrentVersion envelope.
func (a *Adapter) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "repo.Adapter.Save: encode %q", key)
	}
	b, err := json.Marshal(envelope{Version: CurrentVersion, Data: data})
	if err != nil {
		return errors.Wrapf(err, "repo.Adapter.Save: encode envelope %q", key)
	}
	if err := a.kv.Put(ctx, key, b); err != nil {
		return errors.Wrap(err, "repo.Adapter.Save")
	}
	return nil
}

// Load decodes the record under key into dst and reports whether it did.
// dst is left untouched when Load returns false.
func (a *Adapter) Load(ctx context.Context, key string, dst any) bool {
	raw, err := a.kv.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return false
	}
	if err != nil {
		a.log.WarnContext(ctx, "stored value unavailable", "key", key, "error", err)
		return false
	}

	data, err := a.decode(key, raw)
	if err == nil {
		err = decodeInto(data, dst)
	}
	if err != nil {
		a.log.WarnContext(ctx, "stored value unreadable; treating as absent", "key", key, "error", err)
		return false
	}
	return true
}

// SaveFlag stores the literal true under key.
func (a *Adapter) SaveFlag(ctx context.Context, key string) error {
	if err := a.kv.Put(ctx, key, flagTrue); err != nil {
		return errors.Wrap(err, "repo.Adapter.SaveFlag")
	}
	return nil
}

// LoadFlag reports whether key holds the literal true.
// Absence and any other value read as false.
func (a *Adapter) LoadFlag(ctx context.Context, key string) bool {
	raw, err := a.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			a.log.WarnContext(ctx, "stored flag unavailable", "key", key, "error", err)
		}
		return false
	}
	return bytes.Equal(bytes.TrimSpace(raw), flagTrue)
}

// Remove deletes key.
func (a *Adapter) Remove(ctx context.Context, key string) error {
	if err := a.kv.Delete(ctx, key); err != nil {
		return errors.Wrap(err, "repo.Adapter.Remove")
	}
	return nil
}

// decode unwraps raw into current-version data, running migrations for
// older records.
func (a *Adapter) decode(key string, raw []byte) (json.RawMessage, error) {
	if !json.Valid(raw) {
		return nil, errors.Wrap(domain.ErrUnreadable, "malformed JSON")
	}

	version, data := 0, json.RawMessage(raw)
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Version > 0 && env.Data != nil {
		version, data = env.Version, env.Data
	}

	if version > CurrentVersion {
		return nil, errors.Wrapf(domain.ErrUnreadable, "version %d is newer than %d", version, CurrentVersion)
	}

	for v := version; v < CurrentVersion; v++ {
		step, ok := a.migrations[v]
		if !ok {
			return nil, errors.Wrapf(domain.ErrUnreadable, "no migration from version %d", v)
		}
		next, err := step(key, data)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "migrate version %d", v), domain.ErrUnreadable)
		}
		data = next
	}
	return data, nil
}

// decodeInto unmarshals into a fresh value of dst's type so a failed
// decode leaves dst unchanged.
func decodeInto(data json.RawMessage, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.Newf("destination must be a non-nil pointer, got %T", dst)
	}
	fresh := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(data, fresh.Interface()); err != nil {
		return errors.Mark(err, domain.ErrUnreadable)
	}
	rv.Elem().Set(fresh.Elem())
	return nil
}
