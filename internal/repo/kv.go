// Package repo is the persistence boundary of the dashboard. It holds the
// key-value backends the collections are mirrored to and the Adapter that
// writes versioned records on top of them.
// No business logic lives here, only storage and (de)serialization.
package repo

import (
	"context"
	"regexp"

	"github.com/cockroachdb/errors"

	"github.com/safari-hire/dashboard/internal/domain"
)

// KV is a string-keyed byte store. Every backend overwrites a value
// wholesale on Put; there are no partial writes.
type KV interface {
	// Get returns the value stored under key, or domain.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// validateKey rejects keys that could escape a directory or collide with
// backend-specific syntax.
func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return errors.Wrapf(domain.ErrValidation, "invalid key %q", key)
	}
	return nil
}
