package repo_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safari-hire/dashboard/internal/domain"
	"github.com/safari-hire/dashboard/internal/repo"
)

// runKVContract exercises the behavior every backend must share.
// Each backend test calls it with a fresh, empty store.
func runKVContract(t *testing.T, kv repo.KV) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing key", func(t *testing.T) {
		_, err := kv.Get(ctx, "never_written")
		assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
	})

	t.Run("put then get", func(t *testing.T) {
		require.NoError(t, kv.Put(ctx, "customers", []byte(`[{"id":"1"}]`)))

		got, err := kv.Get(ctx, "customers")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1"}]`, string(got))
	})

	t.Run("put overwrites wholesale", func(t *testing.T) {
		require.NoError(t, kv.Put(ctx, "bookings", []byte(`[{"id":"1"},{"id":"2"}]`)))
		require.NoError(t, kv.Put(ctx, "bookings", []byte(`[]`)))

		got, err := kv.Get(ctx, "bookings")
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(got))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, kv.Put(ctx, "isAuthenticated", []byte("true")))
		require.NoError(t, kv.Delete(ctx, "isAuthenticated"))

		_, err := kv.Get(ctx, "isAuthenticated")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("delete missing key is not an error", func(t *testing.T) {
		assert.NoError(t, kv.Delete(ctx, "currentUser"))
	})

	t.Run("put rejects unsafe key", func(t *testing.T) {
		err := kv.Put(ctx, "../escape", []byte("x"))
		assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)
	})
}

func TestMemoryKV(t *testing.T) {
	runKVContract(t, repo.NewMemoryKV())
}

func TestMemoryKV_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	kv := repo.NewMemoryKV()
	value := []byte("abc")
	require.NoError(t, kv.Put(ctx, "k", value))

	value[0] = 'x'
	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}
