package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/safari-hire/dashboard/internal/repo"
	"github.com/safari-hire/dashboard/testutil"
)

// newPostgresKV opens a transaction against the test database and returns a
// KV backed by it. The transaction is rolled back when the test finishes.
func newPostgresKV(t *testing.T) repo.KV {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return repo.NewPostgresKV(tx)
}

func TestPostgresKV(t *testing.T) {
	runKVContract(t, newPostgresKV(t))
}
