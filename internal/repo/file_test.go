package repo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safari-hire/dashboard/internal/repo"
)

func TestFileKV(t *testing.T) {
	kv, err := repo.NewFileKV(t.TempDir())
	require.NoError(t, err)
	runKVContract(t, kv)
}

func TestFileKV_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "data")

	first, err := repo.NewFileKV(dir)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, "customers", []byte(`[{"id":"1"}]`)))

	second, err := repo.NewFileKV(dir)
	require.NoError(t, err)
	got, err := second.Get(ctx, "customers")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(got))
}

func TestFileKV_LeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	kv, err := repo.NewFileKV(dir)
	require.NoError(t, err)

	for range 3 {
		require.NoError(t, kv.Put(ctx, "bookings", []byte(`[]`)))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bookings.json", entries[0].Name())
}
