package persistence_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpbuilder/mcp-builder/internal/persistence"
)

func storages(t *testing.T) map[string]persistence.Storage {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return map[string]persistence.Storage{
		"memory": persistence.NewMemoryStorage(0),
		"file":   persistence.NewFileStorage(filepath.Join(t.TempDir(), "nested", "storage.json")),
		"redis":  persistence.NewRedisStorage(rdb, "test:"),
	}
}

func TestStorage_Contract(t *testing.T) {
	for name, s := range storages(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := s.GetItem(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.SetItem(ctx, "k", "v1"))
			require.NoError(t, s.SetItem(ctx, "k", "v2"))

			v, ok, err := s.GetItem(ctx, "k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "v2", v)

			require.NoError(t, s.RemoveItem(ctx, "k"))
			require.NoError(t, s.RemoveItem(ctx, "k"))

			_, ok, err = s.GetItem(ctx, "k")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestMemoryStorage_Quota(t *testing.T) {
	ctx := context.Background()
	s := persistence.NewMemoryStorage(10)

	require.NoError(t, s.SetItem(ctx, "a", "12345"))
	err := s.SetItem(ctx, "b", "123456")
	assert.ErrorIs(t, err, persistence.ErrQuotaExceeded)

	// replacing a value only counts the difference
	require.NoError(t, s.SetItem(ctx, "a", "123456789"))

	require.NoError(t, s.RemoveItem(ctx, "a"))
	require.NoError(t, s.SetItem(ctx, "b", "123456"))
}

func TestFileStorage_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")

	require.NoError(t, persistence.NewFileStorage(path).SetItem(ctx, "k", "v"))

	v, ok, err := persistence.NewFileStorage(path).GetItem(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestFileStorage_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, _, err := persistence.NewFileStorage(path).GetItem(context.Background(), "k")
	assert.Error(t, err)
}
