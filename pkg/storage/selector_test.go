package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/klokku/schedulekeeper/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := t.TempDir()
	cfg := config.Storage{
		Fs:     config.Fs{Root: filepath.Join(dir, "schedules")},
		Redis:  config.Redis{URL: "redis://" + mr.Addr() + "/0"},
		Sqlite: config.Sqlite{Path: filepath.Join(dir, "schedules.db")},
	}

	testCases := []struct {
		backend string
		want    any
	}{
		{backend: BackendFs, want: &FilesystemBackend{}},
		{backend: BackendRedis, want: &RedisBackend{}},
		{backend: BackendSqlite, want: &SQLiteBackend{}},
		{backend: "", want: &FilesystemBackend{}},
		{backend: "mongodb", want: &FilesystemBackend{}},
	}
	for _, tc := range testCases {
		t.Run(tc.backend, func(t *testing.T) {
			c := cfg
			c.Backend = tc.backend

			b, closer, err := Select(context.Background(), c)
			require.NoError(t, err)
			t.Cleanup(func() { closer.Close() })

			assert.IsType(t, tc.want, b)

			want := createTestSchedule(2, "Stream")
			require.NoError(t, b.Set(context.Background(), "guild-1", want))
			got, ok := b.Get(context.Background(), "guild-1")
			require.True(t, ok)
			assert.Equal(t, want, got)
		})
	}
}

func TestSelect_InvalidRedisURL(t *testing.T) {
	_, _, err := Select(context.Background(), config.Storage{
		Backend: BackendRedis,
		Redis:   config.Redis{URL: "::"},
	})

	assert.Error(t, err)
}
