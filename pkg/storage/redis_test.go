package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/klokku/schedulekeeper/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisBackend(t *testing.T) (*RedisBackend, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	b, err := NewRedisBackend("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	t.Cleanup(func() {
		b.Close()
	})
	return b, mr
}

func TestRedisBackend(t *testing.T) {
	runBackendSuite(t, func(t *testing.T) schedule.Backend {
		b, _ := setupRedisBackend(t)
		return b
	})
}

func TestRedisBackend_KeyScheme(t *testing.T) {
	b, mr := setupRedisBackend(t)

	require.NoError(t, b.Set(context.Background(), "1234", createTestSchedule(1, "Stream")))

	assert.True(t, mr.Exists("schedule:1234"))
	value, err := mr.Get("schedule:1234")
	require.NoError(t, err)
	assert.Contains(t, value, `"label":"Stream 0"`)
}

func TestRedisBackend_CorruptValue(t *testing.T) {
	b, mr := setupRedisBackend(t)
	require.NoError(t, mr.Set("schedule:1234", "not json"))

	_, err := b.Load(context.Background(), "1234")
	assert.ErrorIs(t, err, ErrCorrupt)

	_, ok := b.Get(context.Background(), "1234")
	assert.False(t, ok)
}

func TestRedisBackend_LoadNotFound(t *testing.T) {
	b, _ := setupRedisBackend(t)

	_, err := b.Load(context.Background(), "1234")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisBackend_ConnectionErrors(t *testing.T) {
	b, mr := setupRedisBackend(t)
	require.NoError(t, b.Set(context.Background(), "1234", createTestSchedule(1, "Stream")))
	mr.Close()

	_, ok := b.Get(context.Background(), "1234")
	assert.False(t, ok)

	_, err := b.Load(context.Background(), "1234")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	err = b.Set(context.Background(), "1234", createTestSchedule(2, "Stream"))
	assert.Error(t, err)
}

func TestNewRedisBackend_InvalidURL(t *testing.T) {
	_, err := NewRedisBackend("http://not-redis")

	assert.Error(t, err)
}
