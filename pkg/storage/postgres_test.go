package storage

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/klokku/schedulekeeper/internal/config"
	"github.com/klokku/schedulekeeper/internal/database"
	"github.com/klokku/schedulekeeper/internal/test_utils"
	"github.com/klokku/schedulekeeper/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

var (
	postgresOnce sync.Once
	postgresCfg  config.Database
	postgresErr  error
)

// postgresConfig starts one container for the whole package run, on first use.
func postgresConfig(t *testing.T) config.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres tests in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	postgresOnce.Do(func() {
		var terminate func()
		postgresCfg, terminate, postgresErr = test_utils.StartPostgres(context.Background())
		if postgresErr == nil {
			postgresCleanup = terminate
		}
	})
	if postgresErr != nil {
		t.Skipf("postgres not available: %v", postgresErr)
	}
	return postgresCfg
}

var postgresCleanup = func() {}

func TestMain(m *testing.M) {
	code := m.Run()
	postgresCleanup()
	os.Exit(code)
}

func setupPostgresBackend(t *testing.T) *PostgresBackend {
	t.Helper()
	cfg := postgresConfig(t)
	pool, err := database.Open(context.Background(), cfg)
	require.NoError(t, err)
	_, err = pool.Exec(context.Background(), `TRUNCATE schedule`)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return NewPostgresBackend(pool)
}

func TestPostgresBackend(t *testing.T) {
	runBackendSuite(t, func(t *testing.T) schedule.Backend {
		return setupPostgresBackend(t)
	})
}

func TestPostgresBackend_CorruptRow(t *testing.T) {
	b := setupPostgresBackend(t)
	_, err := b.db.Exec(context.Background(), `INSERT INTO schedule (group_id, entries, updated_at) VALUES ($1, $2, $3)`, "1234", "[{", 0)
	require.NoError(t, err)

	_, err = b.Load(context.Background(), "1234")
	assert.ErrorIs(t, err, ErrCorrupt)

	_, ok := b.Get(context.Background(), "1234")
	assert.False(t, ok)
}

func TestPostgresBackend_LoadNotFound(t *testing.T) {
	b := setupPostgresBackend(t)

	_, err := b.Load(context.Background(), "1234")

	assert.ErrorIs(t, err, ErrNotFound)
}
