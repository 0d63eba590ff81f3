package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/klokku/schedulekeeper/internal/config"
	"github.com/klokku/schedulekeeper/internal/database"
	"github.com/klokku/schedulekeeper/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

const (
	BackendFs       = "fs"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSqlite   = "sqlite"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Select builds the backend named by cfg.Backend. Unknown names fall back to the
// filesystem backend. The returned closer releases whatever connection the backend holds.
func Select(ctx context.Context, cfg config.Storage) (schedule.Backend, io.Closer, error) {
	switch cfg.Backend {
	case BackendFs:
		return NewFilesystemBackend(cfg.Fs.Root), nopCloser{}, nil

	case BackendRedis:
		b, err := NewRedisBackend(cfg.Redis.URL)
		if err != nil {
			return nil, nil, err
		}
		return b, b, nil

	case BackendPostgres:
		if err := database.Migrate(cfg.Database); err != nil {
			return nil, nil, err
		}
		pool, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		b := NewPostgresBackend(pool)
		return b, b, nil

	case BackendSqlite:
		db, err := database.OpenSQLite(cfg.Sqlite.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := database.MigrateSQLite(db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
		}
		b := NewSQLiteBackend(db)
		return b, b, nil

	default:
		log.Warnf("Unknown storage backend %q, falling back to %q", cfg.Backend, BackendFs)
		return NewFilesystemBackend(cfg.Fs.Root), nopCloser{}, nil
	}
}
