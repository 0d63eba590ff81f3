package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/schedulekeeper/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

// PostgresBackend keeps one row per group in the schedule table.
type PostgresBackend struct {
	db *pgxpool.Pool
}

func NewPostgresBackend(db *pgxpool.Pool) *PostgresBackend {
	return &PostgresBackend{db: db}
}

func (b *PostgresBackend) Load(ctx context.Context, groupId string) (schedule.Schedule, error) {
	query := `SELECT entries FROM schedule WHERE group_id = $1`

	var entries string
	err := b.db.QueryRow(ctx, query, groupId).Scan(&entries)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not query schedule: %w", err)
	}
	return decode([]byte(entries))
}

func (b *PostgresBackend) Get(ctx context.Context, groupId string) (schedule.Schedule, bool) {
	return get(ctx, b, groupId)
}

func (b *PostgresBackend) Set(ctx context.Context, groupId string, s schedule.Schedule) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	query := `INSERT INTO schedule (group_id, entries, updated_at) VALUES ($1, $2, $3)
			  ON CONFLICT (group_id) DO UPDATE SET entries = excluded.entries, updated_at = excluded.updated_at`

	_, err = b.db.Exec(ctx, query, groupId, string(data), time.Now().UnixMilli())
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (b *PostgresBackend) Close() error {
	b.db.Close()
	return nil
}
