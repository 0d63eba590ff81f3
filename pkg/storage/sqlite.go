package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/klokku/schedulekeeper/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

type SQLiteBackend struct {
	db *sql.DB
}

func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{db: db}
}

func (b *SQLiteBackend) Load(ctx context.Context, groupId string) (schedule.Schedule, error) {
	query := `SELECT entries FROM schedule WHERE group_id = ?`

	var entries string
	err := b.db.QueryRowContext(ctx, query, groupId).Scan(&entries)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not query schedule: %w", err)
	}
	return decode([]byte(entries))
}

func (b *SQLiteBackend) Get(ctx context.Context, groupId string) (schedule.Schedule, bool) {
	return get(ctx, b, groupId)
}

func (b *SQLiteBackend) Set(ctx context.Context, groupId string, s schedule.Schedule) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	query := `INSERT INTO schedule (group_id, entries, updated_at) VALUES (?, ?, ?)
			  ON CONFLICT (group_id) DO UPDATE SET entries = excluded.entries, updated_at = excluded.updated_at`

	stmt, err := b.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, groupId, string(data), time.Now().UnixMilli())
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
