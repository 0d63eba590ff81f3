package storage

import (
	"context"
	"testing"

	"github.com/klokku/schedulekeeper/internal/test_utils"
	"github.com/klokku/schedulekeeper/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteBackend(t *testing.T) {
	runBackendSuite(t, func(t *testing.T) schedule.Backend {
		return NewSQLiteBackend(test_utils.SetupTestDB(t))
	})
}

func TestSQLiteBackend_CorruptRow(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	_, err := db.Exec(`INSERT INTO schedule (group_id, entries, updated_at) VALUES (?, ?, ?)`, "1234", "[{", 0)
	require.NoError(t, err)
	b := NewSQLiteBackend(db)

	_, err = b.Load(context.Background(), "1234")
	assert.ErrorIs(t, err, ErrCorrupt)

	_, ok := b.Get(context.Background(), "1234")
	assert.False(t, ok)
}

func TestSQLiteBackend_LoadNotFound(t *testing.T) {
	b := NewSQLiteBackend(test_utils.SetupTestDB(t))

	_, err := b.Load(context.Background(), "1234")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteBackend_ClosedDatabase(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	b := NewSQLiteBackend(db)
	require.NoError(t, b.Close())

	_, ok := b.Get(context.Background(), "1234")
	assert.False(t, ok)

	err := b.Set(context.Background(), "1234", createTestSchedule(1, "Stream"))
	assert.Error(t, err)
}
