package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/klokku/schedulekeeper/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestSchedule creates a sorted schedule of n daily entries
func createTestSchedule(n int, label string) schedule.Schedule {
	start := time.Date(2026, 12, 24, 10, 0, 0, 0, time.UTC)
	s := make(schedule.Schedule, 0, n)
	for i := 0; i < n; i++ {
		date := start.Add(time.Duration(i) * 24 * time.Hour)
		s = append(s, schedule.Entry{
			DateText: date.Format("2/1 3PM"),
			Label:    fmt.Sprintf("%s %d", label, i),
			Date:     &date,
		})
	}
	return s
}

// runBackendSuite checks the behaviour every Backend must share.
func runBackendSuite(t *testing.T, newBackend func(t *testing.T) schedule.Backend) {
	t.Run("Round trip keeps entries and order", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()
		want := createTestSchedule(3, "Stream")

		require.NoError(t, b.Set(ctx, "guild-1", want))

		got, ok := b.Get(ctx, "guild-1")
		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("Absent when never stored", func(t *testing.T) {
		b := newBackend(t)

		got, ok := b.Get(context.Background(), "guild-unknown")

		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("Set replaces the previous schedule", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()
		require.NoError(t, b.Set(ctx, "guild-1", createTestSchedule(3, "Old")))

		want := createTestSchedule(1, "New")
		require.NoError(t, b.Set(ctx, "guild-1", want))

		got, ok := b.Get(ctx, "guild-1")
		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("Groups are independent", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()
		first := createTestSchedule(2, "First")
		second := createTestSchedule(4, "Second")

		require.NoError(t, b.Set(ctx, "guild-1", first))
		require.NoError(t, b.Set(ctx, "guild-2", second))

		got1, ok := b.Get(ctx, "guild-1")
		require.True(t, ok)
		got2, ok := b.Get(ctx, "guild-2")
		require.True(t, ok)
		assert.Equal(t, first, got1)
		assert.Equal(t, second, got2)
	})

	t.Run("Empty schedule round trips as empty", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()

		require.NoError(t, b.Set(ctx, "guild-1", schedule.Schedule{}))

		got, ok := b.Get(ctx, "guild-1")
		require.True(t, ok)
		assert.Empty(t, got)
	})

	t.Run("Concurrent writes leave one complete schedule", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()
		candidates := []schedule.Schedule{
			createTestSchedule(1, "A"),
			createTestSchedule(2, "B"),
			createTestSchedule(3, "C"),
		}

		var wg sync.WaitGroup
		for _, s := range candidates {
			wg.Add(1)
			go func(s schedule.Schedule) {
				defer wg.Done()
				assert.NoError(t, b.Set(ctx, "guild-1", s))
			}(s)
		}
		wg.Wait()

		got, ok := b.Get(ctx, "guild-1")
		require.True(t, ok)
		assert.Contains(t, candidates, got)
	})
}
