package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishesInSubscriptionOrder(t *testing.T) {
	bus := NewEventBus()
	var calls []string
	bus.Subscribe(ScheduleSavedType, func(e Event) error {
		calls = append(calls, "first")
		return nil
	})
	bus.Subscribe(ScheduleSavedType, func(e Event) error {
		calls = append(calls, "second")
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), ScheduleSavedType, ScheduleSaved{GroupId: "42"}))

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()
	count := 0
	unsubscribe := bus.Subscribe(ScheduleSavedType, func(e Event) error {
		count++
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), ScheduleSavedType, nil)))
	unsubscribe()
	require.NoError(t, bus.Publish(NewEvent(context.Background(), ScheduleSavedType, nil)))

	assert.Equal(t, 1, count)
}

func TestSubscribeTyped_SkipsOtherPayloads(t *testing.T) {
	bus := NewEventBus()
	var received []ScheduleSaved
	SubscribeTyped(bus, ScheduleSavedType, func(e EventT[ScheduleSaved]) error {
		received = append(received, e.Data)
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), ScheduleSavedType, "not a payload")))
	require.NoError(t, bus.Publish(NewEvent(context.Background(), ScheduleSavedType, ScheduleSaved{GroupId: "7", EntryCount: 3})))

	require.Len(t, received, 1)
	assert.Equal(t, "7", received[0].GroupId)
	assert.Equal(t, 3, received[0].EntryCount)
}

func TestEventBus_CollectsFailuresAndRecoversPanics(t *testing.T) {
	bus := NewEventBus()
	reached := false
	bus.Subscribe(ScheduleSavedType, func(e Event) error {
		return errors.New("boom")
	})
	bus.Subscribe(ScheduleSavedType, func(e Event) error {
		panic("worse")
	})
	bus.Subscribe(ScheduleSavedType, func(e Event) error {
		reached = true
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), ScheduleSavedType, nil))

	assert.ErrorContains(t, err, "2 subscriber(s) failed")
	assert.True(t, reached)
}

func TestEventBus_CancelledContext(t *testing.T) {
	bus := NewEventBus()
	called := false
	bus.Subscribe(ScheduleSavedType, func(e Event) error {
		called = true
		return nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bus.Publish(NewEvent(ctx, ScheduleSavedType, nil))

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
