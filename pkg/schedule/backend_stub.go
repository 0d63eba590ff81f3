package schedule

import (
	"context"
	"sync"
)

// BackendStub is an in-memory Backend for tests.
type BackendStub struct {
	mu        sync.Mutex
	schedules map[string]Schedule
	setErr    error
	setCalls  int
}

func NewBackendStub() *BackendStub {
	return &BackendStub{schedules: make(map[string]Schedule)}
}

func (b *BackendStub) Get(ctx context.Context, groupId string) (Schedule, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.schedules[groupId]
	if !ok {
		return nil, false
	}
	return append(Schedule(nil), s...), true
}

func (b *BackendStub) Set(ctx context.Context, groupId string, schedule Schedule) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.setCalls++
	if b.setErr != nil {
		return b.setErr
	}
	b.schedules[groupId] = append(Schedule(nil), schedule...)
	return nil
}

// FailWrites makes every following Set return err.
func (b *BackendStub) FailWrites(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setErr = err
}

func (b *BackendStub) SetCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.setCalls
}
