package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/klokku/schedulekeeper/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNotFound = errors.New("schedule not found")
	ErrCorrupt  = errors.New("stored schedule is corrupt")
)

// loader is implemented by every backend. Load keeps the reason a schedule is unavailable
// (ErrNotFound, ErrCorrupt or an I/O error); Get on the backends collapses it.
type loader interface {
	Load(ctx context.Context, groupId string) (schedule.Schedule, error)
}

func get(ctx context.Context, l loader, groupId string) (schedule.Schedule, bool) {
	s, err := l.Load(ctx, groupId)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Debugf("No schedule stored for group %s", groupId)
		} else {
			log.Warnf("Failed to load schedule for group %s: %v", groupId, err)
		}
		return nil, false
	}
	return s, true
}

func encode(s schedule.Schedule) ([]byte, error) {
	if s == nil {
		s = schedule.Schedule{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode schedule: %w", err)
	}
	return data, nil
}

func decode(data []byte) (schedule.Schedule, error) {
	var s schedule.Schedule
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v (data was [%s])", ErrCorrupt, err, truncate(data, 200))
	}
	for i, e := range s {
		if e.Date == nil {
			return nil, fmt.Errorf("%w: entry %d has no date", ErrCorrupt, i)
		}
	}
	return s, nil
}

func truncate(data []byte, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}
