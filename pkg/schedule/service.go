package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/klokku/schedulekeeper/internal/event_bus"
	"github.com/klokku/schedulekeeper/internal/utils"
	log "github.com/sirupsen/logrus"
)

var (
	ErrMissingGroup    = errors.New("group id is required")
	ErrNoScheduleSaved = errors.New("no schedule saved")
	ErrNothingUpcoming = errors.New("nothing upcoming")
)

type Service struct {
	backend Backend
	parser  *Parser
	clock   utils.Clock
	bus     *event_bus.EventBus
}

func NewService(backend Backend, parser *Parser, clock utils.Clock, bus *event_bus.EventBus) *Service {
	return &Service{
		backend: backend,
		parser:  parser,
		clock:   clock,
		bus:     bus,
	}
}

// SaveSchedule parses lines and replaces the group's stored schedule with the result.
// Nothing is written when the lines hold no valid entry.
func (s *Service) SaveSchedule(ctx context.Context, groupId string, lines []string) (ParseResult, error) {
	if groupId == "" {
		return ParseResult{}, ErrMissingGroup
	}

	result, err := s.parser.Parse(lines)
	if err != nil {
		log.Infof("No valid entries for group %s in %d line(s)", groupId, len(lines))
		return result, err
	}

	if err := s.backend.Set(ctx, groupId, result.Schedule); err != nil {
		return result, fmt.Errorf("failed to store schedule: %w", err)
	}
	log.Debugf("Stored %d entries for group %s (%d line(s) skipped)", len(result.Schedule), groupId, len(result.Skipped))

	if s.bus != nil {
		first, last := result.Schedule.Span()
		event := event_bus.NewEvent(ctx, event_bus.ScheduleSavedType, event_bus.ScheduleSaved{
			GroupId:    groupId,
			EntryCount: len(result.Schedule),
			First:      first,
			Last:       last,
		})
		if err := s.bus.Publish(event); err != nil {
			log.Warnf("schedule for group %s saved, but notifying subscribers failed: %v", groupId, err)
		}
	}

	return result, nil
}

func (s *Service) GetSchedule(ctx context.Context, groupId string) (Schedule, error) {
	if groupId == "" {
		return nil, ErrMissingGroup
	}
	schedule, ok := s.backend.Get(ctx, groupId)
	if !ok {
		return nil, ErrNoScheduleSaved
	}
	return schedule, nil
}

// NextEntry returns the group's first entry after the clock's current time.
func (s *Service) NextEntry(ctx context.Context, groupId string) (Entry, error) {
	schedule, err := s.GetSchedule(ctx, groupId)
	if err != nil {
		return Entry{}, err
	}
	entry, ok := NextEntry(schedule, s.clock.Now())
	if !ok {
		return Entry{}, ErrNothingUpcoming
	}
	return entry, nil
}

// Now exposes the service clock to callers that stamp generated documents.
func (s *Service) Now() time.Time {
	return s.clock.Now()
}
