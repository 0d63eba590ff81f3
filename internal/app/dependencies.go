package app

import (
	"github.com/klokku/schedulekeeper/internal/config"
	"github.com/klokku/schedulekeeper/internal/event_bus"
	"github.com/klokku/schedulekeeper/internal/utils"
	"github.com/klokku/schedulekeeper/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	Backend         schedule.Backend
	ScheduleParser  *schedule.Parser
	ScheduleService *schedule.Service
	ScheduleHandler *schedule.Handler
}

// BuildDependencies wires services and handlers around an already selected backend.
func BuildDependencies(backend schedule.Backend, cfg config.Application, clock utils.Clock) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = clock
	deps.EventBus = event_bus.NewEventBus()
	event_bus.SubscribeTyped(deps.EventBus, event_bus.ScheduleSavedType, logScheduleSaved)

	deps.Backend = backend
	deps.ScheduleParser = schedule.NewParser(deps.Clock, cfg.Parser.UtcOffsetHours)
	deps.ScheduleService = schedule.NewService(deps.Backend, deps.ScheduleParser, deps.Clock, deps.EventBus)
	deps.ScheduleHandler = schedule.NewHandler(deps.ScheduleService, cfg.Parser.Marker)

	return deps
}

func logScheduleSaved(e event_bus.EventT[event_bus.ScheduleSaved]) error {
	log.WithFields(log.Fields{
		"group":   e.Data.GroupId,
		"entries": e.Data.EntryCount,
		"first":   e.Data.First,
		"last":    e.Data.Last,
	}).Info("Schedule saved")
	return nil
}
