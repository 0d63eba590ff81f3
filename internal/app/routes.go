package app

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Schedule
	r.HandleFunc("/api/group/{groupId}/schedule", deps.ScheduleHandler.SaveSchedule).Methods("PUT")
	r.HandleFunc("/api/group/{groupId}/schedule", deps.ScheduleHandler.GetSchedule).Methods("GET")
	r.HandleFunc("/api/group/{groupId}/schedule/summary", deps.ScheduleHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/group/{groupId}/schedule/next", deps.ScheduleHandler.GetNext).Methods("GET")
	r.HandleFunc("/api/group/{groupId}/schedule.ics", deps.ScheduleHandler.GetCalendar).Methods("GET")

	// Health
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")
}
