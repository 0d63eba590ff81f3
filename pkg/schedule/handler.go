package schedule

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/schedulekeeper/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
	marker  string
}

// SaveScheduleRequest carries either a raw message, from which the schedule block is
// extracted, or lines that were already extracted.
type SaveScheduleRequest struct {
	Message string   `json:"message"`
	Lines   []string `json:"lines"`
}

type EntryDTO struct {
	DateText string    `json:"datestr"`
	Label    string    `json:"label"`
	Date     time.Time `json:"date"`
}

func NewHandler(s *Service, marker string) *Handler {
	return &Handler{service: s, marker: marker}
}

func (h *Handler) SaveSchedule(w http.ResponseWriter, r *http.Request) {
	groupId := mux.Vars(r)["groupId"]

	var req SaveScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	lines := req.Lines
	if len(lines) == 0 {
		lines = ExtractLines(req.Message, h.marker)
	}

	result, err := h.service.SaveSchedule(r.Context(), groupId, lines)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoValidEntries):
			rest.WriteText(w, http.StatusUnprocessableEntity, ReplyNoValidEntries)
		case errors.Is(err, ErrMissingGroup):
			rest.WriteError(w, http.StatusBadRequest, "Missing group", err.Error())
		default:
			log.Errorf("failed to save schedule for group %s: %v", groupId, err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	rest.WriteText(w, http.StatusOK, FormatSchedule(result.Schedule))
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, ok := h.lookup(w, r)
	if !ok {
		return
	}

	dtos := make([]EntryDTO, 0, len(schedule))
	for _, e := range schedule {
		dtos = append(dtos, entryToDTO(e))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	schedule, ok := h.lookup(w, r)
	if !ok {
		return
	}
	rest.WriteText(w, http.StatusOK, FormatSchedule(schedule))
}

func (h *Handler) GetNext(w http.ResponseWriter, r *http.Request) {
	groupId := mux.Vars(r)["groupId"]

	entry, err := h.service.NextEntry(r.Context(), groupId)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoScheduleSaved):
			rest.WriteText(w, http.StatusNotFound, ReplyNoScheduleSaved)
		case errors.Is(err, ErrNothingUpcoming):
			rest.WriteText(w, http.StatusNotFound, ReplyNothingUpcoming)
		case errors.Is(err, ErrMissingGroup):
			rest.WriteError(w, http.StatusBadRequest, "Missing group", err.Error())
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	rest.WriteText(w, http.StatusOK, FormatEntry(entry))
}

func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	schedule, ok := h.lookup(w, r)
	if !ok {
		return
	}
	groupId := mux.Vars(r)["groupId"]

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(FormatICS(groupId, schedule, h.service.Now()))); err != nil {
		log.Errorf("failed to write calendar: %v", err)
	}
}

// lookup loads the group's schedule and writes the error reply itself when there is none.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (Schedule, bool) {
	groupId := mux.Vars(r)["groupId"]
	schedule, err := h.service.GetSchedule(r.Context(), groupId)
	if err != nil {
		if errors.Is(err, ErrMissingGroup) {
			rest.WriteError(w, http.StatusBadRequest, "Missing group", err.Error())
		} else {
			rest.WriteText(w, http.StatusNotFound, ReplyNoScheduleSaved)
		}
		return nil, false
	}
	return schedule, true
}

func entryToDTO(e Entry) EntryDTO {
	dto := EntryDTO{DateText: e.DateText, Label: e.Label}
	if e.Date != nil {
		dto.Date = *e.Date
	}
	return dto
}
