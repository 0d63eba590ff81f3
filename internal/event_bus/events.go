package event_bus

import "time"

const ScheduleSavedType EventType = "schedule.saved"

// ScheduleSaved is published after a group's schedule has been replaced in storage.
type ScheduleSaved struct {
	GroupId    string
	EntryCount int
	// First and Last are the earliest and latest resolved dates of the saved schedule.
	First time.Time
	Last  time.Time
}
