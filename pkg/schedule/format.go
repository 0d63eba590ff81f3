package schedule

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

const (
	ReplyNoScheduleSaved = "No schedule saved"
	ReplyNoValidEntries  = "No schedule found in provided message"
	ReplyNothingUpcoming = "Nothing upcoming"

	scheduleHeader = "Found these entries:"
	icsEventLength = time.Hour
)

// FormatEntry renders an entry with chat timestamp markup, e.g. "<t:1766613600:F>: Stream".
func FormatEntry(e Entry) string {
	var ts int64
	if e.Date != nil {
		ts = e.Date.Unix()
	}
	return fmt.Sprintf("<t:%d:F>: %s", ts, e.Label)
}

func FormatSchedule(s Schedule) string {
	lines := make([]string, 0, len(s)+1)
	lines = append(lines, scheduleHeader)
	for _, e := range s {
		lines = append(lines, FormatEntry(e))
	}
	return strings.Join(lines, "\n")
}

// FormatICS renders the schedule as an iCalendar document with one event per entry.
// Listings carry no end time, so every event is given a fixed length.
func FormatICS(groupId string, s Schedule, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//schedulekeeper//schedule//EN")
	cal.SetName(fmt.Sprintf("Schedule %s", groupId))

	for i, e := range s {
		if e.Date == nil {
			continue
		}
		event := cal.AddEvent(fmt.Sprintf("%s-%d-%d@schedulekeeper", groupId, e.Date.Unix(), i))
		event.SetDtStampTime(stamp.UTC())
		event.SetStartAt(e.Date.UTC())
		event.SetEndAt(e.Date.UTC().Add(icsEventLength))
		event.SetSummary(e.Label)
		event.SetDescription(e.DateText)
	}
	return cal.Serialize()
}
