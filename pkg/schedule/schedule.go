package schedule

import (
	"sort"
	"time"
)

// Entry is a single listed event. Date is nil only while the entry is being parsed;
// every entry of a stored Schedule has it set.
type Entry struct {
	DateText string     `json:"datestr"`
	Label    string     `json:"label"`
	Date     *time.Time `json:"date"`
}

// Schedule is a group's list of entries, ascending by Date.
type Schedule []Entry

func (s Schedule) sortByDate() {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Date.Before(*s[j].Date)
	})
}

// Span returns the first and last resolved dates, or zero times for an empty schedule.
func (s Schedule) Span() (time.Time, time.Time) {
	if len(s) == 0 {
		return time.Time{}, time.Time{}
	}
	return *s[0].Date, *s[len(s)-1].Date
}
