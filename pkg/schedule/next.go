package schedule

import "time"

// NextEntry returns the first entry dated strictly after now. The schedule must already be
// sorted, which every parsed or stored schedule is.
func NextEntry(s Schedule, now time.Time) (Entry, bool) {
	for _, e := range s {
		if e.Date != nil && e.Date.After(now) {
			return e, true
		}
	}
	return Entry{}, false
}
