package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/klokku/schedulekeeper/internal/utils"
	log "github.com/sirupsen/logrus"
)

var ErrNoValidEntries = errors.New("no valid schedule entries")

const (
	lineSeparator = " - "
	// year day/month hourAM|PM minute:second
	dateLayout    = "2006 2/1 3PM 04:05"
	defaultMinSec = "00:00"
)

// SkippedLine records why an input line did not produce an entry.
type SkippedLine struct {
	Line   string
	Reason string
}

type ParseResult struct {
	Schedule Schedule
	Skipped  []SkippedLine
}

type Parser struct {
	clock    utils.Clock
	location *time.Location
}

// NewParser returns a parser that reads listings as written in a fixed UTC offset.
func NewParser(clock utils.Clock, utcOffsetHours int) *Parser {
	name := fmt.Sprintf("UTC%+03d:00", utcOffsetHours)
	return &Parser{
		clock:    clock,
		location: time.FixedZone(name, utcOffsetHours*3600),
	}
}

// Parse turns listing lines of the form "[Weekday] day/month hourAM|PM [minute:second] - label"
// into a sorted Schedule. Lines that cannot be used are skipped and reported in the result;
// ErrNoValidEntries is returned when none survive.
func (p *Parser) Parse(lines []string) (ParseResult, error) {
	year := p.clock.Now().UTC().Year()
	result := ParseResult{Schedule: make(Schedule, 0, len(lines))}

	for _, line := range lines {
		parts := strings.Split(line, lineSeparator)
		if len(parts) != 2 {
			log.Debugf("Skipping line without a single %q separator: %q", lineSeparator, line)
			result.Skipped = append(result.Skipped, SkippedLine{Line: line, Reason: "not a schedule line"})
			continue
		}

		dateText := stripWeekday(parts[0])
		date, err := p.resolveDate(year, dateText)
		if err != nil {
			log.Warnf("Failed to parse date [%s] reason [%v]", dateText, err)
			result.Skipped = append(result.Skipped, SkippedLine{Line: line, Reason: err.Error()})
			continue
		}

		result.Schedule = append(result.Schedule, Entry{
			DateText: dateText,
			Label:    strings.TrimSpace(parts[1]),
			Date:     &date,
		})
	}

	if len(result.Schedule) == 0 {
		return result, ErrNoValidEntries
	}

	result.Schedule.sortByDate()
	return result, nil
}

func (p *Parser) resolveDate(year int, dateText string) (time.Time, error) {
	fields := strings.Fields(dateText)
	switch len(fields) {
	case 2:
		fields = append(fields, defaultMinSec)
	case 3:
	default:
		return time.Time{}, fmt.Errorf("expected \"day/month hourAM|PM [minute:second]\", got %d fields", len(fields))
	}
	fields[1] = strings.ToUpper(fields[1])

	value := fmt.Sprintf("%d %s", year, strings.Join(fields, " "))
	local, err := time.ParseInLocation(dateLayout, value, p.location)
	if err != nil {
		return time.Time{}, err
	}
	return local.UTC(), nil
}

// stripWeekday drops a leading word such as "Mon" that is not itself a day/month.
func stripWeekday(token string) string {
	fields := strings.Fields(token)
	if len(fields) > 0 && !strings.Contains(fields[0], "/") {
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}
