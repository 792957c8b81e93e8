package events

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
)

const dateLayout = "2006-01-02"

var timePattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// Normalizer converts candidates into canonical events.
// NewID generates event identifiers; nil uses random UUIDs.
type Normalizer struct {
	NewID func() string
}

// Normalize converts a candidate with a random UUID identifier.
func Normalize(c Candidate) Event {
	return Normalizer{}.Normalize(c)
}

// NormalizeAll converts candidates, skipping empty ones.
func NormalizeAll(candidates []Candidate) []Event {
	n := Normalizer{}
	out := make([]Event, 0, len(candidates))
	for _, c := range candidates {
		if c.Empty() {
			continue
		}
		out = append(out, n.Normalize(c))
	}
	return out
}

// Normalize converts one candidate. It never fails: malformed fields are
// cleared or passed through as described on each step.
func (n Normalizer) Normalize(c Candidate) Event {
	e := Event{
		ID:          n.id(),
		Title:       strings.TrimSpace(c.Title.Value),
		Description: strings.TrimSpace(c.Description.Value),
		Location:    strings.TrimSpace(c.Location.Value),
	}
	if e.Title == "" {
		e.Title = UnnamedTitle
	}

	raw := c.Date.Value
	if strings.TrimSpace(raw) == "" {
		raw = c.StartDate.Value
	}
	e.Date = NormalizeDate(raw)

	e.StartTime = NormalizeTime(c.StartTime.Value)
	e.EndTime = NormalizeTime(c.EndTime.Value)
	e.IsAllDay = c.IsAllDay.Bool() || (e.StartTime == "" && e.EndTime == "")
	e.StartDate, e.EndDate = ComposeRange(e.Date, e.IsAllDay, e.StartTime, e.EndTime)

	e.Type = resolveType(c.Type.Value, e.Title, e.Description)
	e.Recurrence = NormalizeRecurrence(c.Recurrence.Value)

	return e
}

func (n Normalizer) id() string {
	if n.NewID != nil {
		return n.NewID()
	}
	return uuid.NewString()
}

// NormalizeDate reformats any parseable date or date-time as YYYY-MM-DD.
// Unparseable input is returned trimmed but otherwise unchanged.
func NormalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return raw
	}
	return t.Format(dateLayout)
}

// NormalizeTime validates H:MM or HH:MM within 00:00-23:59 and zero-pads
// the hour. Anything else is cleared.
func NormalizeTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if !timePattern.MatchString(raw) {
		return ""
	}
	if len(raw) == 4 {
		raw = "0" + raw
	}
	if _, err := time.Parse("15:04", raw); err != nil {
		return ""
	}
	return raw
}

// ComposeRange derives ISO-8601 start and end values from a date and times.
// All-day events use the bare date. A timed event with only an end time
// starts at that end time; without an end time the end equals the start.
func ComposeRange(date string, allDay bool, startTime, endTime string) (string, string) {
	if date == "" {
		return "", ""
	}
	if allDay {
		return date, date
	}

	if startTime == "" {
		startTime = endTime
	}
	start := fmt.Sprintf("%sT%s:00", date, startTime)

	if endTime == "" {
		return start, start
	}
	return start, fmt.Sprintf("%sT%s:00", date, endTime)
}

// NormalizeRecurrence returns the rule without its RRULE: prefix when it
// parses as an RFC 5545 recurrence rule, and empty otherwise.
func NormalizeRecurrence(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 6 && strings.EqualFold(raw[:6], "RRULE:") {
		raw = raw[6:]
	}
	if raw == "" {
		return ""
	}
	if _, err := rrule.StrToRRule(raw); err != nil {
		return ""
	}
	return strings.ToUpper(raw)
}
