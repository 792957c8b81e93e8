package calendar

import (
	"strings"
	"time"

	gcal "google.golang.org/api/calendar/v3"

	"github.com/JaimeStill/syllascan/internal/events"
)

const dateLayout = "2006-01-02"

// Payload builds the Calendar API resource for evt. All-day events use
// Date fields with an exclusive end date; timed events use floating
// DateTime values interpreted in timeZone.
func Payload(evt events.Event, timeZone string) (*gcal.Event, error) {
	title := strings.TrimSpace(evt.Title)
	if title == "" || evt.StartDate == "" {
		return nil, ErrInvalidEvent
	}

	end := evt.EndDate
	if end == "" {
		end = evt.StartDate
	}

	out := &gcal.Event{
		Summary:     title,
		Description: evt.Description,
		Location:    evt.Location,
	}

	if evt.IsAllDay {
		start := datePart(evt.StartDate)
		out.Start = &gcal.EventDateTime{Date: start}
		out.End = &gcal.EventDateTime{Date: exclusiveEnd(start, datePart(end))}
	} else {
		out.Start = &gcal.EventDateTime{DateTime: evt.StartDate, TimeZone: timeZone}
		out.End = &gcal.EventDateTime{DateTime: end, TimeZone: timeZone}
	}

	if evt.Recurrence != "" {
		out.Recurrence = []string{"RRULE:" + evt.Recurrence}
	}

	return out, nil
}

func datePart(v string) string {
	if i := strings.IndexByte(v, 'T'); i >= 0 {
		return v[:i]
	}
	return v
}

// exclusiveEnd returns the day after end, or after start when end is
// unparseable or earlier. Unparseable starts are passed through unchanged.
func exclusiveEnd(start, end string) string {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return end
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil || e.Before(s) {
		e = s
	}
	return e.AddDate(0, 0, 1).Format(dateLayout)
}
