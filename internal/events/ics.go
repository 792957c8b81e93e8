package events

import (
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

const (
	productID       = "-//SyllaScan//Syllabus Events//EN"
	floatingLayout  = "20060102T150405"
	isoMinuteLayout = "2006-01-02T15:04:05"
)

// Calendar renders events as an RFC 5545 calendar. Events without a
// parseable date are skipped; ErrNoEvents is returned when none remain.
// All-day events use VALUE=DATE with an exclusive end one day later.
// Timed events are written as floating local times.
func Calendar(evts []Event, now time.Time) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	written := 0
	for _, e := range evts {
		if addEvent(cal, e, now) {
			written++
		}
	}

	if written == 0 {
		return "", ErrNoEvents
	}
	return cal.Serialize(), nil
}

func addEvent(cal *ical.Calendar, e Event, now time.Time) bool {
	day, err := time.Parse(dateLayout, e.Date)
	if err != nil {
		return false
	}

	uid := e.ID
	if uid == "" {
		uid = Key(e)
	}

	ve := cal.AddEvent(uid + "@syllascan")
	ve.SetDtStampTime(now.UTC())
	ve.SetSummary(e.Title)
	if e.Description != "" {
		ve.SetDescription(e.Description)
	}
	if e.Location != "" {
		ve.SetLocation(e.Location)
	}
	if e.Type != "" {
		ve.SetProperty(ical.ComponentPropertyCategories, strings.ToUpper(string(e.Type)))
	}

	if e.IsAllDay {
		ve.SetAllDayStartAt(day)
		ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
	} else {
		start, end := timedRange(e)
		ve.SetProperty(ical.ComponentPropertyDtStart, start.Format(floatingLayout))
		ve.SetProperty(ical.ComponentPropertyDtEnd, end.Format(floatingLayout))
	}

	if e.Recurrence != "" {
		ve.SetProperty(ical.ComponentPropertyRrule, e.Recurrence)
	}
	return true
}

func timedRange(e Event) (time.Time, time.Time) {
	start, err := time.Parse(isoMinuteLayout, e.StartDate)
	if err != nil {
		start, _ = time.Parse(dateLayout, e.Date)
	}
	end, err := time.Parse(isoMinuteLayout, e.EndDate)
	if err != nil || end.Before(start) {
		end = start
	}
	if end.Equal(start) {
		end = start.Add(time.Hour)
	}
	return start, end
}
