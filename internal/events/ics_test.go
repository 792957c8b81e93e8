package events_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/JaimeStill/syllascan/internal/events"
)

var exportTime = time.Date(2024, 8, 20, 12, 0, 0, 0, time.UTC)

func TestCalendar(t *testing.T) {
	evts := []events.Event{
		{
			ID:        "a",
			Title:     "Midterm Exam",
			Date:      "2024-10-15",
			StartDate: "2024-10-15",
			EndDate:   "2024-10-15",
			IsAllDay:  true,
			Type:      events.TypeExam,
		},
		{
			ID:         "b",
			Title:      "Lecture",
			Date:       "2024-09-02",
			StartDate:  "2024-09-02T09:30:00",
			EndDate:    "2024-09-02T10:45:00",
			StartTime:  "09:30",
			EndTime:    "10:45",
			Location:   "Hall B",
			Type:       events.TypeClass,
			Recurrence: "FREQ=WEEKLY;BYDAY=MO",
		},
		{ID: "c", Title: "Week 3 reading", Date: "Week 3"},
	}

	out, err := events.Calendar(evts, exportTime)
	if err != nil {
		t.Fatalf("Calendar() error = %v", err)
	}

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ParseCalendar() error = %v", err)
	}

	parsed := cal.Events()
	if len(parsed) != 2 {
		t.Fatalf("events = %d, want 2", len(parsed))
	}

	exam := parsed[0]
	if got := exam.GetProperty(ical.ComponentPropertySummary).Value; got != "Midterm Exam" {
		t.Errorf("summary = %q", got)
	}
	start := exam.GetProperty(ical.ComponentPropertyDtStart)
	if start.Value != "20241015" {
		t.Errorf("all-day DTSTART = %q", start.Value)
	}
	if v := start.ICalParameters["VALUE"]; len(v) == 0 || v[0] != "DATE" {
		t.Errorf("all-day DTSTART VALUE = %v", v)
	}
	if got := exam.GetProperty(ical.ComponentPropertyDtEnd).Value; got != "20241016" {
		t.Errorf("all-day DTEND = %q, want exclusive next day", got)
	}
	if got := exam.GetProperty(ical.ComponentPropertyCategories).Value; got != "EXAM" {
		t.Errorf("categories = %q", got)
	}

	lecture := parsed[1]
	if got := lecture.GetProperty(ical.ComponentPropertyDtStart).Value; got != "20240902T093000" {
		t.Errorf("timed DTSTART = %q", got)
	}
	if got := lecture.GetProperty(ical.ComponentPropertyDtEnd).Value; got != "20240902T104500" {
		t.Errorf("timed DTEND = %q", got)
	}
	if got := lecture.GetProperty(ical.ComponentPropertyRrule).Value; got != "FREQ=WEEKLY;BYDAY=MO" {
		t.Errorf("rrule = %q", got)
	}
	if got := lecture.GetProperty(ical.ComponentPropertyLocation).Value; got != "Hall B" {
		t.Errorf("location = %q", got)
	}
}

func TestCalendarTimedWithoutEnd(t *testing.T) {
	out, err := events.Calendar([]events.Event{{
		ID:        "x",
		Title:     "Office hours",
		Date:      "2024-09-03",
		StartDate: "2024-09-03T14:00:00",
		EndDate:   "2024-09-03T14:00:00",
		StartTime: "14:00",
	}}, exportTime)
	if err != nil {
		t.Fatalf("Calendar() error = %v", err)
	}

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ParseCalendar() error = %v", err)
	}
	if got := cal.Events()[0].GetProperty(ical.ComponentPropertyDtEnd).Value; got != "20240903T150000" {
		t.Errorf("DTEND = %q, want one hour after start", got)
	}
}

func TestCalendarNoDatedEvents(t *testing.T) {
	_, err := events.Calendar([]events.Event{{Title: "TBD"}}, exportTime)
	if !errors.Is(err, events.ErrNoEvents) {
		t.Errorf("err = %v, want ErrNoEvents", err)
	}
}
