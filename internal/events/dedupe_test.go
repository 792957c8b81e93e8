package events_test

import (
	"reflect"
	"testing"

	"github.com/JaimeStill/syllascan/internal/events"
)

func TestDedupe(t *testing.T) {
	in := []events.Event{
		{ID: "1", Title: "Quiz 1", Date: "2024-09-05", SourceFile: "a.pdf"},
		{ID: "2", Title: "Lecture", Date: "2024-09-05"},
		{ID: "3", Title: "Quiz 1", Date: "2024-09-05", SourceFile: "b.png"},
		{ID: "4", Title: "Quiz 1", Date: "2024-09-12"},
		{ID: "5", Title: "Lecture", Date: "2024-09-05", Description: "Room change"},
	}

	got := events.Dedupe(in)

	ids := make([]string, len(got))
	for i, e := range got {
		ids[i] = e.ID
	}
	want := []string{"1", "2", "4", "5"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
	if got[0].SourceFile != "a.pdf" {
		t.Errorf("first occurrence should win, got source %q", got[0].SourceFile)
	}
}

func TestDedupeFixedPoint(t *testing.T) {
	in := []events.Event{
		{ID: "1", Title: "A", Date: "2024-01-01"},
		{ID: "2", Title: "A", Date: "2024-01-01"},
		{ID: "3", Title: "B", Date: "2024-01-01"},
	}

	once := events.Dedupe(in)
	twice := events.Dedupe(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Dedupe not idempotent: %v vs %v", once, twice)
	}
}

func TestDedupeEmpty(t *testing.T) {
	if got := events.Dedupe(nil); len(got) != 0 {
		t.Errorf("Dedupe(nil) len = %d", len(got))
	}
}
