package events_test

import (
	"encoding/json"
	"testing"

	"github.com/JaimeStill/syllascan/internal/events"
)

func TestCandidateTolerantDecode(t *testing.T) {
	raw := `[
		{"title": " Quiz 1 ", "date": "2024-09-05", "startTime": null, "isAllDay": true, "location": 101},
		"not an event",
		{"title": {"nested": 1}, "description": ["a"], "date": "2024-09-06"}
	]`

	var got []events.Candidate
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	first := got[0]
	if first.Title.Value != "Quiz 1" {
		t.Errorf("title = %q", first.Title.Value)
	}
	if first.StartTime.Set {
		t.Error("null startTime should be unset")
	}
	if !first.IsAllDay.Bool() {
		t.Error("isAllDay should be true")
	}
	if first.Location.Value != "101" {
		t.Errorf("location = %q", first.Location.Value)
	}

	if !got[1].Empty() {
		t.Error("non-object element should decode empty")
	}

	third := got[2]
	if third.Title.Set || third.Description.Set {
		t.Error("object and array values should be unset")
	}
	if third.Date.Value != "2024-09-06" {
		t.Errorf("date = %q", third.Date.Value)
	}
}

func TestFieldBool(t *testing.T) {
	tests := []struct {
		field events.Field
		want  bool
	}{
		{events.S("true"), true},
		{events.S("Yes"), true},
		{events.S("1"), true},
		{events.S("false"), false},
		{events.S("maybe"), false},
		{events.Field{}, false},
	}

	for _, tt := range tests {
		if got := tt.field.Bool(); got != tt.want {
			t.Errorf("Bool(%q) = %v, want %v", tt.field.Value, got, tt.want)
		}
	}
}

func TestFieldMarshal(t *testing.T) {
	data, err := json.Marshal(events.Candidate{Title: events.S("Essay")})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var back map[string]any
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back["title"] != "Essay" {
		t.Errorf("title = %v", back["title"])
	}
	if back["date"] != nil {
		t.Errorf("unset date = %v, want null", back["date"])
	}
}
