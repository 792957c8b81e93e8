// Package events defines the canonical calendar event and the pure
// transformations applied to it: normalization of untrusted model output,
// type classification, deduplication, and iCalendar export.
package events

import "strings"

// Type classifies an event for display and calendar categorization.
type Type string

// Canonical event types.
const (
	TypeExam       Type = "exam"
	TypeAssignment Type = "assignment"
	TypeDiscussion Type = "discussion"
	TypeReading    Type = "reading"
	TypeClass      Type = "class"
)

var types = []Type{TypeExam, TypeAssignment, TypeDiscussion, TypeReading, TypeClass}

// Types returns the canonical event types.
func Types() []Type {
	return types
}

// ParseType returns the canonical type matching s case-insensitively.
func ParseType(s string) (Type, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range types {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// UnnamedTitle replaces a missing or blank title.
const UnnamedTitle = "Unnamed Event"

// Event is a normalized calendar event ready for review and insertion.
type Event struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Date           string `json:"date"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	IsAllDay       bool   `json:"isAllDay"`
	Location       string `json:"location"`
	Type           Type   `json:"type"`
	Recurrence     string `json:"recurrence,omitempty"`
	SourceFile     string `json:"sourceFile,omitempty"`
	SourceFileType string `json:"sourceFileType,omitempty"`
	SourceKey      string `json:"sourceKey,omitempty"`
}

// Tag attaches upload provenance to each event in place.
func Tag(evts []Event, file, fileType, key string) {
	for i := range evts {
		evts[i].SourceFile = file
		evts[i].SourceFileType = fileType
		evts[i].SourceKey = key
	}
}
