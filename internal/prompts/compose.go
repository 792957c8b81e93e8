package prompts

import (
	"fmt"
	"strings"
)

// Compose builds the prompt for a stage from its instructions and spec.
// Context sections are appended in order after the spec.
func Compose(stage Stage, context ...string) (string, error) {
	instructions, err := Instructions(stage)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", stage, err)
	}

	spec, err := Spec(stage)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", stage, err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\n")
	sb.WriteString(spec)

	for _, c := range context {
		if c == "" {
			continue
		}
		sb.WriteString("\n\n")
		sb.WriteString(c)
	}

	return sb.String(), nil
}

// EventDetails is the subset of an event shown to the model when revising.
type EventDetails struct {
	Title       string
	Description string
	StartDate   string
	EndDate     string
	Location    string
	IsAllDay    bool
}

// Describe renders event details as a context section for the revise stage.
func (d EventDetails) Describe() string {
	allDay := "No"
	if d.IsAllDay {
		allDay = "Yes"
	}

	var sb strings.Builder
	sb.WriteString("Current event details:\n")
	fmt.Fprintf(&sb, "- Title: %s\n", d.Title)
	fmt.Fprintf(&sb, "- Description: %s\n", orDefault(d.Description, "None"))
	fmt.Fprintf(&sb, "- Start Date: %s\n", d.StartDate)
	fmt.Fprintf(&sb, "- End Date: %s\n", orDefault(d.EndDate, "Same as start date"))
	fmt.Fprintf(&sb, "- Location: %s\n", orDefault(d.Location, "None"))
	fmt.Fprintf(&sb, "- All Day Event: %s", allDay)
	return sb.String()
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
