package revisions

import (
	"strings"

	"github.com/JaimeStill/syllascan/internal/events"
)

// Patch holds the event fields a model reply changed. Unset fields are untouched.
type Patch struct {
	Title       events.Field `json:"title"`
	Description events.Field `json:"description"`
	StartDate   events.Field `json:"startDate"`
	EndDate     events.Field `json:"endDate"`
	Location    events.Field `json:"location"`
	IsAllDay    events.Field `json:"isAllDay"`
	Type        events.Field `json:"type"`
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.StartDate.Set &&
		!p.EndDate.Set && !p.Location.Set && !p.IsAllDay.Set && !p.Type.Set
}

// Apply returns evt with p applied and its date range recomposed so the
// result holds the same invariants as a freshly normalized event.
func Apply(evt events.Event, p Patch) events.Event {
	out := evt

	if t := strings.TrimSpace(p.Title.Value); p.Title.Set && t != "" {
		out.Title = t
	}
	if p.Description.Set {
		out.Description = p.Description.Value
	}
	if p.Location.Set {
		out.Location = p.Location.Value
	}
	if p.Type.Set {
		if typ, ok := events.ParseType(p.Type.Value); ok {
			out.Type = typ
		}
	}

	if p.StartDate.Set && p.StartDate.Value != "" {
		date, clock := splitDateTime(p.StartDate.Value)
		out.Date = events.NormalizeDate(date)
		out.StartTime = clock
		if !p.EndDate.Set {
			out.EndTime = ""
		}
	}
	if p.EndDate.Set && p.EndDate.Value != "" {
		_, clock := splitDateTime(p.EndDate.Value)
		out.EndTime = clock
	}

	out.IsAllDay = out.StartTime == "" && out.EndTime == ""
	if p.IsAllDay.Set {
		out.IsAllDay = p.IsAllDay.Bool()
	}
	if out.IsAllDay {
		out.StartTime = ""
		out.EndTime = ""
	} else if out.StartTime == "" && out.EndTime == "" {
		out.IsAllDay = true
	}

	out.StartDate, out.EndDate = events.ComposeRange(out.Date, out.IsAllDay, out.StartTime, out.EndTime)
	return out
}

// splitDateTime separates "2024-10-15T14:00:00" into its date and HH:MM
// parts. A value without a time yields an empty clock.
func splitDateTime(v string) (string, string) {
	v = strings.TrimSpace(v)
	i := strings.IndexAny(v, "T ")
	if i < 0 {
		return v, ""
	}

	date, rest := v[:i], v[i+1:]
	if parts := strings.SplitN(rest, ":", 3); len(parts) >= 2 {
		rest = parts[0] + ":" + parts[1]
	}
	return date, events.NormalizeTime(rest)
}
