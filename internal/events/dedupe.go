package events

// Key is the identity used for deduplication: events with equal title,
// date and description are duplicates regardless of their other fields.
func Key(e Event) string {
	return e.Title + "_" + e.Date + "_" + e.Description
}

// Dedupe returns events with duplicates removed. The first occurrence of
// each key wins and relative order is preserved. Dedupe is idempotent.
func Dedupe(evts []Event) []Event {
	seen := make(map[string]struct{}, len(evts))
	out := make([]Event, 0, len(evts))
	for _, e := range evts {
		k := Key(e)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e)
	}
	return out
}
