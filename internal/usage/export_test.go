package usage

// WithKey returns a copy of r carrying a saved custom key.
func WithKey(r Record, key string) *Record {
	r.apiKey = key
	r.HasCustomKey = key != ""
	return &r
}
