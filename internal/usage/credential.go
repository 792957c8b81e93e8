package usage

// Source identifies whose inference key pays for a request.
type Source string

const (
	SourceCustom Source = "custom"
	SourceServer Source = "server"
)

// Credential is the inference key resolved for one request.
// An empty Token with SourceServer means the configured server key.
type Credential struct {
	Token  string
	Source Source
}

// Metered reports whether requests made with c count toward the free limit.
func (c Credential) Metered() bool {
	return c.Source == SourceServer
}

// Resolve picks the credential for a user: their custom key when saved,
// otherwise the server key while usage is under freeLimit.
// Returns ErrKeyRequired once the allowance is spent.
func Resolve(r *Record, freeLimit int) (Credential, error) {
	if r != nil && r.HasCustomKey && r.apiKey != "" {
		return Credential{Token: r.apiKey, Source: SourceCustom}, nil
	}

	used := 0
	if r != nil {
		used = r.UsageCount
	}
	if used >= freeLimit {
		return Credential{}, ErrKeyRequired
	}
	return Credential{Source: SourceServer}, nil
}
