package usage

import (
	"strings"
	"time"
)

// KeyPrefix is the prefix every accepted custom inference key carries.
const KeyPrefix = "sk-"

// Record is a user's usage counter and optional custom inference key.
// The key itself never leaves the package in serialized form.
type Record struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email,omitempty"`
	UsageCount   int       `json:"usageCount"`
	HasCustomKey bool      `json:"hasCustomKey"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	apiKey string
}

// Summary is the usage view returned to the caller.
type Summary struct {
	UsageCount   int  `json:"usageCount"`
	HasCustomKey bool `json:"hasCustomKey"`
	FreeLimit    int  `json:"freeLimit"`
}

// Summarize combines r with the configured free limit. A nil record reads as unused.
func Summarize(r *Record, freeLimit int) Summary {
	s := Summary{FreeLimit: freeLimit}
	if r != nil {
		s.UsageCount = r.UsageCount
		s.HasCustomKey = r.HasCustomKey
	}
	return s
}

// ValidateKey rejects keys that do not carry KeyPrefix.
func ValidateKey(key string) error {
	if !strings.HasPrefix(strings.TrimSpace(key), KeyPrefix) {
		return ErrInvalidKey
	}
	return nil
}
