// Package usage meters server-paid extractions per user and stores the
// custom inference key a user may supply once the free allowance is spent.
package usage

import "context"

// System defines the public contract for usage tracking.
type System interface {
	Handler() *Handler

	// FreeLimit is the number of server-paid extractions each user receives.
	FreeLimit() int

	// Get returns the user's record, or nil without error when none exists.
	Get(ctx context.Context, userID string) (*Record, error)
	Summary(ctx context.Context, userID string) (Summary, error)
	Resolve(ctx context.Context, userID string) (Credential, error)
	Increment(ctx context.Context, userID, email string) (*Record, error)
	SaveKey(ctx context.Context, userID, email, key string) error
	ClearKey(ctx context.Context, userID string) error
}
