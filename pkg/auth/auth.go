// Package auth resolves the caller's identity from a verified OIDC ID token.
//
// Identity is optional per request: Identify attaches it when a valid token
// is present and Require rejects requests that carry none.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// Token sources, in lookup order.
const (
	HeaderIDToken = "X-Id-Token"
	CookieIDToken = "id_token"
)

var (
	// ErrUnauthenticated indicates the request carries no verified identity.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidToken indicates a token that failed verification.
	ErrInvalidToken = errors.New("invalid identity token")
)

// Identity is the authenticated principal behind a request.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
}

// Verifier validates a raw ID token and returns the identity it asserts.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity attached by Identify, if any.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(*Identity)
	return id, ok && id != nil
}

// TokenFromRequest returns the first ID token candidate found in the
// X-Id-Token header, the id_token cookie, or the Authorization bearer value.
func TokenFromRequest(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(HeaderIDToken)); v != "" {
		return v
	}
	if c, err := r.Cookie(CookieIDToken); err == nil && c.Value != "" {
		return c.Value
	}
	return BearerToken(r)
}

// BearerToken returns the Authorization bearer value, or empty.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
