package auth

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/syllascan/pkg/handlers"
)

// Identify returns middleware that verifies the request's ID token, when one
// is present, and attaches the resulting identity to the request context.
// Unverifiable tokens are ignored so anonymous routes keep working; the
// Authorization header may carry a calendar access token rather than an ID token.
func Identify(v Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if v == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := TokenFromRequest(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := v.Verify(r.Context(), raw)
			if err != nil {
				logger.DebugContext(r.Context(), "identity token rejected", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// Require wraps a handler so it responds 401 unless Identify attached an identity.
func Require(logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrUnauthenticated)
				return
			}
			next(w, r)
		}
	}
}
