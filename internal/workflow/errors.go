package workflow

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for extraction. The provider failure kinds all wrap
// ErrExtractionFailed.
var (
	ErrExtractionFailed  = errors.New("event extraction failed")
	ErrNotConfigured     = errors.New("inference provider is not configured")
	ErrRateLimited       = fmt.Errorf("%w: provider rate limit exceeded", ErrExtractionFailed)
	ErrInvalidCredential = fmt.Errorf("%w: invalid provider credential", ErrExtractionFailed)
	ErrBadRequest        = fmt.Errorf("%w: provider rejected the request", ErrExtractionFailed)
	ErrCanceled          = errors.New("processing canceled")
)

// RequiresKey reports whether the user can resolve err by supplying their
// own inference credential.
func RequiresKey(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrInvalidCredential)
}

// MapHTTPStatus maps workflow errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrInvalidCredential):
		return http.StatusForbidden
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
