package usage

import (
	"errors"
	"net/http"
)

// Domain errors for usage operations.
var (
	ErrNotFound    = errors.New("usage record not found")
	ErrDuplicate   = errors.New("usage record already exists")
	ErrKeyRequired = errors.New("free usage limit reached, please provide your own API key")
	ErrInvalidKey  = errors.New("invalid API key format")
)

// MapHTTPStatus maps usage domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrKeyRequired):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
