package history

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/syllascan/pkg/storage"
)

// Domain errors for history operations.
var (
	ErrNotFound      = errors.New("history record not found")
	ErrDuplicate     = errors.New("history record already exists")
	ErrForbidden     = errors.New("history record belongs to another user")
	ErrInvalidStatus = errors.New("invalid history status")
	ErrNoSource      = errors.New("no archived source for history record")
)

// MapHTTPStatus maps history domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoSource), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidStatus):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
