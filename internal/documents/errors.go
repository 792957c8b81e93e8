package documents

import (
	"errors"
	"net/http"
)

// Domain errors for document operations.
var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrRenderFailed    = errors.New("failed to render document")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
	ErrInvalidFile     = errors.New("invalid file")
	ErrTooManyFiles    = errors.New("too many files in request")
	ErrNoFiles         = errors.New("no files uploaded")
)

// MapHTTPStatus maps document domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnsupportedType) {
		return http.StatusUnsupportedMediaType
	}
	if errors.Is(err, ErrRenderFailed) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidFile) || errors.Is(err, ErrTooManyFiles) || errors.Is(err, ErrNoFiles) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
