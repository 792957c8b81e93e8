package events

import (
	"errors"
	"net/http"
)

var (
	// ErrNoEvents indicates a request that carried no usable events.
	ErrNoEvents = errors.New("no events provided")
	// ErrInvalidEvent indicates an event missing its title or start date.
	ErrInvalidEvent = errors.New("event requires a title and start date")
)

// MapHTTPStatus maps event errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNoEvents) || errors.Is(err, ErrInvalidEvent) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
