package calendar

import (
	"errors"
	"net/http"
)

// Domain errors for calendar insertion.
var (
	ErrAuthExpired   = errors.New("google calendar authorization expired, please sign in again")
	ErrInsertFailed  = errors.New("failed to add events to google calendar")
	ErrNoAccessToken = errors.New("no google access token provided")
	ErrNoEvents      = errors.New("no events provided")
	ErrInvalidEvent  = errors.New("event is missing a title or start date")
)

// MapHTTPStatus maps calendar errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthExpired), errors.Is(err, ErrNoAccessToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNoEvents), errors.Is(err, ErrInvalidEvent):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
