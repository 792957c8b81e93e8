package revisions

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/syllascan/internal/workflow"
)

// Domain errors for event revision.
var (
	ErrEmptyMessage = errors.New("revision message is required")
	ErrNoEvent      = errors.New("event to revise is required")
)

// MapHTTPStatus maps revision errors to HTTP status codes. Provider
// failures use the extraction taxonomy.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrEmptyMessage) || errors.Is(err, ErrNoEvent) {
		return http.StatusBadRequest
	}
	return workflow.MapHTTPStatus(err)
}
