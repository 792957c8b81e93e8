// Package extractions serves the multipart upload endpoint that turns
// syllabus files into reviewed-ready calendar events.
package extractions

import (
	"context"
	"io"

	"github.com/JaimeStill/syllascan/internal/documents"
	"github.com/JaimeStill/syllascan/internal/events"
	"github.com/JaimeStill/syllascan/internal/usage"
	"github.com/JaimeStill/syllascan/internal/workflow"
)

// Meter resolves and records the inference credential used for a request.
type Meter interface {
	Resolve(ctx context.Context, userID string) (usage.Credential, error)
	Increment(ctx context.Context, userID, email string) (*usage.Record, error)
}

// Archive stores accepted uploads so history can serve them later.
type Archive interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
}

// Config bounds a single extraction request.
type Config struct {
	Limits        documents.Limits
	MaxUploadSize int64
	RequireAuth   bool
}

// Response is the body of a completed extraction.
// Events and Count are set when at least one event was found, Message otherwise.
type Response struct {
	Events  []events.Event       `json:"events,omitempty"`
	Count   int                  `json:"count,omitempty"`
	Message string               `json:"message,omitempty"`
	Errors  []workflow.FileError `json:"errors,omitempty"`
}
