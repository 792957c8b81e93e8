package workflow

import (
	"context"
	"log/slog"

	"github.com/JaimeStill/syllascan/internal/documents"
	"github.com/JaimeStill/syllascan/internal/events"
)

// DocumentNormalizer converts an uploaded file into a model-ready image.
type DocumentNormalizer interface {
	Normalize(ctx context.Context, f documents.File) (*documents.Image, error)
}

// Runtime bundles the dependencies the pipeline requires.
// It is constructed by higher-level composition code from Infrastructure and Domain systems.
type Runtime struct {
	Documents DocumentNormalizer
	Extractor Extractor
	Events    events.Normalizer
	Logger    *slog.Logger
}
