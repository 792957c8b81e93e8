// Package workflow runs the extraction pipeline: each uploaded file is
// normalized to an image, sent to a vision model for candidate events, and
// the candidates are normalized. Files fail independently.
package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/syllascan/internal/documents"
	"github.com/JaimeStill/syllascan/internal/events"
)

// FileError records why one file produced no events.
type FileError struct {
	File        string `json:"file"`
	Error       string `json:"error"`
	RequiresKey bool   `json:"requiresKey,omitempty"`
	Err         error  `json:"-"`
}

// NewFileError builds a FileError from a stage failure.
func NewFileError(file string, err error) FileError {
	return FileError{
		File:        file,
		Error:       err.Error(),
		RequiresKey: RequiresKey(err),
		Err:         err,
	}
}

// Result is the outcome of a batch: deduplicated events from every file
// that succeeded and one error per file that did not.
type Result struct {
	Events []events.Event `json:"events"`
	Errors []FileError    `json:"errors,omitempty"`
}

// RequiresKey reports whether any file failed for a reason the user can
// resolve with their own credential.
func (r *Result) RequiresKey() bool {
	for _, fe := range r.Errors {
		if fe.RequiresKey {
			return true
		}
	}
	return false
}

// KeyError returns the first file failure a user credential can resolve,
// or nil when there is none.
func (r *Result) KeyError() error {
	for _, fe := range r.Errors {
		if fe.RequiresKey {
			return fe.Err
		}
	}
	return nil
}

// Execute processes files sequentially. A failing file is recorded in
// Result.Errors and its siblings continue. When ctx is canceled the
// remaining files are recorded as canceled.
func Execute(ctx context.Context, rt *Runtime, files []documents.File, credential string) *Result {
	result := &Result{Events: []events.Event{}}
	var all []events.Event

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			for _, rest := range files[i:] {
				result.Errors = append(result.Errors, NewFileError(rest.Name, fmt.Errorf("%w: %w", ErrCanceled, err)))
			}
			break
		}

		evts, err := processFile(ctx, rt, f, credential)
		if err != nil {
			rt.Logger.WarnContext(ctx, "file failed", "file", f.Name, "error", err)
			result.Errors = append(result.Errors, NewFileError(f.Name, err))
			continue
		}

		rt.Logger.InfoContext(ctx, "file processed", "file", f.Name, "events", len(evts))
		all = append(all, evts...)
	}

	result.Events = append(result.Events, events.Dedupe(all)...)
	return result
}

func processFile(ctx context.Context, rt *Runtime, f documents.File, credential string) ([]events.Event, error) {
	img, err := rt.Documents.Normalize(ctx, f)
	if err != nil {
		return nil, err
	}

	candidates, err := rt.Extractor.Extract(ctx, img, credential)
	if err != nil {
		return nil, err
	}

	out := make([]events.Event, 0, len(candidates))
	for _, c := range candidates {
		if c.Empty() {
			continue
		}
		out = append(out, rt.Events.Normalize(c))
	}

	events.Tag(out, f.Name, f.ContentType, f.Key)
	return out, nil
}
