// Package calendar inserts reviewed events into a user's Google Calendar,
// refreshing an expired access token at most once per batch.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"

	"github.com/JaimeStill/syllascan/internal/events"
)

const maxAuthRetries = 1

// Inserter writes one event resource and returns its calendar ID.
type Inserter interface {
	Insert(ctx context.Context, accessToken string, evt *gcal.Event) (string, error)
}

// TokenRefresher exchanges a refresh token for a new access token.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// Outcome is the fate of one event in a batch.
type Outcome struct {
	Event   events.Event
	EventID string
	Err     error
}

// Inserted reports whether the event reached the calendar.
func (o Outcome) Inserted() bool {
	return o.EventID != ""
}

// Failure describes an event that was not inserted.
type Failure struct {
	Event string `json:"event"`
	Error string `json:"error"`
}

// Result is the outcome of a batch insert.
type Result struct {
	State       State
	Outcomes    []Outcome
	Refreshed   bool
	AccessToken string
}

// EventIDs returns the calendar IDs of inserted events in input order.
func (r *Result) EventIDs() []string {
	ids := make([]string, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.Inserted() {
			ids = append(ids, o.EventID)
		}
	}
	return ids
}

// Failures returns one entry per event that was not inserted.
func (r *Result) Failures() []Failure {
	var out []Failure
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, Failure{Event: o.Event.Title, Error: o.Err.Error()})
		}
	}
	return out
}

// Writer inserts batches of events.
type Writer struct {
	inserter  Inserter
	refresher TokenRefresher
	timeZone  string
	logger    *slog.Logger
}

// NewWriter creates a Writer. A nil refresher means expired tokens cannot be renewed.
func NewWriter(inserter Inserter, refresher TokenRefresher, timeZone string, logger *slog.Logger) *Writer {
	return &Writer{
		inserter:  inserter,
		refresher: refresher,
		timeZone:  timeZone,
		logger:    logger.With("system", "calendar"),
	}
}

// Insert writes evts one at a time. When the provider rejects the access
// token and a refresh token is available, the token is refreshed once and
// the batch resumes from the top, skipping events already inserted.
// Returns ErrAuthExpired when authorization cannot be restored and
// ErrInsertFailed when no event was inserted.
func (w *Writer) Insert(ctx context.Context, accessToken, refreshToken string, evts []events.Event) (*Result, error) {
	if len(evts) == 0 {
		return nil, ErrNoEvents
	}
	if accessToken == "" {
		return nil, ErrNoAccessToken
	}

	res := &Result{
		State:       StatePending,
		Outcomes:    make([]Outcome, len(evts)),
		AccessToken: accessToken,
	}
	for i, e := range evts {
		res.Outcomes[i].Event = e
	}

	for attempt := 0; ; attempt++ {
		res.State = StateInserting

		authErr := w.insertPending(ctx, res)
		if authErr == nil {
			break
		}

		if refreshToken == "" || w.refresher == nil || attempt >= maxAuthRetries {
			res.State = StateFailed
			clearIDs(res)
			return res, fmt.Errorf("%w: %w", ErrAuthExpired, authErr)
		}

		res.State = StateRefreshingToken
		w.logger.InfoContext(ctx, "access token rejected, refreshing", "attempt", attempt+1)

		token, err := w.refresher.Refresh(ctx, refreshToken)
		if err != nil {
			res.State = StateFailed
			clearIDs(res)
			return res, fmt.Errorf("%w: refresh: %w", ErrAuthExpired, err)
		}
		res.AccessToken = token
		res.Refreshed = true
	}

	inserted := len(res.EventIDs())
	failures := res.Failures()

	switch {
	case len(failures) == 0:
		res.State = StateSucceeded
	case inserted > 0:
		res.State = StatePartiallySucceeded
		w.logger.WarnContext(ctx, "some events not inserted", "inserted", inserted, "failed", len(failures))
	default:
		res.State = StateFailed
		reasons := make([]string, len(failures))
		for i, f := range failures {
			reasons[i] = f.Event + ": " + f.Error
		}
		return res, fmt.Errorf("%w: %s", ErrInsertFailed, strings.Join(reasons, "; "))
	}

	w.logger.InfoContext(ctx, "events inserted",
		"inserted", inserted,
		"failed", len(failures),
		"refreshed", res.Refreshed,
	)
	return res, nil
}

// insertPending attempts every outcome not yet inserted. It stops at the
// first authorization failure and returns it; other failures are recorded
// on the outcome and the batch continues.
func (w *Writer) insertPending(ctx context.Context, res *Result) error {
	for i := range res.Outcomes {
		o := &res.Outcomes[i]
		if o.Inserted() {
			continue
		}
		o.Err = nil

		payload, err := Payload(o.Event, w.timeZone)
		if err != nil {
			o.Err = err
			continue
		}

		id, err := w.inserter.Insert(ctx, res.AccessToken, payload)
		if err != nil {
			if IsAuthError(err) {
				o.Err = err
				return err
			}
			w.logger.WarnContext(ctx, "event not inserted", "title", o.Event.Title, "error", err)
			o.Err = err
			continue
		}
		o.EventID = id
	}
	return nil
}

// IsAuthError reports whether err means the access token was rejected.
func IsAuthError(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 401 {
		return true
	}
	return strings.Contains(err.Error(), "invalid_grant")
}

// clearIDs discards inserted IDs so an auth failure reports none.
func clearIDs(res *Result) {
	for i := range res.Outcomes {
		res.Outcomes[i].EventID = ""
	}
}
