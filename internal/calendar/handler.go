package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/syllascan/internal/events"
	"github.com/JaimeStill/syllascan/internal/history"
	"github.com/JaimeStill/syllascan/pkg/auth"
	"github.com/JaimeStill/syllascan/pkg/handlers"
	"github.com/JaimeStill/syllascan/pkg/routes"
)

// Token cookies set by the browser's OAuth flow.
const (
	CookieAccessToken  = "access_token"
	CookieRefreshToken = "refresh_token"
	accessTokenMaxAge  = time.Hour
)

// Recorder persists history for processed source files.
type Recorder interface {
	Create(ctx context.Context, cmd history.CreateCommand) (*history.Record, error)
}

// InsertRequest is the body of POST /calendar/events.
type InsertRequest struct {
	Events []events.Event `json:"events"`
}

// InsertResponse is the body of a calendar insert response.
type InsertResponse struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	EventIDs []string  `json:"eventIds"`
	Errors   []Failure `json:"errors,omitempty"`
}

// Handler provides the calendar insert endpoint.
type Handler struct {
	writer   *Writer
	recorder Recorder
	logger   *slog.Logger
}

// NewHandler creates a Handler. recorder may be nil to skip history.
func NewHandler(writer *Writer, recorder Recorder, logger *slog.Logger) *Handler {
	return &Handler{
		writer:   writer,
		recorder: recorder,
		logger:   logger.With("handler", "calendar"),
	}
}

// Routes returns the route group for calendar endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/calendar",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/events", Handler: h.Insert},
		},
	}
}

// Insert adds the reviewed events to the caller's calendar.
func (h *Handler) Insert(w http.ResponseWriter, r *http.Request) {
	accessToken, refreshToken := tokens(r)
	if accessToken == "" {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, ErrNoAccessToken)
		return
	}

	var req InsertRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if len(req.Events) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoEvents)
		return
	}

	res, err := h.writer.Insert(r.Context(), accessToken, refreshToken, req.Events)

	if res != nil && res.Refreshed && !errors.Is(err, ErrAuthExpired) {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieAccessToken,
			Value:    res.AccessToken,
			Path:     "/",
			MaxAge:   int(accessTokenMaxAge.Seconds()),
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
	}

	if res != nil && !errors.Is(err, ErrAuthExpired) {
		h.recordHistory(r, res)
	}

	if err != nil {
		status := MapHTTPStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger.ErrorContext(r.Context(), "calendar insert failed", "error", err)
		} else {
			h.logger.WarnContext(r.Context(), "calendar insert rejected", "error", err)
		}

		resp := map[string]any{
			"success":  false,
			"error":    err.Error(),
			"eventIds": []string{},
		}
		if res != nil && errors.Is(err, ErrInsertFailed) {
			resp["errors"] = res.Failures()
		}
		handlers.RespondJSON(w, status, resp)
		return
	}

	ids := res.EventIDs()
	handlers.RespondJSON(w, http.StatusOK, InsertResponse{
		Success:  true,
		Message:  fmt.Sprintf("Successfully added %d events to Google Calendar", len(ids)),
		EventIDs: ids,
		Errors:   res.Failures(),
	})
}

type fileTally struct {
	fileType string
	key      string
	total    int
	inserted int
}

// recordHistory writes one record per distinct source file when the
// caller is identified. Failures are logged only.
func (h *Handler) recordHistory(r *http.Request, res *Result) {
	caller, ok := auth.FromContext(r.Context())
	if !ok || h.recorder == nil {
		return
	}

	var order []string
	tallies := make(map[string]*fileTally)

	for _, o := range res.Outcomes {
		name := o.Event.SourceFile
		if name == "" {
			continue
		}
		t, seen := tallies[name]
		if !seen {
			t = &fileTally{}
			tallies[name] = t
			order = append(order, name)
		}
		t.total++
		if o.Inserted() {
			t.inserted++
		}
		if t.fileType == "" {
			t.fileType = o.Event.SourceFileType
		}
		if t.key == "" {
			t.key = o.Event.SourceKey
		}
	}

	for _, name := range order {
		t := tallies[name]
		cmd := history.CreateCommand{
			UserID:     caller.UserID,
			FileName:   name,
			FileType:   t.fileType,
			EventCount: t.inserted,
			Status:     history.StatusFor(t.inserted, t.total),
			StorageKey: t.key,
		}
		if _, err := h.recorder.Create(r.Context(), cmd); err != nil {
			h.logger.ErrorContext(r.Context(), "history not recorded", "file", name, "error", err)
		}
	}
}

// tokens reads the access token from the bearer header or cookie and the
// refresh token from its cookie.
func tokens(r *http.Request) (string, string) {
	access := auth.BearerToken(r)
	if access == "" {
		if c, err := r.Cookie(CookieAccessToken); err == nil {
			access = c.Value
		}
	}

	var refresh string
	if c, err := r.Cookie(CookieRefreshToken); err == nil {
		refresh = c.Value
	}
	return access, refresh
}
