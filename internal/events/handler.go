package events

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/syllascan/pkg/handlers"
	"github.com/JaimeStill/syllascan/pkg/routes"
)

// ExportFilename is the attachment name of exported calendars.
const ExportFilename = "syllabus-events.ics"

// ExportRequest is the body of the calendar export endpoint.
type ExportRequest struct {
	Events []Event `json:"events"`
}

// Handler provides HTTP endpoints for event utilities that need no storage.
type Handler struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewHandler creates a Handler with the given logger.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger.With("handler", "events"),
		now:    time.Now,
	}
}

// Routes returns the route group definition for event endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/events",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/ics", Handler: h.Export},
		},
	}
}

// Export renders the posted events as an iCalendar attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if len(req.Events) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoEvents)
		return
	}

	body, err := Calendar(req.Events, h.now())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.logger.Info("calendar exported", "events", len(req.Events))

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+ExportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
