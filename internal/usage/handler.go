package usage

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/syllascan/pkg/auth"
	"github.com/JaimeStill/syllascan/pkg/handlers"
	"github.com/JaimeStill/syllascan/pkg/routes"
)

// Handler provides the settings endpoints for usage and custom keys.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// KeyRequest is the body of POST /settings/api-key.
type KeyRequest struct {
	APIKey string `json:"apiKey"`
}

// NewHandler creates a Handler for the given system.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "usage"),
	}
}

// Routes returns the route group for settings endpoints. Every route requires an identity.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/settings",
		Guards: []routes.Guard{auth.Require(h.logger)},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/usage", Handler: h.Usage},
			{Method: "POST", Pattern: "/api-key", Handler: h.SaveKey},
			{Method: "DELETE", Pattern: "/api-key", Handler: h.ClearKey},
		},
	}
}

// Usage returns the caller's usage summary.
func (h *Handler) Usage(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	s, err := h.sys.Summary(r.Context(), id.UserID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, s)
}

// SaveKey stores the caller's custom inference key.
func (h *Handler) SaveKey(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	var req KeyRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.SaveKey(r.Context(), id.UserID, id.Email, req.APIKey); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "API key saved",
	})
}

// ClearKey removes the caller's custom inference key.
func (h *Handler) ClearKey(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	if err := h.sys.ClearKey(r.Context(), id.UserID); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "API key removed",
	})
}
