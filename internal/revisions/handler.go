package revisions

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/syllascan/internal/usage"
	"github.com/JaimeStill/syllascan/pkg/auth"
	"github.com/JaimeStill/syllascan/pkg/handlers"
	"github.com/JaimeStill/syllascan/pkg/routes"
)

// Keys resolves the caller's inference credential.
type Keys interface {
	Resolve(ctx context.Context, userID string) (usage.Credential, error)
}

// Handler provides the revision endpoint.
type Handler struct {
	reviser *Reviser
	keys    Keys
	logger  *slog.Logger
}

// NewHandler creates a Handler. keys may be nil, in which case the server credential is used.
func NewHandler(reviser *Reviser, keys Keys, logger *slog.Logger) *Handler {
	return &Handler{
		reviser: reviser,
		keys:    keys,
		logger:  logger.With("handler", "revisions"),
	}
}

// Routes returns the route group for the revision endpoint.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/events",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/revise", Handler: h.Revise},
		},
	}
}

// Revise applies a natural language edit to one event. Revisions are not
// metered: a saved custom key is used when present, else the server key.
func (h *Handler) Revise(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	credential := ""
	if caller, ok := auth.FromContext(r.Context()); ok && h.keys != nil {
		cred, err := h.keys.Resolve(r.Context(), caller.UserID)
		switch {
		case errors.Is(err, usage.ErrKeyRequired):
			// no custom key; fall back to the server key
		case err != nil:
			handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
			return
		default:
			credential = cred.Token
		}
	}

	resp, err := h.reviser.Revise(r.Context(), req, credential)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
