package api

import (
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/syllascan/internal/history"
	"github.com/JaimeStill/syllascan/internal/usage"
	"github.com/JaimeStill/syllascan/pkg/auth"
	"github.com/JaimeStill/syllascan/pkg/handlers"
	"github.com/JaimeStill/syllascan/pkg/pagination"
	"github.com/JaimeStill/syllascan/pkg/routes"
)

const recentHistorySize = 5

// AccountSummary combines the caller's usage with their most recent history.
type AccountSummary struct {
	Email   string           `json:"email,omitempty"`
	Usage   usage.Summary    `json:"usage"`
	Recent  []history.Record `json:"recent"`
	Records int              `json:"totalRecords"`
}

// AccountHandler serves the combined account summary.
type AccountHandler struct {
	usage   usage.System
	history history.System
	logger  *slog.Logger
}

// NewAccountHandler creates an AccountHandler over the usage and history systems.
func NewAccountHandler(u usage.System, h history.System, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		usage:   u,
		history: h,
		logger:  logger.With("handler", "account"),
	}
}

// Routes returns the account summary route. It requires an identity.
func (h *AccountHandler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/settings",
		Guards: []routes.Guard{auth.Require(h.logger)},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/account", Handler: h.Summary},
		},
	}
}

// Summary fetches usage and the five most recent history records concurrently.
func (h *AccountHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	var (
		summary usage.Summary
		recent  *pagination.PageResult[history.Record]
	)

	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		var err error
		summary, err = h.usage.Summary(ctx, id.UserID)
		return err
	})

	g.Go(func() error {
		var err error
		recent, err = h.history.List(ctx, id.UserID, pagination.PageRequest{
			Page:     1,
			PageSize: recentHistorySize,
		})
		return err
	})

	if err := g.Wait(); err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	records := recent.Data
	if records == nil {
		records = []history.Record{}
	}

	handlers.RespondJSON(w, http.StatusOK, AccountSummary{
		Email:   id.Email,
		Usage:   summary,
		Recent:  records,
		Records: recent.Total,
	})
}
