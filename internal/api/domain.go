package api

import (
	"golang.org/x/oauth2/google"

	"github.com/JaimeStill/syllascan/internal/calendar"
	"github.com/JaimeStill/syllascan/internal/config"
	"github.com/JaimeStill/syllascan/internal/documents"
	"github.com/JaimeStill/syllascan/internal/events"
	"github.com/JaimeStill/syllascan/internal/extractions"
	"github.com/JaimeStill/syllascan/internal/history"
	"github.com/JaimeStill/syllascan/internal/revisions"
	"github.com/JaimeStill/syllascan/internal/usage"
	"github.com/JaimeStill/syllascan/internal/workflow"
)

// Domain holds all domain systems and handlers that comprise the API.
type Domain struct {
	History     history.System
	Usage       usage.System
	Extractions *extractions.Handler
	Calendar    *calendar.Handler
	Revisions   *revisions.Handler
	Events      *events.Handler
	Account     *AccountHandler
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	historySystem := history.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	usageSystem := usage.New(
		runtime.Database.Connection(),
		runtime.Logger,
		cfg.Extraction.FreeLimit,
	)

	pipeline := &workflow.Runtime{
		Documents: documents.NewNormalizer(nil, runtime.Logger),
		Extractor: workflow.NewExtractor(runtime.Agent, nil, runtime.Logger),
		Events:    events.Normalizer{},
		Logger:    runtime.Logger.With("system", "workflow"),
	}

	extractionsHandler := extractions.NewHandler(
		pipeline,
		usageSystem,
		runtime.Storage,
		extractions.Config{
			Limits: documents.Limits{
				MaxFiles:    cfg.Extraction.MaxFiles,
				MaxFileSize: cfg.Extraction.MaxFileSizeBytes(),
			},
			MaxUploadSize: cfg.API.MaxUploadSizeBytes(),
			RequireAuth:   cfg.Extraction.RequireAuth,
		},
		runtime.Logger,
	)

	writer := calendar.NewWriter(
		calendar.NewGoogleInserter(cfg.Google.CalendarID, cfg.Google.Endpoint),
		calendar.NewRefresher(cfg.Google.ClientID, cfg.Google.ClientSecret, google.Endpoint),
		cfg.Google.TimeZone,
		runtime.Logger,
	)

	reviser := revisions.NewReviser(runtime.Agent, nil, runtime.Logger)

	return &Domain{
		History:     historySystem,
		Usage:       usageSystem,
		Extractions: extractionsHandler,
		Calendar:    calendar.NewHandler(writer, historySystem, runtime.Logger),
		Revisions:   revisions.NewHandler(reviser, usageSystem, runtime.Logger),
		Events:      events.NewHandler(runtime.Logger),
		Account:     NewAccountHandler(usageSystem, historySystem, runtime.Logger),
	}
}
