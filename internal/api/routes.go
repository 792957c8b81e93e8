package api

import (
	"net/http"

	"github.com/JaimeStill/syllascan/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Extractions.Routes(),
		domain.Calendar.Routes(),
		domain.Revisions.Routes(),
		domain.Events.Routes(),
		domain.History.Handler().Routes(),
		domain.Usage.Handler().Routes(),
		domain.Account.Routes(),
	)

	runtime.Logger.Info("api routes registered")
}
