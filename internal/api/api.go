// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/syllascan/internal/config"
	"github.com/JaimeStill/syllascan/internal/infrastructure"
	"github.com/JaimeStill/syllascan/pkg/auth"
	"github.com/JaimeStill/syllascan/pkg/middleware"
	"github.com/JaimeStill/syllascan/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// Identity resolution runs inside CORS so preflight requests never need a token.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(cfg, runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.Recover(runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(auth.Identify(runtime.Identity, runtime.Logger))

	return m, nil
}
