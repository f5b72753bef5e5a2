// Package app wires configuration, credentials, adapters and the HTTP layer
// into a runnable server.
package app

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	flighthttp "github.com/flight-search/flight-gateway/internal/adapter/http"
	"github.com/flight-search/flight-gateway/internal/adapter/http/middleware"
	"github.com/flight-search/flight-gateway/internal/adapter/provider"
	"github.com/flight-search/flight-gateway/internal/config"
	"github.com/flight-search/flight-gateway/internal/credential"
	"github.com/flight-search/flight-gateway/internal/infrastructure/logger"
	"github.com/flight-search/flight-gateway/internal/usecase"
)

// App holds the assembled server components.
type App struct {
	Config  *config.Config
	Gateway usecase.FlightGateway
	Echo    *echo.Echo
	Server  *http.Server
}

// New loads credentials for every enabled provider, builds the adapters and
// returns an App ready to serve. Missing credentials are an error.
func New(cfg *config.Config, log *logger.Logger, opts provider.Options) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}

	store, err := credential.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Strs("providers", store.Providers()).Msg("Credentials loaded")

	registry, err := provider.BuildRegistry(cfg, store, opts)
	if err != nil {
		return nil, fmt.Errorf("build providers: %w", err)
	}

	gw := usecase.NewGateway(registry, usecase.Config{
		DefaultProvider: cfg.Gateway.DefaultProvider,
		SearchTimeout:   cfg.Gateway.SearchTimeout,
	}, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.IsDevelopment()
	e.HTTPErrorHandler = flighthttp.ErrorHandler

	middleware.Setup(e, log.Logger)
	flighthttp.RegisterRoutes(e, flighthttp.NewFlightHandler(gw))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return &App{
		Config:  cfg,
		Gateway: gw,
		Echo:    e,
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      middleware.CORS(e, cfg.Server.CORSOrigins),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}, nil
}

// Handler returns the full HTTP handler chain, CORS included.
func (a *App) Handler() http.Handler {
	return a.Server.Handler
}
