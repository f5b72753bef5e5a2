// Package main is the entry point for the flight search gateway.
//
//	@title						Flight Search Gateway API
//	@version					1.0.0
//	@description				A gateway that resolves cities to airport codes and forwards one-way flight searches to a configured provider.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/flight-search/flight-gateway/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Import generated docs for swagger
	_ "github.com/flight-search/flight-gateway/docs"

	"github.com/flight-search/flight-gateway/internal/adapter/provider"
	"github.com/flight-search/flight-gateway/internal/app"
	"github.com/flight-search/flight-gateway/internal/config"
	"github.com/flight-search/flight-gateway/internal/infrastructure/logger"
)

const (
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: logger.DefaultConfig().ServiceName,
	})

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("default_provider", cfg.Gateway.DefaultProvider).
		Strs("enabled_providers", cfg.Gateway.EnabledProviders).
		Msg("Configuration loaded")

	a, err := app.New(cfg, log, provider.Options{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize gateway")
	}

	// Start server with graceful shutdown
	go func() {
		log.Info().Str("address", a.Server.Addr).Msg("Starting server")
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	gracefulShutdown(a.Server, log)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(srv *http.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
