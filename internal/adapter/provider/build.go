// Package provider assembles the configured upstream adapters into a registry.
package provider

import (
	"fmt"
	"net/http"

	"github.com/flight-search/flight-gateway/internal/adapter/provider/amadeus"
	"github.com/flight-search/flight-gateway/internal/adapter/provider/googleflights"
	"github.com/flight-search/flight-gateway/internal/adapter/provider/rapidapi"
	"github.com/flight-search/flight-gateway/internal/adapter/provider/skyscanner"
	"github.com/flight-search/flight-gateway/internal/adapter/provider/upstream"
	"github.com/flight-search/flight-gateway/internal/config"
	"github.com/flight-search/flight-gateway/internal/credential"
	"github.com/flight-search/flight-gateway/internal/domain"
	"github.com/flight-search/flight-gateway/internal/infrastructure/timeutil"
)

// Options carries the shared outbound dependencies.
type Options struct {
	// HTTPClient is shared by every adapter; nil creates one client with the configured timeout.
	HTTPClient upstream.Doer

	// Clock drives token expiry; nil uses the system clock.
	Clock timeutil.Clock
}

// BuildRegistry creates a binding for every enabled provider.
// Credentials must already be loaded into store.
func BuildRegistry(cfg *config.Config, store *credential.Store, opts Options) (*domain.ProviderRegistry, error) {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: cfg.Gateway.UpstreamTimeout}
	}

	registry := domain.NewProviderRegistry()
	for _, name := range cfg.Gateway.EnabledProviders {
		binding, err := build(name, cfg, store, opts)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", name, err)
		}
		registry.Register(binding)
	}
	return registry, nil
}

func build(name string, cfg *config.Config, store *credential.Store, opts Options) (domain.Binding, error) {
	timeout := cfg.Gateway.UpstreamTimeout

	switch name {
	case config.ProviderSkyscanner, config.ProviderGoogleFlights:
		pc, newAdapter := cfg.Skyscanner, skyscanner.New
		if name == config.ProviderGoogleFlights {
			pc, newAdapter = cfg.GoogleFlights, googleflights.New
		}
		cred, err := store.Key(name)
		if err != nil {
			return domain.Binding{}, err
		}
		adapter := newAdapter(rapidapi.Config{
			Credential: cred,
			BaseURL:    pc.BaseURL,
			HTTPClient: opts.HTTPClient,
			Timeout:    timeout,
		})
		return domain.Binding{
			Provider: adapter,
			Resolver: adapter.Resolver(),
			Policy:   domain.ResolutionPolicy(pc.ResolutionPolicy),
		}, nil

	case config.ProviderAmadeus:
		cred, err := store.Client(name)
		if err != nil {
			return domain.Binding{}, err
		}
		adapter := amadeus.New(amadeus.Config{
			Credential:   cred,
			BaseURL:      cfg.Amadeus.BaseURL,
			HTTPClient:   opts.HTTPClient,
			Timeout:      timeout,
			ExpiryMargin: cfg.Amadeus.TokenExpiryMargin,
			Clock:        opts.Clock,
		})
		return domain.Binding{
			Provider: adapter,
			Resolver: adapter.Resolver(),
			Policy:   domain.ResolutionPolicy(cfg.Amadeus.ResolutionPolicy),
		}, nil

	default:
		return domain.Binding{}, fmt.Errorf("unknown provider %q", name)
	}
}
