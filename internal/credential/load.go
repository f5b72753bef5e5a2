package credential

import (
	"errors"
	"fmt"

	"github.com/flight-search/flight-gateway/internal/config"
)

// FromConfig builds a store holding the credentials of every enabled provider.
// Missing credentials for an enabled provider are reported together and are fatal at startup.
func FromConfig(cfg *config.Config) (*Store, error) {
	store := NewStore()
	var errs []error

	for _, name := range cfg.Gateway.EnabledProviders {
		var err error
		switch name {
		case config.ProviderSkyscanner:
			err = store.PutKey(name, KeyCredential{APIKey: cfg.Skyscanner.APIKey, APIHost: cfg.Skyscanner.APIHost})
		case config.ProviderGoogleFlights:
			err = store.PutKey(name, KeyCredential{APIKey: cfg.GoogleFlights.APIKey, APIHost: cfg.GoogleFlights.APIHost})
		case config.ProviderAmadeus:
			err = store.PutClient(name, ClientCredential{ClientID: cfg.Amadeus.ClientID, ClientSecret: cfg.Amadeus.ClientSecret})
		default:
			err = fmt.Errorf("%s: no credential scheme", name)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	return store, nil
}
