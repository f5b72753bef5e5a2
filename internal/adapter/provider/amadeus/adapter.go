// Package amadeus implements the Amadeus flight-offers adapter, authenticated with
// OAuth2 client-credential bearer tokens.
package amadeus

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/flight-search/flight-gateway/internal/adapter/provider/oauth"
	"github.com/flight-search/flight-gateway/internal/adapter/provider/upstream"
	"github.com/flight-search/flight-gateway/internal/credential"
	"github.com/flight-search/flight-gateway/internal/domain"
	"github.com/flight-search/flight-gateway/internal/infrastructure/timeutil"
)

// Name is the adapter name.
const Name = "amadeus"

// DefaultBaseURL is the Amadeus self-service test environment.
const DefaultBaseURL = "https://test.api.amadeus.com"

// Endpoints.
const (
	TokenPath     = "/v1/security/oauth2/token"
	SearchPath    = "/v2/shopping/flight-offers"
	LocationsPath = "/v1/reference-data/locations"
)

const maxOffers = "10"

// Config configures the Amadeus adapter.
type Config struct {
	Credential   credential.ClientCredential
	BaseURL      string
	HTTPClient   upstream.Doer
	Timeout      time.Duration
	ExpiryMargin time.Duration
	Clock        timeutil.Clock
}

// Adapter searches Amadeus flight offers.
type Adapter struct {
	tokens *oauth.Manager
	client *upstream.Client
}

// New creates the adapter and its token manager.
func New(cfg Config) *Adapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	tokens := oauth.NewManager(Name, oauth.Config{
		Credential:   cfg.Credential,
		BaseURL:      cfg.BaseURL,
		TokenPath:    TokenPath,
		HTTPClient:   cfg.HTTPClient,
		Timeout:      cfg.Timeout,
		ExpiryMargin: cfg.ExpiryMargin,
		Clock:        cfg.Clock,
	})
	return &Adapter{
		tokens: tokens,
		client: upstream.NewClient(Name, cfg.BaseURL, cfg.HTTPClient, tokens, cfg.Timeout),
	}
}

// Name implements domain.FlightProvider.
func (a *Adapter) Name() string {
	return Name
}

// Search implements domain.FlightProvider.
// A 401 invalidates the token that was used; the next call acquires a fresh one.
func (a *Adapter) Search(ctx context.Context, query domain.ResolvedQuery) (*domain.SearchResult, error) {
	params := url.Values{}
	params.Set("originLocationCode", query.OriginCode)
	params.Set("destinationLocationCode", query.DestinationCode)
	params.Set("departureDate", query.Date)
	params.Set("adults", "1")
	params.Set("currencyCode", "USD")
	params.Set("max", maxOffers)

	return a.client.Search(ctx, upstream.Request{
		Method: http.MethodGet,
		Path:   SearchPath,
		Query:  params,
	}, "data")
}

// Resolver returns a resolver backed by the Amadeus locations endpoint, sharing the adapter's tokens.
func (a *Adapter) Resolver() *upstream.Resolver {
	return upstream.NewResolver(a.client, upstream.ResolverConfig{
		Path:       LocationsPath,
		QueryParam: "keyword",
		ListField:  "data",
		CodeField:  "iataCode",
		Extra:      url.Values{"subType": {"AIRPORT,CITY"}},
	})
}

// Tokens exposes the adapter's token manager.
func (a *Adapter) Tokens() *oauth.Manager {
	return a.tokens
}

var _ domain.FlightProvider = (*Adapter)(nil)
