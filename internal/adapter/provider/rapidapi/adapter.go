// Package rapidapi implements search adapters for providers hosted on RapidAPI,
// authenticated by a static key/host header pair.
package rapidapi

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/flight-search/flight-gateway/internal/adapter/provider/upstream"
	"github.com/flight-search/flight-gateway/internal/credential"
	"github.com/flight-search/flight-gateway/internal/domain"
)

// Header names RapidAPI authenticates with.
const (
	HeaderKey  = "x-rapidapi-key"
	HeaderHost = "x-rapidapi-host"
)

// Fixed search parameters.
const (
	adults   = "1"
	currency = "USD"
)

// Profile maps the normalized query onto one provider's request and response shape.
type Profile struct {
	// Name is the adapter name.
	Name string

	// SearchPath is the one-way search endpoint.
	SearchPath string

	// Query field names for origin, destination and date.
	OriginParam      string
	DestinationParam string
	DateParam        string

	// CurrencyParam defaults to "currency".
	CurrencyParam string

	// Marker is the response field that must hold a non-empty array of offers.
	Marker string

	// Autocomplete describes the provider's location lookup.
	Autocomplete upstream.ResolverConfig
}

// Config carries what an adapter needs to reach its provider.
type Config struct {
	Credential credential.KeyCredential
	BaseURL    string
	HTTPClient upstream.Doer
	Timeout    time.Duration
}

// Adapter is a key-header provider adapter.
type Adapter struct {
	profile Profile
	client  *upstream.Client
}

// New creates an adapter for profile.
// An empty BaseURL defaults to https://<api host>.
func New(profile Profile, cfg Config) *Adapter {
	if profile.CurrencyParam == "" {
		profile.CurrencyParam = "currency"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://" + cfg.Credential.APIHost
	}
	auth := KeyAuthorizer{Credential: cfg.Credential}
	return &Adapter{
		profile: profile,
		client:  upstream.NewClient(profile.Name, baseURL, cfg.HTTPClient, auth, cfg.Timeout),
	}
}

// Name implements domain.FlightProvider.
func (a *Adapter) Name() string {
	return a.profile.Name
}

// Search implements domain.FlightProvider.
func (a *Adapter) Search(ctx context.Context, query domain.ResolvedQuery) (*domain.SearchResult, error) {
	params := url.Values{}
	params.Set(a.profile.OriginParam, query.OriginCode)
	params.Set(a.profile.DestinationParam, query.DestinationCode)
	params.Set(a.profile.DateParam, query.Date)
	params.Set("adults", adults)
	params.Set(a.profile.CurrencyParam, currency)

	return a.client.Search(ctx, upstream.Request{
		Method: http.MethodGet,
		Path:   a.profile.SearchPath,
		Query:  params,
	}, a.profile.Marker)
}

// Resolver returns a location resolver using the provider's auto-complete endpoint
// with the same credentials.
func (a *Adapter) Resolver() *upstream.Resolver {
	return upstream.NewResolver(a.client, a.profile.Autocomplete)
}

// KeyAuthorizer attaches the static RapidAPI key/host pair.
type KeyAuthorizer struct {
	Credential credential.KeyCredential
}

// Authorize implements upstream.Authorizer.
func (k KeyAuthorizer) Authorize(_ context.Context, h http.Header) error {
	h.Set(HeaderKey, k.Credential.APIKey)
	h.Set(HeaderHost, k.Credential.APIHost)
	return nil
}

var (
	_ domain.FlightProvider   = (*Adapter)(nil)
	_ domain.LocationResolver = (*upstream.Resolver)(nil)
	_ upstream.Authorizer     = KeyAuthorizer{}
)
