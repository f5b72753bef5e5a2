package upstream

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/flight-search/flight-gateway/internal/domain"
)

// ResolverConfig describes a provider's auto-complete endpoint.
type ResolverConfig struct {
	// Path of the auto-complete endpoint.
	Path string

	// QueryParam carries the free-text city name.
	QueryParam string

	// ListField names the object field holding the candidates.
	// Empty means the body itself is the candidate array.
	ListField string

	// CodeField names the IATA code field of a candidate.
	CodeField string

	// Extra holds fixed query parameters sent with every lookup.
	Extra url.Values
}

// Resolver maps city names to IATA codes through an auto-complete endpoint.
// The first candidate wins.
type Resolver struct {
	client *Client
	cfg    ResolverConfig
}

// NewResolver creates a resolver issuing lookups through client.
func NewResolver(client *Client, cfg ResolverConfig) *Resolver {
	if cfg.QueryParam == "" {
		cfg.QueryParam = "query"
	}
	if cfg.CodeField == "" {
		cfg.CodeField = "iata"
	}
	return &Resolver{client: client, cfg: cfg}
}

// Resolve implements domain.LocationResolver.
func (r *Resolver) Resolve(ctx context.Context, city string) (string, error) {
	query := url.Values{}
	for k, v := range r.cfg.Extra {
		query[k] = append([]string(nil), v...)
	}
	query.Set(r.cfg.QueryParam, city)

	resp, err := r.client.Do(ctx, Request{Path: r.cfg.Path, Query: query})
	if err != nil {
		return "", err
	}
	if err := MapStatus(resp.Status, resp.Body); err != nil {
		return "", attribute(err, r.client.Provider())
	}

	code, ok := r.firstCode(resp.Body)
	if !ok {
		return "", domain.NewResolutionFailed(city).WithProvider(r.client.Provider())
	}
	return code, nil
}

func (r *Resolver) firstCode(body []byte) (string, bool) {
	list := json.RawMessage(body)
	if r.cfg.ListField != "" {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			return "", false
		}
		list = fields[r.cfg.ListField]
	}

	var candidates []map[string]json.RawMessage
	if err := json.Unmarshal(list, &candidates); err != nil || len(candidates) == 0 {
		return "", false
	}

	var code string
	if err := json.Unmarshal(candidates[0][r.cfg.CodeField], &code); err != nil {
		return "", false
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if !domain.IsIATACode(code) {
		return "", false
	}
	return code, true
}
