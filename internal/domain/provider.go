// Package domain contains the provider-agnostic types of the flight search gateway:
// queries, results, normalized errors and the adapter contracts.
package domain

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
)

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=domain

// FlightProvider is implemented by every upstream adapter.
type FlightProvider interface {
	// Name returns the unique adapter name (e.g., "skyscanner").
	Name() string

	// Search issues the upstream search for an already resolved query.
	// Failures are returned as *Error.
	Search(ctx context.Context, query ResolvedQuery) (*SearchResult, error)
}

// LocationResolver maps a free-text city name to an IATA code.
type LocationResolver interface {
	// Resolve returns the first candidate's IATA code for the city.
	Resolve(ctx context.Context, city string) (string, error)
}

// SearchResult is the validated, otherwise opaque upstream payload.
type SearchResult struct {
	// Provider is the name of the adapter that produced the payload
	Provider string `json:"provider"`

	// Payload is the upstream body, passed through unmodified
	Payload json.RawMessage `json:"payload"`
}

// Binding ties an adapter to the resolution setup it is configured with.
type Binding struct {
	Provider FlightProvider
	Resolver LocationResolver
	Policy   ResolutionPolicy
}

// Name returns the bound provider's name.
func (b Binding) Name() string {
	if b.Provider == nil {
		return ""
	}
	return b.Provider.Name()
}

// ProviderRegistry holds the configured adapter bindings by name.
type ProviderRegistry struct {
	mu       sync.RWMutex
	bindings map[string]Binding
}

// NewProviderRegistry creates an empty registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{bindings: make(map[string]Binding)}
}

// Register adds or replaces a binding. Bindings without a provider are ignored.
func (r *ProviderRegistry) Register(b Binding) {
	if b.Provider == nil {
		return
	}
	if !b.Policy.Valid() {
		b.Policy = PolicyStrict
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[b.Name()] = b
}

// Get returns the binding for name.
func (r *ProviderRegistry) Get(name string) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[name]
	return b, ok
}

// Names returns the registered adapter names in sorted order.
func (r *ProviderRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.bindings))
	for name := range r.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered bindings.
func (r *ProviderRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bindings)
}
