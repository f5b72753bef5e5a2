package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/flight-search/flight-gateway/internal/domain"
	"github.com/flight-search/flight-gateway/internal/infrastructure/logger"
)

// DefaultSearchTimeout bounds a whole Search call when no timeout is configured.
const DefaultSearchTimeout = 20 * time.Second

// FlightGateway is the single entry point for flight searches.
type FlightGateway interface {
	// Search validates the query, resolves locations according to the selected
	// adapter's policy and delegates to the adapter. Failures are *domain.Error.
	Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResult, error)

	// Providers returns the names of the configured adapters.
	Providers() []string

	// DefaultProvider returns the adapter used when a query names none.
	DefaultProvider() string
}

// Config contains configuration options for the gateway.
type Config struct {
	DefaultProvider string
	SearchTimeout   time.Duration
}

type gateway struct {
	registry        *domain.ProviderRegistry
	defaultProvider string
	timeout         time.Duration
	log             *logger.Logger
}

// NewGateway creates a gateway over the registered adapters.
// A request-scoped logger found in the context takes precedence over log.
func NewGateway(registry *domain.ProviderRegistry, cfg Config, log *logger.Logger) FlightGateway {
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = DefaultSearchTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &gateway{
		registry:        registry,
		defaultProvider: cfg.DefaultProvider,
		timeout:         cfg.SearchTimeout,
		log:             log,
	}
}

func (g *gateway) Providers() []string {
	return g.registry.Names()
}

func (g *gateway) DefaultProvider() string {
	return g.defaultProvider
}

// Search implements FlightGateway.Search.
func (g *gateway) Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResult, error) {
	start := time.Now()
	query = query.Normalize()
	if query.Provider == "" {
		query.Provider = g.defaultProvider
	}

	log := logger.FromContext(ctx, g.log).WithProvider(query.Provider)
	log.Info().
		Str("origin", query.Origin).
		Str("destination", query.Destination).
		Str("date", query.Date).
		Msg("Flight search")

	result, err := g.search(ctx, query)
	if err != nil {
		gwErr := domain.AsError(err)
		g.logFailure(log, query, gwErr, time.Since(start))
		return nil, gwErr
	}
	return result, nil
}

func (g *gateway) search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	binding, ok := g.registry.Get(query.Provider)
	if !ok {
		return nil, domain.NewInvalidInput("unknown provider %q", query.Provider)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resolved, err := g.resolve(ctx, binding, query)
	if err != nil {
		return nil, deadlineAware(ctx, err)
	}

	result, err := g.invoke(ctx, binding, resolved)
	if err != nil {
		return nil, deadlineAware(ctx, err)
	}
	return result, nil
}

// resolve turns the query into a ResolvedQuery. Origin is resolved before destination.
func (g *gateway) resolve(ctx context.Context, b domain.Binding, query domain.SearchQuery) (domain.ResolvedQuery, error) {
	origin, err := g.resolveOne(ctx, b, "origin", query.Origin)
	if err != nil {
		return domain.ResolvedQuery{}, err
	}
	destination, err := g.resolveOne(ctx, b, "destination", query.Destination)
	if err != nil {
		return domain.ResolvedQuery{}, err
	}
	return domain.ResolvedQuery{
		OriginCode:      origin,
		DestinationCode: destination,
		Date:            query.Date,
	}, nil
}

func (g *gateway) resolveOne(ctx context.Context, b domain.Binding, field, value string) (string, error) {
	if !b.Policy.NeedsLookup(value) {
		return b.Policy.NormalizeCode(field, value)
	}
	if b.Resolver == nil {
		return "", domain.NewResolutionFailed(value).WithProvider(b.Name())
	}

	code, err := b.Resolver.Resolve(ctx, value)
	if err != nil {
		return "", err
	}
	if !domain.IsIATACode(code) {
		return "", domain.NewResolutionFailed(value).WithProvider(b.Name())
	}
	return code, nil
}

// invoke calls the adapter, converting a panic into an UpstreamError.
func (g *gateway) invoke(ctx context.Context, b domain.Binding, query domain.ResolvedQuery) (result *domain.SearchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = domain.NewUpstreamError(0, "", fmt.Errorf("provider panic: %v", r)).WithProvider(b.Name())
		}
	}()

	result, err = b.Provider.Search(ctx, query)
	if err == nil && result == nil {
		err = domain.NewUpstreamError(0, domain.MsgMalformed, errors.New("provider returned no result")).WithProvider(b.Name())
	}
	return result, err
}

// deadlineAware reports any failure after the search deadline passed as Timeout.
func deadlineAware(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && !domain.IsKind(err, domain.KindTimeout) {
		return domain.NewTimeout(err)
	}
	return err
}

func (g *gateway) logFailure(log *logger.Logger, query domain.SearchQuery, err *domain.Error, elapsed time.Duration) {
	var event *zerolog.Event
	if err.Kind.ClientCaused() {
		event = log.Warn()
	} else {
		event = log.Error()
	}

	event = event.
		Str("origin", query.Origin).
		Str("destination", query.Destination).
		Str("date", query.Date).
		Str("kind", string(err.Kind)).
		Int64("duration_ms", elapsed.Milliseconds())
	if err.UpstreamStatus != 0 {
		event = event.Int("upstream_status", err.UpstreamStatus)
	}
	event.Err(err).Msg("Flight search failed")
}
