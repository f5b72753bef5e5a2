package integration

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/flight-search/flight-gateway/internal/adapter/http/response"
	"github.com/flight-search/flight-gateway/internal/config"
	"github.com/flight-search/flight-gateway/test/mock"
)

func TestConcurrent_AmadeusSharesOneTokenExchange(t *testing.T) {
	const callers = 20

	ts := NewTestServer(t, config.ProviderAmadeus)
	ts.Upstream.WithDelay(mock.AmadeusTokenPath, 100*time.Millisecond)

	var g errgroup.Group
	codes := make([]int, callers)
	for i := 0; i < callers; i++ {
		g.Go(func() error {
			resp := ts.Search("JFK", "LHR", "2026-06-01", "")
			codes[i] = resp.Code
			if resp.Code != http.StatusOK {
				return fmt.Errorf("caller %d: status %d: %s", i, resp.Code, resp.Body)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
	assert.Equal(t, 1, ts.Upstream.CallCount(mock.AmadeusTokenPath))
	assert.Equal(t, callers, ts.Upstream.CallCount(mock.AmadeusSearchPath))
	for _, call := range ts.Upstream.Calls(mock.AmadeusSearchPath) {
		assert.Equal(t, "Bearer fake-amadeus-token", call.Authorization)
	}
}

func TestConcurrent_RejectedTokenIsReplaced(t *testing.T) {
	ts := NewTestServer(t, config.ProviderAmadeus)

	first := ts.Search("JFK", "LHR", "2026-06-01", "")
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, 1, ts.Upstream.CallCount(mock.AmadeusTokenPath))

	offers := ts.Upstream.Body(mock.AmadeusSearchPath)
	ts.Upstream.Reply(mock.AmadeusSearchPath, http.StatusUnauthorized, `{"errors":[{"status":401,"title":"Invalid access token"}]}`)

	rejected := ts.Search("JFK", "LHR", "2026-06-01", "")
	assert.Equal(t, http.StatusUnauthorized, rejected.Code)
	assert.Equal(t, "Invalid access token", rejected.ParseError(t).Error)

	ts.Upstream.Set(mock.AmadeusSearchPath, mock.Route{Status: http.StatusOK, Body: offers})

	recovered := ts.Search("JFK", "LHR", "2026-06-01", "")
	assert.Equal(t, http.StatusOK, recovered.Code)
	assert.Equal(t, 2, ts.Upstream.CallCount(mock.AmadeusTokenPath))
}

func TestConcurrent_TokenFailureSharedByWaiters(t *testing.T) {
	const callers = 10

	ts := NewTestServer(t, config.ProviderAmadeus)
	ts.Upstream.Set(mock.AmadeusTokenPath, mock.Route{
		Status: http.StatusUnauthorized,
		Body:   []byte(`{"error":"invalid_client","error_description":"Client credentials are invalid"}`),
		Delay:  100 * time.Millisecond,
	})

	var g errgroup.Group
	for i := 0; i < callers; i++ {
		g.Go(func() error {
			resp := ts.Search("JFK", "LHR", "2026-06-01", "")
			if resp.Code != http.StatusUnauthorized {
				return fmt.Errorf("caller %d: status %d", i, resp.Code)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 1, ts.Upstream.CallCount(mock.AmadeusTokenPath))
	assert.Zero(t, ts.Upstream.CallCount(mock.AmadeusSearchPath))
}

func TestConcurrent_MixedProviders(t *testing.T) {
	ts := NewTestServer(t, config.ProviderSkyscanner, config.ProviderGoogleFlights, config.ProviderAmadeus)
	providers := []string{config.ProviderSkyscanner, config.ProviderGoogleFlights, config.ProviderAmadeus}

	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < 30; i++ {
		provider := providers[i%len(providers)]
		g.Go(func() error {
			resp := ts.Search("JFK", "LHR", "2026-06-01", provider)
			if resp.Code != http.StatusOK {
				return fmt.Errorf("%s: status %d: %s", provider, resp.Code, resp.Body)
			}
			if got := resp.Headers.Get(response.ProviderHeader); got != provider {
				return fmt.Errorf("%s: served by %q", provider, got)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 10, ts.Upstream.CallCount(mock.SkyscannerSearchPath))
	assert.Equal(t, 10, ts.Upstream.CallCount(mock.GoogleSearchPath))
	assert.Equal(t, 10, ts.Upstream.CallCount(mock.AmadeusSearchPath))
	assert.Equal(t, 1, ts.Upstream.CallCount(mock.AmadeusTokenPath))
}

func TestConcurrent_SlowSearchDoesNotBlockOthers(t *testing.T) {
	ts := NewTestServerWithConfig(t, func(cfg *config.Config) {
		cfg.Gateway.SearchTimeout = 300 * time.Millisecond
	}, config.ProviderSkyscanner, config.ProviderGoogleFlights)
	ts.Upstream.WithDelay(mock.SkyscannerSearchPath, 2*time.Second)

	var g errgroup.Group
	var slow, fast Response
	g.Go(func() error {
		slow = ts.Search("JFK", "LHR", "2026-06-01", config.ProviderSkyscanner)
		return nil
	})
	g.Go(func() error {
		fast = ts.Search("CDG", "AUS", "2026-06-01", config.ProviderGoogleFlights)
		return nil
	})
	require.NoError(t, g.Wait())

	assert.Equal(t, http.StatusGatewayTimeout, slow.Code)
	assert.Equal(t, http.StatusOK, fast.Code)
}
