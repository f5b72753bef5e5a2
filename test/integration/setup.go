// Package integration provides helpers and integration tests for the flight gateway.
// Integration tests run the full HTTP stack, the gateway and the real adapters
// against a fake upstream API.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-gateway/internal/adapter/http/response"
	"github.com/flight-search/flight-gateway/internal/adapter/provider"
	"github.com/flight-search/flight-gateway/internal/app"
	"github.com/flight-search/flight-gateway/internal/config"
	"github.com/flight-search/flight-gateway/internal/infrastructure/logger"
	"github.com/flight-search/flight-gateway/test/mock"
	"github.com/flight-search/flight-gateway/test/testutil"
)

// TestServer wraps an assembled App and the fake upstream behind it.
type TestServer struct {
	App      *app.App
	Upstream *mock.Upstream
	Logs     *bytes.Buffer
}

// NewTestServer builds the gateway with every listed provider pointed at a fresh fake upstream.
func NewTestServer(t *testing.T, providers ...string) *TestServer {
	t.Helper()
	return NewTestServerWithConfig(t, nil, providers...)
}

// NewTestServerWithConfig is NewTestServer with a hook to adjust the configuration.
func NewTestServerWithConfig(t *testing.T, adjust func(*config.Config), providers ...string) *TestServer {
	t.Helper()

	upstream := mock.NewUpstream(t)
	cfg := testutil.Config(upstream.URL(), providers...)
	if adjust != nil {
		adjust(cfg)
	}

	var logs bytes.Buffer
	log := logger.NewWithOutput(logger.Config{Level: "debug", Format: "json", ServiceName: "flight-gateway"}, &syncWriter{buf: &logs})

	a, err := app.New(cfg, log, provider.Options{HTTPClient: upstream.Server.Client()})
	require.NoError(t, err)

	return &TestServer{App: a, Upstream: upstream, Logs: &logs}
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a request through the full handler chain.
func (ts *TestServer) Do(req *http.Request) Response {
	rec := httptest.NewRecorder()
	ts.App.Handler().ServeHTTP(rec, req)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// Get executes a GET request.
func (ts *TestServer) Get(target string) Response {
	return ts.Do(httptest.NewRequest(http.MethodGet, target, nil))
}

// Search calls the versioned search endpoint with the given parameters.
func (ts *TestServer) Search(origin, destination, date, provider string) Response {
	return ts.Get(SearchURL("/api/v1/flights/search", origin, destination, date, provider))
}

// SearchURL builds a search URL, leaving out empty parameters.
func SearchURL(path, origin, destination, date, provider string) string {
	q := url.Values{}
	for k, v := range map[string]string{"origin": origin, "destination": destination, "date": date, "provider": provider} {
		if v != "" {
			q.Set(k, v)
		}
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// ParseError parses the response body as an error body.
func (r *Response) ParseError(t *testing.T) response.ErrorBody {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(r.Body, &body), "body: %s", r.Body)
	return body
}
