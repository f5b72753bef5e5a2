// Package mock provides test doubles for the flight gateway.
// Upstream is a fake provider API serving the skyscanner, google_flights and
// amadeus endpoints from one httptest server, with configurable status codes,
// bodies and delays per path.
package mock

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/flight-search/flight-gateway/internal/adapter/provider/amadeus"
	"github.com/flight-search/flight-gateway/test/testutil"
)

// Upstream paths served by the fake.
const (
	SkyscannerSearchPath       = "/flights/one-way/list"
	SkyscannerAutocompletePath = "/airports/auto-complete"
	GoogleSearchPath           = "/api/v1/searchFlights"
	GoogleAirportPath          = "/api/v1/searchAirport"
	AmadeusTokenPath           = amadeus.TokenPath
	AmadeusSearchPath          = amadeus.SearchPath
	AmadeusLocationsPath       = amadeus.LocationsPath
)

// Route is the canned reply for one path.
type Route struct {
	Status int
	Body   []byte
	Delay  time.Duration
}

// Call records one request received by the fake.
type Call struct {
	Query         url.Values
	Form          url.Values
	Authorization string
	APIKey        string
}

// Upstream is a configurable fake of every provider API.
type Upstream struct {
	Server *httptest.Server

	mu     sync.Mutex
	routes map[string]Route
	calls  map[string][]Call
}

// NewUpstream starts a fake serving the fixtures in test/testdata.
// The server is closed when the test ends.
func NewUpstream(t *testing.T) *Upstream {
	t.Helper()

	u := &Upstream{
		routes: map[string]Route{
			SkyscannerSearchPath:       {Status: http.StatusOK, Body: testutil.LoadTestJSON(t, "skyscanner_flights.json")},
			SkyscannerAutocompletePath: {Status: http.StatusOK, Body: testutil.LoadTestJSON(t, "skyscanner_autocomplete.json")},
			GoogleSearchPath:           {Status: http.StatusOK, Body: testutil.LoadTestJSON(t, "google_flights.json")},
			GoogleAirportPath:          {Status: http.StatusOK, Body: testutil.LoadTestJSON(t, "google_airports.json")},
			AmadeusTokenPath:           {Status: http.StatusOK, Body: testutil.LoadTestJSON(t, "amadeus_token.json")},
			AmadeusSearchPath:          {Status: http.StatusOK, Body: testutil.LoadTestJSON(t, "amadeus_offers.json")},
			AmadeusLocationsPath:       {Status: http.StatusOK, Body: testutil.LoadTestJSON(t, "amadeus_locations.json")},
		},
		calls: make(map[string][]Call),
	}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Server.Close)
	return u
}

// URL returns the base URL to configure adapters with.
func (u *Upstream) URL() string {
	return u.Server.URL
}

// Set replaces the reply for path.
func (u *Upstream) Set(path string, route Route) *Upstream {
	u.mu.Lock()
	defer u.mu.Unlock()
	if route.Status == 0 {
		route.Status = http.StatusOK
	}
	u.routes[path] = route
	return u
}

// Reply sets a status and raw body for path.
func (u *Upstream) Reply(path string, status int, body string) *Upstream {
	return u.Set(path, Route{Status: status, Body: []byte(body)})
}

// WithDelay keeps the current reply for path but delays it by d.
func (u *Upstream) WithDelay(path string, d time.Duration) *Upstream {
	u.mu.Lock()
	defer u.mu.Unlock()
	route := u.routes[path]
	route.Delay = d
	u.routes[path] = route
	return u
}

// Body returns the configured reply body for path.
func (u *Upstream) Body(path string) []byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.routes[path].Body
}

// Calls returns the requests received on path.
func (u *Upstream) Calls(path string) []Call {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]Call(nil), u.calls[path]...)
}

// CallCount returns the number of requests received on path.
func (u *Upstream) CallCount(path string) int {
	return len(u.Calls(path))
}

// Reset forgets every recorded call.
func (u *Upstream) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls = make(map[string][]Call)
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	u.mu.Lock()
	route, ok := u.routes[r.URL.Path]
	u.calls[r.URL.Path] = append(u.calls[r.URL.Path], Call{
		Query:         r.URL.Query(),
		Form:          r.PostForm,
		Authorization: r.Header.Get("Authorization"),
		APIKey:        r.Header.Get("x-rapidapi-key"),
	})
	u.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	if route.Delay > 0 {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(route.Delay):
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(route.Status)
	_, _ = w.Write(route.Body)
}
