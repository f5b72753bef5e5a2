// Package googleflights configures the RapidAPI-hosted Google Flights adapter.
package googleflights

import (
	"github.com/flight-search/flight-gateway/internal/adapter/provider/rapidapi"
	"github.com/flight-search/flight-gateway/internal/adapter/provider/upstream"
)

// Name is the adapter name.
const Name = "google_flights"

// DefaultHost is the RapidAPI host of the Google Flights API.
const DefaultHost = "google-flights2.p.rapidapi.com"

// Profile describes the Google Flights search and airport lookup endpoints.
// Results arrive under "data".
var Profile = rapidapi.Profile{
	Name:             Name,
	SearchPath:       "/api/v1/searchFlights",
	OriginParam:      "departure_id",
	DestinationParam: "arrival_id",
	DateParam:        "outbound_date",
	Marker:           "data",
	Autocomplete: upstream.ResolverConfig{
		Path:       "/api/v1/searchAirport",
		QueryParam: "query",
		ListField:  "data",
		CodeField:  "id",
	},
}

// New creates the Google Flights adapter.
func New(cfg rapidapi.Config) *rapidapi.Adapter {
	return rapidapi.New(Profile, cfg)
}
