// Package skyscanner configures the RapidAPI-hosted Skyscanner adapter.
package skyscanner

import (
	"github.com/flight-search/flight-gateway/internal/adapter/provider/rapidapi"
	"github.com/flight-search/flight-gateway/internal/adapter/provider/upstream"
)

// Name is the adapter name.
const Name = "skyscanner"

// DefaultHost is the RapidAPI host of the Skyscanner API.
const DefaultHost = "skyscanner89.p.rapidapi.com"

// Profile describes the Skyscanner one-way search and airport auto-complete endpoints.
var Profile = rapidapi.Profile{
	Name:             Name,
	SearchPath:       "/flights/one-way/list",
	OriginParam:      "origin",
	DestinationParam: "destination",
	DateParam:        "date",
	Marker:           "flights",
	Autocomplete: upstream.ResolverConfig{
		Path:       "/airports/auto-complete",
		QueryParam: "query",
		CodeField:  "iata",
	},
}

// New creates the Skyscanner adapter.
func New(cfg rapidapi.Config) *rapidapi.Adapter {
	return rapidapi.New(Profile, cfg)
}
