package http

import (
	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-gateway/internal/domain"
)

// SearchFlightsRequest holds the query parameters of a flight search.
type SearchFlightsRequest struct {
	// Origin is a 3-letter IATA code or, for resolving providers, a city name (e.g., "JFK", "New York")
	Origin string `query:"origin" example:"JFK"`

	// Destination is a 3-letter IATA code or, for resolving providers, a city name
	Destination string `query:"destination" example:"LHR"`

	// Date is the departure date in YYYY-MM-DD format
	Date string `query:"date" example:"2026-06-01"`

	// Provider optionally selects an adapter by name
	Provider string `query:"provider" example:"amadeus"`
}

// bindSearchRequest reads the search parameters from the query string only.
func bindSearchRequest(c echo.Context) (SearchFlightsRequest, error) {
	var req SearchFlightsRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return req, err
	}
	return req, nil
}

// ToDomainQuery converts the request to a domain.SearchQuery.
func (r SearchFlightsRequest) ToDomainQuery() domain.SearchQuery {
	return domain.SearchQuery{
		Origin:      r.Origin,
		Destination: r.Destination,
		Date:        r.Date,
		Provider:    r.Provider,
	}
}
