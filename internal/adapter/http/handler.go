// Package http provides the HTTP handler layer for the flight gateway API.
// It handles request parsing, response formatting, and error mapping.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-gateway/internal/adapter/http/response"
	"github.com/flight-search/flight-gateway/internal/domain"
	"github.com/flight-search/flight-gateway/internal/usecase"
)

// FlightHandler handles HTTP requests for flight-related endpoints.
type FlightHandler struct {
	gateway usecase.FlightGateway
}

// NewFlightHandler creates a new FlightHandler with the given gateway.
func NewFlightHandler(gw usecase.FlightGateway) *FlightHandler {
	return &FlightHandler{
		gateway: gw,
	}
}

// SearchFlights handles GET /api/v1/flights/search and the legacy GET /search-flights.
//
// @Summary Search for flights
// @Description Search one-way flights through the configured provider. The provider's payload is returned unchanged.
// @Tags flights
// @Produce json
// @Param origin query string true "Origin IATA code or city name"
// @Param destination query string true "Destination IATA code or city name"
// @Param date query string true "Departure date (YYYY-MM-DD)"
// @Param provider query string false "Provider adapter name"
// @Success 200 {object} object "Provider payload"
// @Header 200 {string} X-Provider "Adapter that served the search"
// @Failure 400 {object} response.ErrorBody "Invalid input or unresolved city"
// @Failure 401 {object} response.ErrorBody "Provider rejected credentials"
// @Failure 404 {object} response.ErrorBody "No flights found"
// @Failure 429 {object} response.ErrorBody "Provider rate limit"
// @Failure 500 {object} response.ErrorBody "Provider error"
// @Failure 504 {object} response.ErrorBody "Timed out"
// @Router /api/v1/flights/search [get]
func (h *FlightHandler) SearchFlights(c echo.Context) error {
	req, err := bindSearchRequest(c)
	if err != nil {
		return response.BadRequest(c, "malformed query string")
	}

	result, err := h.gateway.Search(c.Request().Context(), req.ToDomainQuery())
	if err != nil {
		return response.Error(c, err)
	}

	return response.SearchResult(c, result)
}

// Health handles GET /health
//
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (h *FlightHandler) Health(c echo.Context) error {
	return response.Health(c)
}

// Welcome handles GET /
func (h *FlightHandler) Welcome(c echo.Context) error {
	return response.Welcome(c)
}

// ErrorHandler renders errors that escape handlers, such as unknown routes,
// in the same shape as gateway errors.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status := he.Code
		kind := domain.KindUpstreamError
		msg := http.StatusText(status)
		switch {
		case status == http.StatusNotFound:
			kind, msg = domain.KindNotFound, response.MsgRouteNotFound
		case status >= 400 && status < 500:
			kind = domain.KindInvalidInput
		}
		_ = c.JSON(status, &response.ErrorBody{Error: msg, Code: string(kind)})
		return
	}

	_ = response.Error(c, err)
}
