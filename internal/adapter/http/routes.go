package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all gateway routes.
func RegisterRoutes(e *echo.Echo, h *FlightHandler) {
	// Unversioned endpoints
	e.GET("/", h.Welcome)
	e.GET("/health", h.Health)
	e.GET("/search-flights", h.SearchFlights)

	// API v1 group
	api := e.Group("/api/v1")

	flights := api.Group("/flights")
	flights.GET("/search", h.SearchFlights)
}
