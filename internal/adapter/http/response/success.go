package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-gateway/internal/domain"
)

// ProviderHeader names the adapter that produced a search payload.
const ProviderHeader = "X-Provider"

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// Health writes a health check response.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status: "ok",
	})
}

// Welcome writes the plain-text welcome message.
func Welcome(c echo.Context) error {
	return c.String(http.StatusOK, MsgWelcome)
}

// SearchResult writes the upstream payload unchanged with a 200 OK.
func SearchResult(c echo.Context, result *domain.SearchResult) error {
	c.Response().Header().Set(ProviderHeader, result.Provider)
	return c.JSONBlob(http.StatusOK, result.Payload)
}
