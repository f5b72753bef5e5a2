// Package response provides standardized HTTP response builders for the flight gateway API.
// It centralizes response formatting to ensure consistency across all endpoints.
package response

// ErrorBody is the error object returned to callers.
type ErrorBody struct {
	// Error is a human-readable error message
	Error string `json:"error" example:"no flights found for the requested route and date"`

	// Code is the machine-readable error kind
	Code string `json:"code" example:"not_found"`
}

// Error messages used in API responses.
const (
	MsgInternalError = "An unexpected error occurred"
	MsgRouteNotFound = "Route not found"
	MsgWelcome       = "Welcome to the flight search gateway! Use /api/v1/flights/search (or /search-flights) with origin, destination and date to find flights."
)
