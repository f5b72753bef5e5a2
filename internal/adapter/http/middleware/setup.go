package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Setup registers all middleware on the Echo instance in the correct order.
// The order is important:
//  1. RequestID - First, to generate/propagate request ID and attach the scoped logger
//  2. RequestLogger - Second, logs all requests with request ID
//  3. Recover - Third, catches panics and returns 500 (wraps handlers)
//
// This function should be called before registering routes.
func Setup(e *echo.Echo, log zerolog.Logger) {
	for _, m := range Chain(log, DefaultRecoveryConfig()) {
		e.Use(m)
	}
}

// Chain returns all middleware as a slice for use with route groups.
func Chain(log zerolog.Logger, recoveryConfig RecoveryConfig) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		RequestID(log),
		RequestLogger(log),
		RecoverWithConfig(log, recoveryConfig),
	}
}
