package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/flight-search/flight-gateway/internal/adapter/http/response"
)

// CORS wraps h with a CORS policy allowing read-only cross-origin requests from origins.
// An empty list or "*" allows every origin.
func CORS(h http.Handler, origins []string) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{RequestIDHeader, response.ProviderHeader},
		MaxAge:         300,
	}).Handler(h)
}
