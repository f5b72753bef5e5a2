// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/flight-search/flight-gateway/internal/config"
	"github.com/flight-search/flight-gateway/internal/domain"
)

// LoadTestJSON loads a JSON file from the testdata directory.
// The filename should be relative to the testdata directory.
func LoadTestJSON(t *testing.T, filename string) []byte {
	t.Helper()

	// Get the path to testdata relative to this file
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}

	// Navigate to project root (testutil is in test/testutil)
	projectRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")
	testDataPath := filepath.Join(projectRoot, "test", "testdata", filename)

	data, err := os.ReadFile(testDataPath)
	if err != nil {
		t.Fatalf("Failed to load test file %s: %v", filename, err)
	}
	return data
}

// FutureDate returns a date string 30 days in the future in YYYY-MM-DD format.
func FutureDate() string {
	return time.Now().AddDate(0, 0, 30).Format(domain.DateLayout)
}

// MustParseDate parses a date string in YYYY-MM-DD format.
// It fails the test if parsing fails.
func MustParseDate(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse(domain.DateLayout, dateStr)
	if err != nil {
		t.Fatalf("Failed to parse date %s: %v", dateStr, err)
	}
	return parsed
}

// Config returns a gateway configuration whose providers all point at baseURL.
// The first enabled provider is the default; none enabled means skyscanner only.
func Config(baseURL string, enabled ...string) *config.Config {
	if len(enabled) == 0 {
		enabled = []string{config.ProviderSkyscanner}
	}
	return &config.Config{
		Server: config.ServerConfig{
			Port:         8080,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			CORSOrigins:  []string{"*"},
		},
		Gateway: config.GatewayConfig{
			DefaultProvider:  enabled[0],
			EnabledProviders: enabled,
			SearchTimeout:    5 * time.Second,
			UpstreamTimeout:  5 * time.Second,
		},
		Skyscanner: config.RapidAPIConfig{
			APIKey:           "test-skyscanner-key",
			APIHost:          "skyscanner89.p.rapidapi.com",
			BaseURL:          baseURL,
			ResolutionPolicy: config.PolicyResolve,
		},
		GoogleFlights: config.RapidAPIConfig{
			APIKey:           "test-google-key",
			APIHost:          "google-flights2.p.rapidapi.com",
			BaseURL:          baseURL,
			ResolutionPolicy: config.PolicyStrict,
		},
		Amadeus: config.AmadeusConfig{
			ClientID:          "test-client-id",
			ClientSecret:      "test-client-secret",
			BaseURL:           baseURL,
			ResolutionPolicy:  config.PolicyResolve,
			TokenExpiryMargin: 10 * time.Second,
		},
		Logging: config.LoggingConfig{Level: "debug", Format: "json"},
		App:     config.AppConfig{Env: "test"},
	}
}
