// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Provider adapter names recognized by the gateway.
const (
	ProviderSkyscanner    = "skyscanner"
	ProviderGoogleFlights = "google_flights"
	ProviderAmadeus       = "amadeus"
)

// Resolution policies accepted in *_RESOLUTION_POLICY.
const (
	PolicyResolve = "resolve"
	PolicyStrict  = "strict"
)

var knownProviders = map[string]bool{
	ProviderSkyscanner:    true,
	ProviderGoogleFlights: true,
	ProviderAmadeus:       true,
}

// Config holds all application configuration.
type Config struct {
	Server        ServerConfig
	Gateway       GatewayConfig
	Skyscanner    RapidAPIConfig `envPrefix:"SKYSCANNER_"`
	GoogleFlights RapidAPIConfig `envPrefix:"GOOGLE_FLIGHTS_"`
	Amadeus       AmadeusConfig
	Logging       LoggingConfig
	App           AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	CORSOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// GatewayConfig selects adapters and bounds request time.
type GatewayConfig struct {
	// DefaultProvider is used when a request does not name one.
	DefaultProvider string `env:"GATEWAY_PROVIDER" envDefault:"skyscanner"`

	// EnabledProviders lists every adapter whose credentials are loaded at startup.
	EnabledProviders []string `env:"GATEWAY_PROVIDERS_ENABLED" envDefault:"skyscanner" envSeparator:","`

	// SearchTimeout is the overall deadline imposed on a single search.
	SearchTimeout time.Duration `env:"GATEWAY_SEARCH_TIMEOUT" envDefault:"20s"`

	// UpstreamTimeout is the outbound HTTP client timeout.
	UpstreamTimeout time.Duration `env:"UPSTREAM_HTTP_TIMEOUT" envDefault:"15s"`
}

// RapidAPIConfig holds settings for a key-header provider. Field names are
// prefixed per provider, e.g. SKYSCANNER_API_KEY.
type RapidAPIConfig struct {
	APIKey           string `env:"API_KEY"`
	APIHost          string `env:"API_HOST"`
	BaseURL          string `env:"BASE_URL"`
	ResolutionPolicy string `env:"RESOLUTION_POLICY"`
}

// AmadeusConfig holds OAuth client-credential settings for Amadeus.
type AmadeusConfig struct {
	ClientID          string        `env:"AMADEUS_CLIENT_ID"`
	ClientSecret      string        `env:"AMADEUS_CLIENT_SECRET"`
	BaseURL           string        `env:"AMADEUS_BASE_URL" envDefault:"https://test.api.amadeus.com"`
	ResolutionPolicy  string        `env:"AMADEUS_RESOLUTION_POLICY" envDefault:"strict"`
	TokenExpiryMargin time.Duration `env:"AMADEUS_TOKEN_EXPIRY_MARGIN" envDefault:"10s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// applyDefaults fills per-provider defaults that depend on other fields.
func applyDefaults(cfg *Config) {
	if cfg.Skyscanner.APIHost == "" {
		cfg.Skyscanner.APIHost = "skyscanner89.p.rapidapi.com"
	}
	if cfg.Skyscanner.ResolutionPolicy == "" {
		cfg.Skyscanner.ResolutionPolicy = PolicyResolve
	}
	if cfg.GoogleFlights.APIHost == "" {
		cfg.GoogleFlights.APIHost = "google-flights2.p.rapidapi.com"
	}
	if cfg.GoogleFlights.ResolutionPolicy == "" {
		cfg.GoogleFlights.ResolutionPolicy = PolicyStrict
	}
	for _, rc := range []*RapidAPIConfig{&cfg.Skyscanner, &cfg.GoogleFlights} {
		if rc.BaseURL == "" {
			rc.BaseURL = "https://" + rc.APIHost
		}
	}

	enabled := make([]string, 0, len(cfg.Gateway.EnabledProviders))
	for _, name := range cfg.Gateway.EnabledProviders {
		if name = strings.TrimSpace(name); name != "" {
			enabled = append(enabled, name)
		}
	}
	cfg.Gateway.EnabledProviders = enabled
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Gateway.SearchTimeout <= 0 {
		return fmt.Errorf("GATEWAY_SEARCH_TIMEOUT must be positive")
	}
	if cfg.Gateway.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_HTTP_TIMEOUT must be positive")
	}
	if cfg.Amadeus.TokenExpiryMargin < 0 {
		return fmt.Errorf("AMADEUS_TOKEN_EXPIRY_MARGIN must not be negative")
	}

	if len(cfg.Gateway.EnabledProviders) == 0 {
		return fmt.Errorf("GATEWAY_PROVIDERS_ENABLED must list at least one provider")
	}
	for _, name := range cfg.Gateway.EnabledProviders {
		if !knownProviders[name] {
			return fmt.Errorf("GATEWAY_PROVIDERS_ENABLED contains unknown provider %q", name)
		}
	}
	if !cfg.IsEnabled(cfg.Gateway.DefaultProvider) {
		return fmt.Errorf("GATEWAY_PROVIDER %q must be one of GATEWAY_PROVIDERS_ENABLED %v",
			cfg.Gateway.DefaultProvider, cfg.Gateway.EnabledProviders)
	}

	policies := map[string]string{
		"SKYSCANNER_RESOLUTION_POLICY":     cfg.Skyscanner.ResolutionPolicy,
		"GOOGLE_FLIGHTS_RESOLUTION_POLICY": cfg.GoogleFlights.ResolutionPolicy,
		"AMADEUS_RESOLUTION_POLICY":        cfg.Amadeus.ResolutionPolicy,
	}
	for key, policy := range policies {
		if policy != PolicyResolve && policy != PolicyStrict {
			return fmt.Errorf("%s must be one of: resolve, strict; got %q", key, policy)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// IsEnabled reports whether the named provider is in GATEWAY_PROVIDERS_ENABLED.
func (c *Config) IsEnabled(provider string) bool {
	for _, name := range c.Gateway.EnabledProviders {
		if name == provider {
			return true
		}
	}
	return false
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
