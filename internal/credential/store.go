// Package credential holds the per-provider secrets loaded at startup.
// The store is populated once before the gateway accepts traffic and is read-only afterwards.
package credential

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ErrNotFound is returned when no credential of the requested type is stored for a provider.
var ErrNotFound = errors.New("credential not found")

// KeyCredential is a static API key/host header pair (RapidAPI-style providers).
type KeyCredential struct {
	APIKey  string `json:"-"`
	APIHost string `json:"apiHost"`
}

// Validate checks that both fields are present.
func (k KeyCredential) Validate() error {
	var errs []error
	if strings.TrimSpace(k.APIKey) == "" {
		errs = append(errs, errors.New("api key is empty"))
	}
	if strings.TrimSpace(k.APIHost) == "" {
		errs = append(errs, errors.New("api host is empty"))
	}
	return errors.Join(errs...)
}

// String redacts the key.
func (k KeyCredential) String() string {
	return fmt.Sprintf("KeyCredential{APIHost: %s, APIKey: %s}", k.APIHost, redact(k.APIKey))
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler without exposing the key.
func (k KeyCredential) MarshalZerologObject(e *zerolog.Event) {
	e.Str("api_host", k.APIHost).Str("api_key", redact(k.APIKey))
}

// ClientCredential is an OAuth2 client-credential pair.
type ClientCredential struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"-"`
}

// Validate checks that both fields are present.
func (c ClientCredential) Validate() error {
	var errs []error
	if strings.TrimSpace(c.ClientID) == "" {
		errs = append(errs, errors.New("client id is empty"))
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		errs = append(errs, errors.New("client secret is empty"))
	}
	return errors.Join(errs...)
}

// String redacts the secret.
func (c ClientCredential) String() string {
	return fmt.Sprintf("ClientCredential{ClientID: %s, ClientSecret: %s}", c.ClientID, redact(c.ClientSecret))
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler without exposing the secret.
func (c ClientCredential) MarshalZerologObject(e *zerolog.Event) {
	e.Str("client_id", c.ClientID).Str("client_secret", redact(c.ClientSecret))
}

func redact(secret string) string {
	if secret == "" {
		return "<empty>"
	}
	return "<redacted>"
}

// Store maps provider names to their credentials.
type Store struct {
	keys    map[string]KeyCredential
	clients map[string]ClientCredential
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		keys:    make(map[string]KeyCredential),
		clients: make(map[string]ClientCredential),
	}
}

// PutKey validates and stores a key credential for provider.
func (s *Store) PutKey(provider string, cred KeyCredential) error {
	if err := cred.Validate(); err != nil {
		return fmt.Errorf("%s: %w", provider, err)
	}
	s.keys[provider] = cred
	return nil
}

// PutClient validates and stores a client credential for provider.
func (s *Store) PutClient(provider string, cred ClientCredential) error {
	if err := cred.Validate(); err != nil {
		return fmt.Errorf("%s: %w", provider, err)
	}
	s.clients[provider] = cred
	return nil
}

// Key returns the key credential for provider.
func (s *Store) Key(provider string) (KeyCredential, error) {
	cred, ok := s.keys[provider]
	if !ok {
		return KeyCredential{}, fmt.Errorf("%s key: %w", provider, ErrNotFound)
	}
	return cred, nil
}

// Client returns the client credential for provider.
func (s *Store) Client(provider string) (ClientCredential, error) {
	cred, ok := s.clients[provider]
	if !ok {
		return ClientCredential{}, fmt.Errorf("%s client: %w", provider, ErrNotFound)
	}
	return cred, nil
}

// Providers returns the names of every provider with a stored credential.
func (s *Store) Providers() []string {
	names := make([]string, 0, len(s.keys)+len(s.clients))
	for name := range s.keys {
		names = append(names, name)
	}
	for name := range s.clients {
		names = append(names, name)
	}
	return names
}
