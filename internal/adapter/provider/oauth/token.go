// Package oauth implements the client-credential token manager used by bearer-authenticated providers.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/flight-search/flight-gateway/internal/adapter/provider/upstream"
	"github.com/flight-search/flight-gateway/internal/credential"
	"github.com/flight-search/flight-gateway/internal/domain"
	"github.com/flight-search/flight-gateway/internal/infrastructure/timeutil"
)

// DefaultExpiryMargin is how long before expiry a token stops being served.
const DefaultExpiryMargin = 10 * time.Second

const bearerPrefix = "Bearer "

// Token is an acquired access token.
type Token struct {
	Value     string
	ExpiresAt time.Time

	// refreshAt is when the token stops being handed out.
	refreshAt time.Time
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Config configures a Manager.
type Config struct {
	Credential credential.ClientCredential
	BaseURL    string
	TokenPath  string
	HTTPClient upstream.Doer
	Timeout    time.Duration

	// ExpiryMargin defaults to DefaultExpiryMargin.
	ExpiryMargin time.Duration

	// Clock defaults to the system clock.
	Clock timeutil.Clock
}

// Manager acquires and caches one provider's access token.
// Concurrent callers that find no valid token share a single exchange.
type Manager struct {
	client *upstream.Client
	path   string
	cred   credential.ClientCredential
	clock  timeutil.Clock
	margin time.Duration

	mu    sync.RWMutex
	token *Token

	group singleflight.Group
}

// NewManager creates a token manager for provider.
func NewManager(provider string, cfg Config) *Manager {
	if cfg.Clock == nil {
		cfg.Clock = timeutil.NewRealClock()
	}
	if cfg.ExpiryMargin <= 0 {
		cfg.ExpiryMargin = DefaultExpiryMargin
	}
	return &Manager{
		client: upstream.NewClient(provider, cfg.BaseURL, cfg.HTTPClient, nil, cfg.Timeout),
		path:   cfg.TokenPath,
		cred:   cfg.Credential,
		clock:  cfg.Clock,
		margin: cfg.ExpiryMargin,
	}
}

// Token returns a valid access token, exchanging client credentials when none is cached.
func (m *Manager) Token(ctx context.Context) (string, error) {
	if tok, ok := m.current(); ok {
		return tok.Value, nil
	}

	// The shared exchange is detached from any one caller's cancellation.
	exchangeCtx := context.WithoutCancel(ctx)
	ch := m.group.DoChan("token", func() (interface{}, error) {
		if tok, ok := m.current(); ok {
			return tok, nil
		}
		return m.exchange(exchangeCtx)
	})

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", domain.NewTimeout(ctx.Err()).WithProvider(m.client.Provider())
		}
		return "", domain.NewAuthFailed(domain.MsgNoToken, ctx.Err()).WithProvider(m.client.Provider())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(*Token).Value, nil
	}
}

// Invalidate drops the cached token if it is still value.
// A token replaced by a newer exchange is left alone.
func (m *Manager) Invalidate(value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token != nil && m.token.Value == value {
		m.token = nil
	}
}

// Cached returns the cached token and whether it is still served.
func (m *Manager) Cached() (Token, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == nil {
		return Token{}, false
	}
	return *m.token, m.clock.Now().Before(m.token.refreshAt)
}

// Authorize implements upstream.Authorizer by attaching a bearer token.
func (m *Manager) Authorize(ctx context.Context, h http.Header) error {
	tok, err := m.Token(ctx)
	if err != nil {
		return err
	}
	h.Set("Authorization", bearerPrefix+tok)
	return nil
}

// Rejected implements upstream.RejectionAware: the token that was sent is invalidated.
func (m *Manager) Rejected(h http.Header) {
	if v := h.Get("Authorization"); strings.HasPrefix(v, bearerPrefix) {
		m.Invalidate(strings.TrimPrefix(v, bearerPrefix))
	}
}

func (m *Manager) current() (*Token, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == nil || !m.clock.Now().Before(m.token.refreshAt) {
		return nil, false
	}
	return m.token, true
}

func (m *Manager) exchange(ctx context.Context) (*Token, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", m.cred.ClientID)
	form.Set("client_secret", m.cred.ClientSecret)

	resp, err := m.client.Do(ctx, upstream.Request{Method: http.MethodPost, Path: m.path, Form: form})
	if err != nil {
		return nil, m.authFailed(0, err)
	}
	if err := upstream.MapStatus(resp.Status, resp.Body); err != nil {
		return nil, m.authFailed(resp.Status, err)
	}

	var tr tokenResponse
	if err := json.Unmarshal(resp.Body, &tr); err != nil {
		return nil, m.authFailed(resp.Status, fmt.Errorf("decode token response: %w", err))
	}
	if tr.AccessToken == "" {
		return nil, m.authFailed(resp.Status, errors.New("token response without access_token"))
	}

	now := m.clock.Now()
	lifetime := time.Duration(tr.ExpiresIn) * time.Second
	tok := &Token{Value: tr.AccessToken, ExpiresAt: now.Add(lifetime)}
	tok.refreshAt = tok.ExpiresAt.Add(-m.margin)
	if m.margin >= lifetime {
		tok.refreshAt = now.Add(lifetime / 2)
	}

	m.mu.Lock()
	m.token = tok
	m.mu.Unlock()

	return tok, nil
}

func (m *Manager) authFailed(status int, cause error) *domain.Error {
	e := domain.NewAuthFailed(domain.MsgNoToken, cause).WithProvider(m.client.Provider())
	e.UpstreamStatus = status
	return e
}

var (
	_ upstream.Authorizer     = (*Manager)(nil)
	_ upstream.RejectionAware = (*Manager)(nil)
)
