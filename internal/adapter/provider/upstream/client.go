// Package upstream holds the outbound plumbing shared by every provider adapter:
// request execution, status to error-kind mapping, error-message extraction,
// success-marker inspection and the auto-complete location resolver.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/flight-search/flight-gateway/internal/domain"
)

// maxBodyBytes caps how much of an upstream body is read.
const maxBodyBytes = 10 << 20

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Authorizer attaches credentials to an outbound request.
type Authorizer interface {
	Authorize(ctx context.Context, header http.Header) error
}

// RejectionAware is implemented by authorizers that must react when the
// upstream rejects the credentials they attached.
type RejectionAware interface {
	Rejected(header http.Header)
}

// Request describes one outbound call relative to the client's base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Form   url.Values
}

// Response is a completed upstream exchange.
type Response struct {
	Status int
	Body   []byte
}

// Client issues requests against one upstream provider.
type Client struct {
	provider string
	baseURL  string
	doer     Doer
	auth     Authorizer
}

// NewClient creates a client for provider rooted at baseURL.
// A nil doer gets an *http.Client with the given timeout.
func NewClient(provider, baseURL string, doer Doer, auth Authorizer, timeout time.Duration) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: timeout}
	}
	return &Client{
		provider: provider,
		baseURL:  strings.TrimRight(baseURL, "/"),
		doer:     doer,
		auth:     auth,
	}
}

// Provider returns the provider name the client issues requests for.
func (c *Client) Provider() string {
	return c.provider
}

// Do executes req and returns the raw response. Non-2xx statuses are not errors here;
// transport failures and authorization failures are.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Form != nil {
		body = strings.NewReader(req.Form.Encode())
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, domain.NewUpstreamError(0, "", fmt.Errorf("build request: %w", err)).WithProvider(c.provider)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Form != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	if c.auth != nil {
		if err := c.auth.Authorize(ctx, httpReq.Header); err != nil {
			return nil, attribute(err, c.provider)
		}
	}

	resp, err := c.doer.Do(httpReq)
	if err != nil {
		return nil, transportError(ctx, err).WithProvider(c.provider)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, transportError(ctx, fmt.Errorf("read body: %w", err)).WithProvider(c.provider)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if ra, ok := c.auth.(RejectionAware); ok {
			ra.Rejected(httpReq.Header)
		}
	}

	return &Response{Status: resp.StatusCode, Body: data}, nil
}

// Search executes req and validates the 2xx body against marker.
func (c *Client) Search(ctx context.Context, req Request, marker string) (*domain.SearchResult, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := MapStatus(resp.Status, resp.Body); err != nil {
		return nil, attribute(err, c.provider)
	}

	payload, err := Inspect(resp.Status, resp.Body, marker)
	if err != nil {
		return nil, attribute(err, c.provider)
	}
	return &domain.SearchResult{Provider: c.provider, Payload: payload}, nil
}

func transportError(ctx context.Context, err error) *domain.Error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return domain.NewTimeout(err)
	}
	return domain.NewUpstreamError(0, "upstream request failed", err)
}

func attribute(err error, provider string) error {
	return domain.AsError(err).WithProvider(provider)
}
