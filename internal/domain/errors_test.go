package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKind_HTTPStatus(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want int
	}{
		{kind: KindInvalidInput, want: http.StatusBadRequest},
		{kind: KindResolutionFailed, want: http.StatusBadRequest},
		{kind: KindAuthFailed, want: http.StatusUnauthorized},
		{kind: KindNotFound, want: http.StatusNotFound},
		{kind: KindRateLimited, want: http.StatusTooManyRequests},
		{kind: KindUpstreamError, want: http.StatusInternalServerError},
		{kind: KindTimeout, want: http.StatusGatewayTimeout},
		{kind: ErrorKind("unknown"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.HTTPStatus())
		})
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name         string
		err          *Error
		wantContains []string
	}{
		{
			name:         "kind and message",
			err:          NewInvalidInput("origin %s is required", "field"),
			wantContains: []string{"invalid_input", "origin field is required"},
		},
		{
			name:         "provider attribution",
			err:          NewRateLimited(429).WithProvider("skyscanner"),
			wantContains: []string{"skyscanner", "rate_limited", MsgRateLimited},
		},
		{
			name:         "underlying cause",
			err:          NewAuthFailed(MsgNoToken, errors.New("connection refused")),
			wantContains: []string{MsgNoToken, "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, want := range tt.wantContains {
				assert.Contains(t, tt.err.Error(), want)
			}
		})
	}
}

func TestError_UnwrapAndIs(t *testing.T) {
	cause := errors.New("boom")
	err := NewUpstreamError(502, "bad gateway", cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, &Error{Kind: KindUpstreamError}))
	assert.False(t, errors.Is(err, &Error{Kind: KindNotFound}))

	wrapped := fmt.Errorf("search: %w", err)
	var gwErr *Error
	require.True(t, errors.As(wrapped, &gwErr))
	assert.Equal(t, 502, gwErr.UpstreamStatus)
}

func TestError_WithProviderKeepsExisting(t *testing.T) {
	err := NewNotFound().WithProvider("amadeus")
	again := err.WithProvider("skyscanner")

	assert.Equal(t, "amadeus", again.Provider)
}

func TestError_WithProviderDoesNotMutate(t *testing.T) {
	base := NewNotFound()
	_ = base.WithProvider("amadeus")

	assert.Empty(t, base.Provider)
}

func TestNewUpstreamError_DefaultMessage(t *testing.T) {
	err := NewUpstreamError(500, "", nil)
	assert.Equal(t, MsgUpstreamGeneric, err.Message)
	assert.Equal(t, 500, err.UpstreamStatus)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "gateway error", err: NewNotFound(), want: KindNotFound},
		{name: "wrapped gateway error", err: fmt.Errorf("x: %w", NewRateLimited(429)), want: KindRateLimited},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: KindTimeout},
		{name: "wrapped deadline", err: fmt.Errorf("get: %w", context.DeadlineExceeded), want: KindTimeout},
		{name: "unknown error", err: errors.New("unexpected"), want: KindUpstreamError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestAsError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, AsError(nil))
	})

	t.Run("gateway error returned as is", func(t *testing.T) {
		original := NewResolutionFailed("Atlantis")
		assert.Same(t, original, AsError(original))
	})

	t.Run("deadline becomes timeout", func(t *testing.T) {
		got := AsError(context.DeadlineExceeded)
		assert.Equal(t, KindTimeout, got.Kind)
		assert.Equal(t, MsgTimeout, got.Message)
	})

	t.Run("unknown error masked as upstream error", func(t *testing.T) {
		got := AsError(errors.New("invalid character '<' looking for beginning of value"))
		assert.Equal(t, KindUpstreamError, got.Kind)
		assert.Equal(t, MsgUpstreamGeneric, got.Message)
	})
}

func TestNewResolutionFailed_NamesCity(t *testing.T) {
	err := NewResolutionFailed("Atlantis")
	assert.Equal(t, KindResolutionFailed, err.Kind)
	assert.Contains(t, err.Message, "Atlantis")
}

func TestIsKind(t *testing.T) {
	assert.True(t, IsKind(NewTimeout(nil), KindTimeout))
	assert.False(t, IsKind(nil, KindTimeout))
	assert.False(t, IsKind(NewNotFound(), KindTimeout))
}

func TestErrorKind_ClientCaused(t *testing.T) {
	assert.True(t, KindInvalidInput.ClientCaused())
	assert.True(t, KindRateLimited.ClientCaused())
	assert.False(t, KindUpstreamError.ClientCaused())
	assert.False(t, KindAuthFailed.ClientCaused())
}
