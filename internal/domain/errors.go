package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a gateway failure independently of the upstream that caused it.
type ErrorKind string

// Error kinds surfaced to gateway callers.
const (
	KindInvalidInput     ErrorKind = "invalid_input"
	KindResolutionFailed ErrorKind = "resolution_failed"
	KindAuthFailed       ErrorKind = "auth_failed"
	KindRateLimited      ErrorKind = "rate_limited"
	KindNotFound         ErrorKind = "not_found"
	KindUpstreamError    ErrorKind = "upstream_error"
	KindTimeout          ErrorKind = "timeout"
)

// HTTPStatus returns the HTTP-equivalent status code for the kind.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindInvalidInput, KindResolutionFailed:
		return http.StatusBadRequest
	case KindAuthFailed:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ClientCaused reports whether the failure stems from the caller's input or
// from an expected upstream condition rather than a fault.
func (k ErrorKind) ClientCaused() bool {
	switch k {
	case KindInvalidInput, KindResolutionFailed, KindNotFound, KindRateLimited:
		return true
	default:
		return false
	}
}

// Common user-facing messages.
const (
	MsgRateLimited     = "rate limit exceeded, please retry later"
	MsgNoToken         = "could not obtain access token"
	MsgUpstreamGeneric = "upstream provider error"
	MsgMalformed       = "unexpected response from upstream provider"
	MsgNoFlights       = "no flights found for the requested route and date"
	MsgTimeout         = "request timed out"
	MsgThreeLetter     = "use three-letter codes"
)

// Error is the normalized failure returned by every gateway component.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Message is a human-readable description safe to show to callers.
	Message string

	// Provider names the adapter involved, if any.
	Provider string

	// UpstreamStatus is the HTTP status returned by the upstream, 0 if none.
	UpstreamStatus int

	// Err is the underlying cause, never shown to callers.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := string(e.Kind) + ": " + e.Message
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind, so errors.Is(err, &Error{Kind: KindNotFound}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Provider == ""
}

// WithProvider returns a copy of the error attributed to the given provider.
// An existing attribution is kept.
func (e *Error) WithProvider(provider string) *Error {
	if e.Provider != "" {
		return e
	}
	cp := *e
	cp.Provider = provider
	return &cp
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewInvalidInput creates an InvalidInput error from a format string.
func NewInvalidInput(format string, args ...interface{}) *Error {
	return newError(KindInvalidInput, fmt.Sprintf(format, args...))
}

// NewResolutionFailed creates a ResolutionFailed error naming the unresolved city.
func NewResolutionFailed(city string) *Error {
	return newError(KindResolutionFailed, fmt.Sprintf("could not resolve airport code for %q", city))
}

// NewAuthFailed creates an AuthFailed error.
func NewAuthFailed(message string, cause error) *Error {
	e := newError(KindAuthFailed, message)
	e.Err = cause
	return e
}

// NewRateLimited creates a RateLimited error.
func NewRateLimited(status int) *Error {
	e := newError(KindRateLimited, MsgRateLimited)
	e.UpstreamStatus = status
	return e
}

// NewNotFound creates a NotFound error for an empty upstream result set.
func NewNotFound() *Error {
	return newError(KindNotFound, MsgNoFlights)
}

// NewUpstreamError creates an UpstreamError carrying the upstream status and message.
func NewUpstreamError(status int, message string, cause error) *Error {
	if message == "" {
		message = MsgUpstreamGeneric
	}
	e := newError(KindUpstreamError, message)
	e.UpstreamStatus = status
	e.Err = cause
	return e
}

// NewTimeout creates a Timeout error.
func NewTimeout(cause error) *Error {
	e := newError(KindTimeout, MsgTimeout)
	e.Err = cause
	return e
}

// KindOf returns the error kind for any error.
// Deadline expiry maps to Timeout; unknown errors map to UpstreamError.
func KindOf(err error) ErrorKind {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindUpstreamError
}

// AsError normalizes any error into *Error.
// Unrecognized errors are reported generically as UpstreamError.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeout(err)
	}
	return NewUpstreamError(0, MsgUpstreamGeneric, err)
}

// IsKind reports whether err normalizes to the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
