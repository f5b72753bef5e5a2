package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-gateway/internal/adapter/http/response"
)

// =====================================================
// Request ID Middleware Tests
// =====================================================

func TestRequestID_GeneratesNewID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID(zerolog.Nop())(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	require.NoError(t, handler(c))

	reqID := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, reqID, "should generate request ID")
	assert.Len(t, reqID, 36, "should be UUID format (36 chars)")
	assert.Equal(t, reqID, GetRequestID(c), "context ID should match header ID")
}

func TestRequestID_PropagatesExistingID(t *testing.T) {
	e := echo.New()
	existingID := "existing-request-id-12345"

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, existingID)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID(zerolog.Nop())(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	require.NoError(t, handler(c))

	assert.Equal(t, existingID, rec.Header().Get(RequestIDHeader), "should propagate existing request ID")
	assert.Equal(t, existingID, GetRequestID(c))
}

func TestRequestID_AttachesScopedLogger(t *testing.T) {
	var logBuf bytes.Buffer
	base := zerolog.New(&logBuf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "scoped-id")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID(base)(func(c echo.Context) error {
		zerolog.Ctx(c.Request().Context()).Info().Msg("inside handler")
		return c.NoContent(http.StatusNoContent)
	})

	require.NoError(t, handler(c))

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(logBuf.Bytes(), &logEntry))
	assert.Equal(t, "scoped-id", logEntry["request_id"])
	assert.Equal(t, "inside handler", logEntry["message"])
}

func TestGetRequestID_ReturnsEmptyWhenNotSet(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.Empty(t, GetRequestID(c), "should return empty string when not set")
}

// =====================================================
// Request Logging Middleware Tests
// =====================================================

func TestRequestLogger_LogsRequestDetails(t *testing.T) {
	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf).With().Timestamp().Logger()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/flights/search?origin=JFK", nil)
	req.Header.Set("User-Agent", "TestAgent/1.0")
	req.Header.Set("X-Real-IP", "192.168.1.100")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("request_id", "test-req-id-123")

	handler := RequestLogger(logger)(func(c echo.Context) error {
		c.Response().Header().Set(response.ProviderHeader, "amadeus")
		return c.String(http.StatusOK, "ok")
	})

	require.NoError(t, handler(c))

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(logBuf.Bytes(), &logEntry), "log output should be valid JSON")

	assert.Equal(t, "test-req-id-123", logEntry["request_id"])
	assert.Equal(t, "GET", logEntry["method"])
	assert.Equal(t, "/api/v1/flights/search", logEntry["path"])
	assert.Equal(t, "origin=JFK", logEntry["query"])
	assert.Equal(t, float64(200), logEntry["status"])
	assert.Equal(t, "amadeus", logEntry["provider"])
	assert.Equal(t, "192.168.1.100", logEntry["client_ip"])
	assert.Equal(t, "TestAgent/1.0", logEntry["user_agent"])
	assert.Contains(t, logEntry, "duration_ms")
	assert.Equal(t, "HTTP request", logEntry["message"])
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "2xx logs info", status: http.StatusOK, wantLevel: "info"},
		{name: "4xx logs warn", status: http.StatusNotFound, wantLevel: "warn"},
		{name: "429 logs warn", status: http.StatusTooManyRequests, wantLevel: "warn"},
		{name: "5xx logs error", status: http.StatusInternalServerError, wantLevel: "error"},
		{name: "504 logs error", status: http.StatusGatewayTimeout, wantLevel: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf bytes.Buffer
			logger := zerolog.New(&logBuf)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := RequestLogger(logger)(func(c echo.Context) error {
				return c.String(tt.status, "body")
			})

			require.NoError(t, handler(c))

			var logEntry map[string]interface{}
			require.NoError(t, json.Unmarshal(logBuf.Bytes(), &logEntry))
			assert.Equal(t, tt.wantLevel, logEntry["level"])
			assert.Equal(t, float64(tt.status), logEntry["status"])
		})
	}
}

func TestRequestLogger_HandlesReturnedError(t *testing.T) {
	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestLogger(logger)(func(c echo.Context) error {
		return echo.ErrNotFound
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(logBuf.Bytes(), &logEntry))
	assert.Equal(t, float64(404), logEntry["status"])
}

// =====================================================
// Recovery Middleware Tests
// =====================================================

func TestRecover_Returns500OnPanic(t *testing.T) {
	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("request_id", "panic-test-id")

	handler := Recover(logger)(func(c echo.Context) error {
		panic("test panic")
	})

	assert.NotPanics(t, func() {
		_ = handler(c)
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "upstream_error", body.Code)
	assert.Equal(t, response.MsgInternalError, body.Error)
	assert.NotContains(t, rec.Body.String(), "test panic")
}

func TestRecover_LogsPanicWithStackTrace(t *testing.T) {
	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("request_id", "stack-test-id")

	handler := Recover(logger)(func(c echo.Context) error {
		var slice []int
		_ = slice[10]
		return nil
	})

	_ = handler(c)

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(logBuf.Bytes(), &logEntry))

	assert.Equal(t, "error", logEntry["level"])
	assert.Equal(t, "stack-test-id", logEntry["request_id"])
	assert.Contains(t, logEntry["panic"], "index out of range")
	stack, ok := logEntry["stack"].(string)
	assert.True(t, ok)
	assert.True(t, strings.Contains(stack, "goroutine"), "stack should contain goroutine info")
	assert.Equal(t, "Panic recovered", logEntry["message"])
}

func TestRecoverWithConfig_DisableStackPrint(t *testing.T) {
	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RecoverWithConfig(logger, RecoveryConfig{DisablePrintStack: true})(func(c echo.Context) error {
		panic("no stack test")
	})

	_ = handler(c)

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(logBuf.Bytes(), &logEntry))
	assert.NotContains(t, logEntry, "stack", "stack should not be logged when disabled")
}

func TestRecover_PassesThroughNormalRequests(t *testing.T) {
	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/normal", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Recover(logger)(func(c echo.Context) error {
		return c.String(http.StatusOK, "normal response")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, "normal response", rec.Body.String())
	assert.Empty(t, logBuf.String(), "should not log anything for normal requests")
}

// =====================================================
// CORS Tests
// =====================================================

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("any origin by default", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://example.com")
		rec := httptest.NewRecorder()

		CORS(next, nil).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/flights/search", nil)
		req.Header.Set("Origin", "https://example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rec := httptest.NewRecorder()

		CORS(next, []string{"*"}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
	})

	t.Run("restricted origins", func(t *testing.T) {
		handler := CORS(next, []string{"https://app.example.com"})

		allowed := httptest.NewRequest(http.MethodGet, "/health", nil)
		allowed.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, allowed)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

		denied := httptest.NewRequest(http.MethodGet, "/health", nil)
		denied.Header.Set("Origin", "https://other.example.com")
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, denied)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

// =====================================================
// Integration Tests - Middleware Chain
// =====================================================

func TestSetup_ChainOrder(t *testing.T) {
	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf)

	e := echo.New()
	Setup(e, logger)

	e.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	reqID := rec.Header().Get(RequestIDHeader)
	require.NotEmpty(t, reqID)

	lines := strings.Split(strings.TrimSpace(logBuf.String()), "\n")
	require.Len(t, lines, 2, "panic line then request line")

	var panicEntry, requestEntry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &panicEntry))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &requestEntry))
	assert.Equal(t, "Panic recovered", panicEntry["message"])
	assert.Equal(t, reqID, panicEntry["request_id"])
	assert.Equal(t, "HTTP request", requestEntry["message"])
	assert.Equal(t, float64(500), requestEntry["status"])
	assert.Equal(t, reqID, requestEntry["request_id"])
}
