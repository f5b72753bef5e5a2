package upstream

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/flight-search/flight-gateway/internal/domain"
)

// errorBody covers the error shapes seen across providers.
type errorBody struct {
	Message string `json:"message"`
	Errors  []struct {
		Detail string `json:"detail"`
		Title  string `json:"title"`
	} `json:"errors"`
}

// MapStatus converts a non-2xx status into a normalized error. It returns nil for 2xx.
func MapStatus(status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusTooManyRequests:
		return domain.NewRateLimited(status)
	case status == http.StatusUnauthorized:
		e := domain.NewAuthFailed(messageOr(body, "credentials rejected by upstream provider"), nil)
		e.UpstreamStatus = status
		return e
	default:
		return domain.NewUpstreamError(status, ExtractMessage(body), nil)
	}
}

// ExtractMessage returns the best-effort error message of an upstream body:
// a top-level "message", else "errors[0].detail", else "".
func ExtractMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(eb.Message); msg != "" {
		return msg
	}
	if len(eb.Errors) > 0 {
		if detail := strings.TrimSpace(eb.Errors[0].Detail); detail != "" {
			return detail
		}
		return strings.TrimSpace(eb.Errors[0].Title)
	}
	return ""
}

func messageOr(body []byte, fallback string) string {
	if msg := ExtractMessage(body); msg != "" {
		return msg
	}
	return fallback
}
