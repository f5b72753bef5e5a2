package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/flight-search/flight-gateway/internal/domain"
)

// Inspect validates a 2xx body and returns it unchanged when the marker field holds a non-empty array.
//
//   - body is not a JSON object: UpstreamError (malformed)
//   - "status": false: UpstreamError carrying the body's message
//   - marker missing or not an array: UpstreamError (malformed)
//   - marker is an empty array: NotFound
func Inspect(status int, body []byte, marker string) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, domain.NewUpstreamError(status, domain.MsgMalformed, fmt.Errorf("decode body: %w", err))
	}
	if fields == nil {
		return nil, domain.NewUpstreamError(status, domain.MsgMalformed, nil)
	}

	if raw, ok := fields["status"]; ok && bytes.Equal(bytes.TrimSpace(raw), []byte("false")) {
		return nil, domain.NewUpstreamError(status, ExtractMessage(body), nil)
	}

	raw, ok := fields[marker]
	if !ok {
		return nil, domain.NewUpstreamError(status, domain.MsgMalformed, fmt.Errorf("missing %q field", marker))
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, domain.NewUpstreamError(status, domain.MsgMalformed, fmt.Errorf("%q is not an array", marker))
	}
	if len(items) == 0 {
		return nil, domain.NewNotFound()
	}

	return json.RawMessage(body), nil
}
