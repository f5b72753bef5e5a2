package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the calendar date layout accepted by the gateway.
const DateLayout = "2006-01-02"

// SearchQuery is the normalized, provider-agnostic flight search request.
type SearchQuery struct {
	// Origin is a free-text city name or a 3-letter IATA code (e.g., "New York", "JFK")
	Origin string `json:"origin"`

	// Destination is a free-text city name or a 3-letter IATA code
	Destination string `json:"destination"`

	// Date is the departure date in YYYY-MM-DD format
	Date string `json:"date"`

	// Provider optionally selects an adapter by name; empty means the configured default
	Provider string `json:"provider,omitempty"`
}

// ResolvedQuery is a SearchQuery whose endpoints are IATA codes.
type ResolvedQuery struct {
	// OriginCode is the IATA code of the departure airport or city
	OriginCode string `json:"originCode"`

	// DestinationCode is the IATA code of the arrival airport or city
	DestinationCode string `json:"destinationCode"`

	// Date is the departure date in YYYY-MM-DD format
	Date string `json:"date"`
}

// Route returns a compact "AAA-BBB" representation for logging.
func (q ResolvedQuery) Route() string {
	return q.OriginCode + "-" + q.DestinationCode
}

// iataCodeRegex matches valid IATA codes (3 uppercase letters).
var iataCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Normalize returns a copy of the query with surrounding whitespace removed.
func (q SearchQuery) Normalize() SearchQuery {
	return SearchQuery{
		Origin:      strings.TrimSpace(q.Origin),
		Destination: strings.TrimSpace(q.Destination),
		Date:        strings.TrimSpace(q.Date),
		Provider:    strings.TrimSpace(q.Provider),
	}
}

// Validate checks presence of all fields and the date format.
// It does not judge origin/destination shape; that depends on the resolution policy.
func (q SearchQuery) Validate() error {
	if q.Origin == "" || q.Destination == "" || q.Date == "" {
		return NewInvalidInput("origin, destination and date are required")
	}
	if !dateRegex.MatchString(q.Date) {
		return NewInvalidInput("date must be in YYYY-MM-DD format, got %q", q.Date)
	}
	if _, err := time.Parse(DateLayout, q.Date); err != nil {
		return NewInvalidInput("date is not a valid calendar date: %q", q.Date)
	}
	return nil
}

// IsIATACode reports whether s is exactly 3 uppercase letters.
func IsIATACode(s string) bool {
	return iataCodeRegex.MatchString(s)
}

// ResolutionPolicy decides how free-text origin/destination values are handled.
type ResolutionPolicy string

const (
	// PolicyResolve treats inputs of length <= 3 as IATA codes and resolves longer ones via lookup.
	PolicyResolve ResolutionPolicy = "resolve"

	// PolicyStrict accepts only 3-letter codes and rejects everything else.
	PolicyStrict ResolutionPolicy = "strict"
)

// Valid reports whether the policy is a known value.
func (p ResolutionPolicy) Valid() bool {
	return p == PolicyResolve || p == PolicyStrict
}

// NeedsLookup reports whether value must go through a Location Resolver under this policy.
func (p ResolutionPolicy) NeedsLookup(value string) bool {
	return p == PolicyResolve && utf8.RuneCountInString(value) > 3
}

// NormalizeCode applies the policy to a value that does not need lookup.
// Under PolicyResolve short inputs are uppercased; under PolicyStrict the
// input must already be 3 letters, in any case.
func (p ResolutionPolicy) NormalizeCode(field, value string) (string, error) {
	code := strings.ToUpper(value)
	if p == PolicyStrict && utf8.RuneCountInString(value) != 3 {
		return "", NewInvalidInput("%s %q is not an airport code: %s", field, value, MsgThreeLetter)
	}
	if !IsIATACode(code) {
		return "", NewInvalidInput("%s %q is not a valid airport code: %s", field, value, MsgThreeLetter)
	}
	return code, nil
}
