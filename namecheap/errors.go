package namecheap

import (
	"errors"
	"fmt"
)

// Category classifies registrar error codes so callers can branch on the
// kind of failure without memorizing numeric codes.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryAuth
	CategoryAuthorization
	CategoryRateLimit
	CategoryValidation
	CategoryNotFound
)

func (c Category) String() string {
	switch c {
	case CategoryAuth:
		return "auth"
	case CategoryAuthorization:
		return "authorization"
	case CategoryRateLimit:
		return "rate-limit"
	case CategoryValidation:
		return "validation"
	case CategoryNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// APIError is an error reported by the registrar inside an otherwise
// successful HTTP exchange. Code and Message carry the registrar's own
// values; Hint is remediation text for codes we recognize.
type APIError struct {
	Code     string
	Message  string
	Hint     string
	Category Category
}

func (e *APIError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("[%s] %s (%s)", e.Code, e.Message, e.Hint)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// ValidationError reports bad local input before any request is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransportError wraps a network-level failure. Timeout distinguishes
// connect/read deadline expiry from other transport problems.
type TransportError struct {
	Op      string
	Err     error
	Timeout bool
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s: timeout: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError reports a response body that did not match the expected XML
// shape. Snippet holds the start of the offending body for diagnostics.
type ParseError struct {
	Err     error
	Snippet string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsTimeout reports whether err is a transport failure caused by a
// connect/read timeout or an expired context deadline.
func IsTimeout(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Timeout
}

type codeInfo struct {
	category Category
	hint     string
}

// knownCodes augments registrar numeric codes with a category and
// remediation text. Codes are from the Namecheap API error reference;
// anything absent here surfaces as CategoryUnknown with the raw code.
var knownCodes = map[string]codeInfo{
	"1010900": {CategoryAuth, "check that ApiUser and UserName match your Namecheap account"},
	"1011102": {CategoryAuth, "verify your API key and ensure API access is enabled at https://ap.www.namecheap.com/settings/tools/apiaccess/"},
	"1011147": {CategoryAuthorization, "whitelist your client IP in the Namecheap API settings"},
	"1011150": {CategoryAuthorization, "the ClientIp parameter was rejected; pass your public IPv4 address"},
	"500000":  {CategoryRateLimit, "API call quota exceeded (20/min, 700/hour, 8000/day); back off and retry later"},
	"2019166": {CategoryNotFound, "the domain was not found in your account"},
	"2016166": {CategoryAuthorization, "the domain is not associated with your account"},
	"2030166": {CategoryValidation, "the domain name is misspelled or not registrable"},
}

func newAPIError(code, message string) *APIError {
	e := &APIError{Code: code, Message: message}
	if info, ok := knownCodes[code]; ok {
		e.Category = info.category
		e.Hint = info.hint
	}
	return e
}
