package monitor

import (
	"errors"
	"fmt"
)

// FailureKind classifies how a site's pipeline failed. The kind is recorded
// in the error note of the resulting Verdict.
type FailureKind string

// Failure kinds surfaced in error Verdicts.
const (
	FailureFetch FailureKind = "fetch_error"
	FailureAPI   FailureKind = "api_error"
	FailureParse FailureKind = "parse_error"
)

// FetchError reports a failed page fetch (network, timeout, or HTTP status).
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// APIError reports a failed remote judgment call (network, auth, quota).
type APIError struct {
	Err error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("judgment call: %v", e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// ParseError reports a malformed judgment response.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("judgment response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ClassifyFailure maps a pipeline error onto a FailureKind. Unrecognized
// errors are treated as fetch failures since the fetch layer is the only
// untyped error source.
func ClassifyFailure(err error) FailureKind {
	var apiErr *APIError
	var parseErr *ParseError
	switch {
	case errors.As(err, &parseErr):
		return FailureParse
	case errors.As(err, &apiErr):
		return FailureAPI
	default:
		return FailureFetch
	}
}
