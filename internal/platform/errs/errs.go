package errs

import (
	"errors"
	"fmt"
)

// Kind categorizes application errors for HTTP status mapping.
type Kind int

const (
	// Unknown represents an unclassified error.
	Unknown Kind = iota
	// Validation indicates the url or keyword was missing or malformed (HTTP 400).
	Validation
	// Network indicates the target could not be reached at all (HTTP 502).
	Network
	// Fetch indicates the target answered with a non-2xx status (HTTP 502).
	Fetch
	// Timeout indicates the analysis took too long (HTTP 504).
	Timeout
	// Parse indicates the response body could not be decoded (HTTP 500).
	Parse
	// Summary indicates the summarization service call failed (HTTP 502).
	Summary
	// Misconfigured indicates a required setting is missing (HTTP 500).
	Misconfigured
)

var kindNames = map[Kind]string{
	Unknown:       "unknown",
	Validation:    "validation",
	Network:       "network",
	Fetch:         "fetch",
	Timeout:       "timeout",
	Parse:         "parse",
	Summary:       "summary",
	Misconfigured: "misconfigured",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// AppError carries a category, user message, and original cause.
type AppError struct {
	Kind           Kind
	UpstreamStatus int // HTTP status code returned by the target page
	Message        string
	Cause          error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// KindOf reports the Kind of the first AppError in err's chain, or Unknown.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Unknown
}
