// Package errors provides custom error types for the askbox query client.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrMissingAPIKey  = errors.New("api key is required")
	ErrMissingBaseURL = errors.New("base url is required")
)

// GenericFailure is the user-facing fallback when a failure carries no
// usable detail of its own (network errors, empty status text).
const GenericFailure = "Request failed"

// APIError represents a query request that reached the backend and
// came back with a non-success status. Detail holds the human-readable
// text already derived from the response body.
type APIError struct {
	StatusCode int
	Endpoint   string
	Detail     string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Detail)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Detail)
}

// Is allows comparison with other APIErrors regardless of fields
func (e *APIError) Is(target error) bool {
	_, ok := target.(*APIError)
	return ok
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, detail string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Detail:     detail,
	}
}

// UserMessage derives the text shown to the end user for a failed
// request: the backend-provided detail when present, otherwise a
// generic failure message. Returns "" for nil errors.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}

	return GenericFailure
}

// GetHTTPStatus extracts the HTTP status code from an error chain.
// Returns 0 when the error carries no status.
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsCanceled reports whether an error stems from an aborted request
// rather than a genuine failure.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
