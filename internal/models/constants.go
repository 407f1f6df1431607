// Package models contains wire types and constants for the askbox query API.
package models

// QueryPath is the question-answering endpoint, relative to the
// org-scoped base URL supplied by the caller.
const QueryPath = "/rag/query"

// HeaderAPIKey carries the org-scoped API key on every request.
const HeaderAPIKey = "X-API-Key"

// Widget defaults
const (
	DefaultTitle       = "Product Q&A"
	DefaultPlaceholder = "Ask a question…"
)

// DefaultHeaders returns the headers sent with every query request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
}
