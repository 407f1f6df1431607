package models

// QueryRequest is the JSON body sent to the query endpoint
type QueryRequest struct {
	Question string `json:"question"`
}

// QueryResponse is the expected shape of a successful response.
// The answer field may be absent; callers treat that as an empty answer.
type QueryResponse struct {
	Answer string `json:"answer"`
}

// ErrorDetail documents the error body shapes the backend produces:
// either {"detail": "<text>"} or {"detail": {"message": "<text>"}}.
// Responses are probed leniently (gjson), so this type exists for
// documentation and for tests that build error bodies.
type ErrorDetail struct {
	Detail any `json:"detail"`
}
