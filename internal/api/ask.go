package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	apierrors "github.com/dmoura/askbox/internal/errors"
	"github.com/dmoura/askbox/internal/models"
)

// Ask sends one question to the backend and returns the answer text.
// A missing answer field on a successful response yields an empty
// string, not an error. Cancelling ctx aborts the request; the
// returned error then satisfies apierrors.IsCanceled.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	payload, err := json.Marshal(models.QueryRequest{Question: question})
	if err != nil {
		return "", fmt.Errorf("failed to build payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	req.Header.Set(models.HeaderAPIKey, c.apiKey)

	requestID := uuid.NewString()
	start := time.Now()
	log.Debug().
		Str("request_id", requestID).
		Str("endpoint", c.Endpoint()).
		Msg("sending query")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			// Distinguish an explicit abort from a transport failure
			return "", fmt.Errorf("query aborted: %w", ctx.Err())
		}
		log.Debug().
			Str("request_id", requestID).
			Err(err).
			Msg("query transport failure")
		return "", fmt.Errorf("query request failed: %w", err)
	}
	defer resp.Body.Close()

	// A body read failure is treated like an empty body: the detail
	// derivation below falls back to the status text.
	body, _ := io.ReadAll(resp.Body)

	log.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("query settled")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apierrors.NewAPIError(resp.StatusCode, models.QueryPath, deriveDetail(body, resp.StatusCode))
	}

	return gjson.GetBytes(body, "answer").String(), nil
}

// deriveDetail extracts the human-readable error text from a failure
// body. Precedence: detail as a string, detail.message, the HTTP
// status text, then a generic fallback. An unparseable body behaves
// like an empty object.
func deriveDetail(body []byte, statusCode int) string {
	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.Type == gjson.String:
		return detail.String()
	case detail.IsObject():
		if msg := detail.Get("message"); msg.Exists() {
			return msg.String()
		}
	}

	if text := http.StatusText(statusCode); text != "" {
		return text
	}
	return apierrors.GenericFailure
}
