// Package api implements the HTTP client for the askbox query backend.
package api

import (
	"fmt"
	"strings"
	"time"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	apierrors "github.com/dmoura/askbox/internal/errors"
	"github.com/dmoura/askbox/internal/models"
)

// Client is the HTTP client for the question-answering backend. One
// client serves one org: the API key and base URL are fixed at
// construction.
type Client struct {
	httpClient tls_client.HttpClient
	apiKey     string
	baseURL    string
	timeout    time.Duration
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithTimeout sets the request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient injects a pre-built HTTP client (used in tests)
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new Client for the given org credentials.
// A single trailing slash on baseURL is tolerated and stripped.
func NewClient(apiKey, baseURL string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, apierrors.ErrMissingAPIKey
	}
	if strings.TrimSpace(baseURL) == "" {
		return nil, apierrors.ErrMissingBaseURL
	}

	client := &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: 120 * time.Second,
	}

	// Apply options
	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(client.timeout.Seconds())),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// BaseURL returns the normalized backend root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Endpoint returns the full query endpoint URL
func (c *Client) Endpoint() string {
	return c.baseURL + models.QueryPath
}
