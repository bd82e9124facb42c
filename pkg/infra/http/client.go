package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dsfetch/dsfetch/pkg/domain/interfaces"
	"github.com/dsfetch/dsfetch/pkg/domain/types"
)

var (
	ErrNotFound     = errors.New("http: resource not found")
	ErrForbidden    = errors.New("http: access forbidden")
	ErrUnauthorized = errors.New("http: unauthorized")
	ErrStatus       = errors.New("http: unexpected status code")
)

// config holds internal HTTP client configuration
type config struct {
	authToken string
	timeout   time.Duration
	transport http.RoundTripper
}

// Option is a functional option for Client configuration
type Option func(*config)

// WithAuthToken sends the token as a bearer Authorization header
func WithAuthToken(token string) Option {
	return func(c *config) {
		c.authToken = token
	}
}

// WithTimeout limits the whole request including reading the body. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// WithTransport replaces the underlying round tripper
func WithTransport(rt http.RoundTripper) Option {
	return func(c *config) {
		c.transport = rt
	}
}

type client struct {
	httpClient *http.Client
	authToken  string
}

// NewClient creates a Fetcher for http and https URLs
func NewClient(opts ...Option) interfaces.Fetcher {
	cfg := &config{
		transport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &client{
		httpClient: &http.Client{
			Transport: cfg.transport,
			Timeout:   cfg.timeout,
		},
		authToken: cfg.authToken,
	}
}

// Fetch sends a GET request and returns the response body as a stream
func (c *client) Fetch(ctx context.Context, url string) (*interfaces.Stream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", "dsfetch/"+types.Version)
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", url, err)
	}

	if err := checkStatusCode(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to download %s: %w", url, err)
	}

	return &interfaces.Stream{
		Body: resp.Body,
		Size: resp.ContentLength,
	}, nil
}

// checkStatusCode returns an appropriate error for non-success status codes
func checkStatusCode(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return fmt.Errorf("%w: %d", ErrStatus, code)
	}
}
