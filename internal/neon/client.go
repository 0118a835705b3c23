package neon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/dhanushreddy291/neon-circle-ci-orb/internal/version"
)

const DefaultBaseURL = "https://console.neon.tech/api/v2"

// Neon API docs:
// - https://api-docs.neon.tech/reference/getting-started-with-neon-api

type Client struct {
	APIKey  string
	BaseURL string
	client  *http.Client
	logger  hclog.Logger
	retries uint64
}

type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.client = h
		}
	}
}

// WithBaseURL points the client at a different API host.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.BaseURL = baseURL
	}
}

func WithLogger(logger hclog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRetries enables up to n retries of transport failures and 5xx
// responses. The zero default performs each call exactly once.
func WithRetries(n uint64) Option {
	return func(c *Client) {
		c.retries = n
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request performs an authenticated API call and hands back the status
// code and raw body. HTTP-level failure is a result, not an error; the
// error return covers transport problems only.
func (c *Client) Request(method, path string, body any) (int, []byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshaling request body: %w", err)
		}
	}

	if c.retries == 0 {
		return c.do(method, path, payload)
	}

	var status int
	var respBody []byte
	operation := func() error {
		var err error
		status, respBody, err = c.do(method, path, payload)
		if err != nil {
			return err
		}
		if status >= 500 {
			return fmt.Errorf("server error %d", status)
		}
		return nil
	}
	err := backoff.Retry(operation, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.retries))
	if err != nil && status == 0 {
		return 0, nil, err
	}
	return status, respBody, nil
}

// RequestOrFail is the strict variant: any status >= 400 becomes an
// *APIError carrying the method, path, status and body.
func (c *Client) RequestOrFail(method, path string, body any) ([]byte, error) {
	status, respBody, err := c.Request(method, path, body)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, &APIError{Method: method, Path: path, StatusCode: status, Body: string(respBody)}
	}
	return respBody, nil
}

func (c *Client) do(method, path string, payload []byte) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("X-Request-Id", uuid.NewString())

	c.logger.Debug("neon API request", "method", method, "path", path)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response: %w", err)
	}

	c.logger.Debug("neon API response", "method", method, "path", path, "status", resp.StatusCode)

	return resp.StatusCode, respBody, nil
}
