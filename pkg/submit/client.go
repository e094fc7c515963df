package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithContract overrides the embedded intake contract. Pass nil to disable
// pre-flight payload checks entirely.
func WithContract(contract *Contract) Option {
	return func(c *Client) {
		c.contract = contract
		c.contractSet = true
	}
}

// WithRetryConfig tunes the retry/breaker executor.
func WithRetryConfig(cfg RetryConfig) Option {
	return func(c *Client) {
		c.exec = newExecutor(cfg)
	}
}

// Client posts completed applications to the intake endpoint.
type Client struct {
	endpoint    string
	http        *http.Client
	contract    *Contract
	contractSet bool
	exec        *executor
}

// NewClient constructs a Client for the given endpoint URL. The embedded
// contract and default retry policy apply unless overridden.
func NewClient(ctx context.Context, endpoint string, options ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New("submit: endpoint is required")
	}
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
		exec:     newExecutor(DefaultRetryConfig()),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if !c.contractSet {
		contract, err := DefaultContract(ctx)
		if err != nil {
			return nil, err
		}
		c.contract = contract
	}
	return c, nil
}

// Submit validates the payload against the intake contract and posts it.
// A nil return means the application was accepted; otherwise the error
// classifies whether the caller may retry.
func (c *Client) Submit(ctx context.Context, payload map[string]any) error {
	if err := c.contract.Check(payload); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return permanent(0, fmt.Errorf("encode payload: %w", err))
	}

	return c.exec.execute(ctx, func(ctx context.Context) error {
		return c.post(ctx, body)
	})
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return permanent(0, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return retryable(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	cause := fmt.Errorf("%s", bytes.TrimSpace(detail))
	if len(detail) == 0 {
		cause = errors.New(http.StatusText(resp.StatusCode))
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return retryable(resp.StatusCode, cause)
	}
	return permanent(resp.StatusCode, cause)
}
