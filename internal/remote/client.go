// Package remote is the HTTP client for the finance document endpoint. It
// fetches and replaces the whole ledger, bounds every call with a fixed
// timeout, and normalizes transport failures into stable messages.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shakyaa89/MoneyTracker/internal/model"
)

// DefaultTimeout bounds each request unless overridden.
const DefaultTimeout = 15 * time.Second

// ErrTimeout reports that the server did not answer within the request timeout.
var ErrTimeout = errors.New("request timed out, please try again")

// Client talks to a finance document server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the server at baseURL, e.g.
// "http://localhost:4000".
func NewClient(baseURL string) *Client {
	return NewClientWithTimeout(baseURL, DefaultTimeout)
}

// NewClientWithTimeout creates a client with a custom request timeout.
// Non-positive timeouts fall back to DefaultTimeout.
func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the ledger document.
func (c *Client) Fetch(ctx context.Context) (model.Ledger, error) {
	return c.do(ctx, http.MethodGet, nil)
}

// Save replaces the ledger document and returns the stored copy.
func (c *Client) Save(ctx context.Context, l model.Ledger) (model.Ledger, error) {
	return c.do(ctx, http.MethodPut, &l)
}

func (c *Client) do(ctx context.Context, method string, payload *model.Ledger) (model.Ledger, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return model.Ledger{}, fmt.Errorf("encoding ledger: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/finance", body)
	if err != nil {
		return model.Ledger{}, fmt.Errorf("building request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return model.Ledger{}, ErrTimeout
		}
		return model.Ledger{}, fmt.Errorf("finance request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return model.Ledger{}, ErrTimeout
		}
		return model.Ledger{}, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.Ledger{}, errors.New(errorMessage(raw))
	}

	var out model.Ledger
	if err := json.Unmarshal(raw, &out); err != nil {
		return model.Ledger{}, fmt.Errorf("decoding finance response: %w", err)
	}
	return out, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}

// errorMessage extracts the server's {"message": ...} if present.
func errorMessage(raw []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return "request failed"
}
