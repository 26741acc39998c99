package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"marketdoctors.com/admin-gateway/internal/metrics"
)

// Client talks to the content API (a Strapi-style REST backend). It is the
// single place the upstream base URL is configured; every operation takes a
// context so abandoning the dashboard request cancels the upstream fetch.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a content API client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// APIError is a non-2xx answer from the content API with its upstream
// message extracted.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("content API returned %d: %s", e.StatusCode, e.Message)
}

// do issues one request and returns the raw response body. Non-2xx answers
// become APIError with the upstream message when one is present.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	fetchStart := time.Now()
	resp, err := c.httpClient.Do(req)
	fetchDuration := time.Since(fetchStart)

	if err != nil {
		metrics.RecordUpstreamRequest("content_api", method, "error", fetchDuration)
		return nil, fmt.Errorf("failed to reach content API: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordUpstreamRequest("content_api", method, "error", fetchDuration)
		return nil, fmt.Errorf("failed to read content API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordUpstreamRequest("content_api", method, "error", fetchDuration)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: extractMessage(payload)}
	}

	metrics.RecordUpstreamRequest("content_api", method, "success", fetchDuration)
	return payload, nil
}

// extractMessage digs the human-readable message out of the two error shapes
// the content API uses.
func extractMessage(payload []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return "unexpected upstream error"
	}
	if body.Message != "" {
		return body.Message
	}
	if body.Error.Message != "" {
		return body.Error.Message
	}
	return "unexpected upstream error"
}
