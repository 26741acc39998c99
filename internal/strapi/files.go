package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"marketdoctors.com/admin-gateway/internal/metrics"
)

// UploadFile forwards an arbitrary document to the content API's file
// forwarder and returns the public URL it was stored under.
func (c *Client) UploadFile(ctx context.Context, filename string, content io.Reader) (string, error) {
	return c.forwardFile(ctx, "/api/file-forward", filename, content)
}

// UploadImage forwards an image through the image-specific forwarder, which
// rejects non-image content types upstream.
func (c *Client) UploadImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	return c.forwardFile(ctx, "/api/file-forward/image", filename, content)
}

func (c *Client) forwardFile(ctx context.Context, path, filename string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("failed to read upload content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	fetchStart := time.Now()
	resp, err := c.httpClient.Do(req)
	fetchDuration := time.Since(fetchStart)

	if err != nil {
		metrics.RecordUpstreamRequest("content_api", http.MethodPost, "error", fetchDuration)
		return "", fmt.Errorf("failed to reach content API: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordUpstreamRequest("content_api", http.MethodPost, "error", fetchDuration)
		return "", fmt.Errorf("failed to read content API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordUpstreamRequest("content_api", http.MethodPost, "error", fetchDuration)
		return "", &APIError{StatusCode: resp.StatusCode, Message: extractMessage(payload)}
	}
	metrics.RecordUpstreamRequest("content_api", http.MethodPost, "success", fetchDuration)

	var result struct {
		FileURL string `json:"fileUrl"`
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		return "", fmt.Errorf("failed to decode file forward response: %w", err)
	}
	if result.FileURL == "" {
		return "", fmt.Errorf("file forward response missing fileUrl")
	}
	return result.FileURL, nil
}
