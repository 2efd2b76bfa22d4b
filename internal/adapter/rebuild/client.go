// Package rebuild is the HTTP client for the external service that
// regenerates the resume artifact from an edited document.
package rebuild

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"resume-editor/internal/usecase"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	return &Client{BaseURL: baseURL, HTTP: &http.Client{Timeout: 60 * time.Second}}
}

type rebuildResponse struct {
	Status  string `json:"status"`
	ViewURL string `json:"view_url"`
	Error   string `json:"error"`
}

// Rebuild submits the serialized document and returns the new artifact
// reference.
func (c *Client) Rebuild(ctx context.Context, req usecase.RebuildRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	resp, err := c.doPostWithRetry(ctx, "/regenerate", body)
	if err != nil {
		return "", fmt.Errorf("rebuild request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("rebuild: read response: %w", err)
	}

	var out rebuildResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("rebuild: unexpected response (http %d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != "" {
			return "", fmt.Errorf("rebuild: %s", out.Error)
		}
		return "", fmt.Errorf("rebuild: http %d", resp.StatusCode)
	}
	if out.Status != "success" {
		if out.Error != "" {
			return "", fmt.Errorf("rebuild: %s", out.Error)
		}
		return "", fmt.Errorf("rebuild: status %q", out.Status)
	}
	return out.ViewURL, nil
}

// doPostWithRetry performs an HTTP POST to the given path with
// retry/backoff.
func (c *Client) doPostWithRetry(ctx context.Context, path string, body []byte) (*http.Response, error) {
	attempts := 3
	var lastErr error
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTP.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		// exponential backoff before retrying
		if i < attempts-1 {
			backoff := time.Duration(1<<i) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}
