package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/idtoken"
)

// Poster posts JSON payloads to the search service.
type Poster interface {
	PostJSON(ctx context.Context, path string, payload any, requestID string) (map[string]any, error)
}

// Client talks to the search service over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient builds a search client. With a nil client it authenticates with
// an ID token for baseURL, and falls back to a plain client when no
// credentials are available.
func NewClient(ctx context.Context, client *http.Client, baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("search base URL must not be empty")
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if client == nil {
		idc, err := idtoken.NewClient(ctx, baseURL)
		if err != nil {
			client = &http.Client{Timeout: 30 * time.Second}
		} else {
			client = idc
		}
	}
	return &Client{client: client, baseURL: baseURL}, nil
}

// PostJSON posts the payload and returns the "data" object of the response.
func (c *Client) PostJSON(ctx context.Context, path string, payload any, requestID string) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("search error (%d): %s", resp.StatusCode, extractError(resp.Body))
	}

	var out struct {
		Data  map[string]any `json:"data"`
		Error string         `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && err != io.EOF {
		return nil, fmt.Errorf("could not decode search response: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("search error: %s", out.Error)
	}
	return out.Data, nil
}

func extractError(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, 64<<10))
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	if msg := strings.TrimSpace(string(raw)); msg != "" {
		return msg
	}
	return "unknown error"
}

var _ Poster = (*Client)(nil)
