package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/open-cli-collective/tablecheck/pkg/checkbox"
)

const (
	defaultTimeout = 30 * time.Second
)

// Client talks to a running tablecheck preview server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new preview server client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// do executes an HTTP request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	// Ensure path starts with /
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Handle error responses
	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err != nil || (errResp.Message == "" && len(errResp.Errors) == 0) {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
		}
		errResp.StatusCode = resp.StatusCode
		return &errResp
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Documents lists the documents the server can render.
func (c *Client) Documents(ctx context.Context) ([]string, error) {
	var resp DocumentList
	if err := c.do(ctx, http.MethodGet, "/docs", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

// Render renders a document on the server.
func (c *Client) Render(ctx context.Context, document string) (*RenderResponse, error) {
	path := "/api/render?" + url.Values{"doc": {document}}.Encode()

	var resp RenderResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Toggle sets the target checkbox on the server.
func (c *Client) Toggle(ctx context.Context, target checkbox.Target, checked bool) (*ToggleResponse, error) {
	req := ToggleRequest{
		Document: target.Document,
		Line:     target.Line,
		Index:    target.Index,
		Checked:  checked,
	}

	var resp ToggleResponse
	if err := c.do(ctx, http.MethodPost, "/api/toggle", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
