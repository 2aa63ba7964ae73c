package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nstrayer/aisle-list/internal/model"
	"github.com/nstrayer/aisle-list/internal/service"
)

// proxyClient implements the Client interface against the aisle-list
// backend proxy, which holds the Anthropic API key server-side. The
// engine never sees which concrete client it is talking to.
type proxyClient struct {
	httpClient *http.Client
	baseURL    string
}

// newProxyClient creates a client that talks to the backend proxy.
func newProxyClient(cfg Config) (Client, error) {
	if cfg.ProxyURL == "" {
		return nil, fmt.Errorf("proxy URL is required")
	}

	return &proxyClient{
		baseURL: strings.TrimRight(cfg.ProxyURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// VerifyCategories forwards the assignments to the backend verify endpoint.
func (c *proxyClient) VerifyCategories(ctx context.Context, items []model.Assignment) ([]model.Assignment, error) {
	var result struct {
		Items []model.Assignment `json:"items"`
	}
	payload := map[string]any{"items": items}
	if err := c.post(ctx, "/api/verify", payload, &result); err != nil {
		return nil, err
	}

	for i, a := range result.Items {
		if a.ID == "" || a.Category == "" {
			return nil, fmt.Errorf("assignment %d is missing required fields", i)
		}
	}
	return result.Items, nil
}

// ExtractItems forwards the photo to the backend scan endpoint.
func (c *proxyClient) ExtractItems(ctx context.Context, image service.Image) ([]string, error) {
	var result struct {
		Items []string `json:"items"`
	}
	payload := map[string]any{"image": image}
	if err := c.post(ctx, "/api/scan", payload, &result); err != nil {
		return nil, err
	}

	if len(result.Items) == 0 {
		return nil, fmt.Errorf("no items found in response")
	}
	return result.Items, nil
}

func (c *proxyClient) post(ctx context.Context, path string, payload, result any) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("proxy error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
