package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nstrayer/aisle-list/internal/model"
	"github.com/nstrayer/aisle-list/internal/service"
	"github.com/nstrayer/aisle-list/internal/taxonomy"
)

const (
	anthropicEndpoint = "https://api.anthropic.com/v1/messages"
	anthropicVersion  = "2023-06-01"

	extractPrompt = `This is a handwritten grocery list. Please extract all the grocery items from this image and return them as a JSON array of strings. Each item should be a separate string in the array. Only include the item names, remove any bullets, quantities (like "2x"), or store names. Return ONLY the JSON array, nothing else. Example format: ["milk", "eggs", "bread"]`
)

// anthropicClient implements the Client interface for the Anthropic API.
type anthropicClient struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
}

// newAnthropicClient creates a new Anthropic API client.
func newAnthropicClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "claude-sonnet-4-5-20250929"
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	return &anthropicClient{
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// VerifyCategories asks the model to check each item's store section and
// return corrected assignments.
func (c *anthropicClient) VerifyCategories(ctx context.Context, items []model.Assignment) ([]model.Assignment, error) {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal items: %w", err)
	}

	sections := strings.Join(taxonomy.Default().Names(), ", ")
	prompt := fmt.Sprintf(`These grocery items have been assigned to store sections:

%s

Verify each assignment. Preferred sections are: %s. If an item is in the wrong section, correct it; you may use a new section name only when none of the preferred sections fits. Return ONLY a JSON array of objects with "id", "name", and "category" fields, one per input item, nothing else.`, itemsJSON, sections)

	content, err := c.complete(ctx, "You are a grocery store layout expert. Respond only with the JSON requested.", []map[string]any{
		{"type": "text", "text": prompt},
	})
	if err != nil {
		return nil, err
	}

	return parseAssignments(content)
}

// ExtractItems transcribes a photographed handwritten list into item names.
func (c *anthropicClient) ExtractItems(ctx context.Context, image service.Image) ([]string, error) {
	content, err := c.complete(ctx, "", []map[string]any{
		{
			"type": "image",
			"source": map[string]string{
				"type":       "base64",
				"media_type": image.MediaType,
				"data":       image.Base64,
			},
		},
		{"type": "text", "text": extractPrompt},
	})
	if err != nil {
		return nil, err
	}

	return parseItemNames(content)
}

// complete sends one user message and returns the text of the reply.
func (c *anthropicClient) complete(ctx context.Context, system string, content []map[string]any) (string, error) {
	requestBody := map[string]any{
		"model":      c.model,
		"max_tokens": c.maxTokens,
		"messages": []map[string]any{
			{
				"role":    "user",
				"content": content,
			},
		},
	}
	if system != "" {
		requestBody["system"] = system
	}
	if c.temperature > 0 {
		requestBody["temperature"] = c.temperature
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicEndpoint, strings.NewReader(string(jsonBody)))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response anthropicResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Content) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	return response.Content[0].Text, nil
}

// anthropicResponse represents the Anthropic API response structure.
type anthropicResponse struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Role       string `json:"role"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
	Content    []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}
