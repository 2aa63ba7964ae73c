// Package llm provides the AI collaborators for grocery list processing:
// transcribing photographed handwritten lists into item names and
// verifying item/category assignments. It supports calling the Anthropic
// API directly or through the aisle-list backend proxy, with rate
// limiting and retry around either.
package llm

import (
	"context"
	"time"

	"github.com/nstrayer/aisle-list/internal/model"
	"github.com/nstrayer/aisle-list/internal/service"
)

// Client defines the interface for AI providers.
type Client interface {
	VerifyCategories(ctx context.Context, items []model.Assignment) ([]model.Assignment, error)
	ExtractItems(ctx context.Context, image service.Image) ([]string, error)
}

// Config holds configuration for AI clients.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	ProxyURL    string
	MaxRetries  int
	RetryDelay  time.Duration
	RateLimit   int
	Temperature float64
	MaxTokens   int
}
