package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nstrayer/aisle-list/internal/common"
	"github.com/nstrayer/aisle-list/internal/model"
	"github.com/nstrayer/aisle-list/internal/service"
)

// Verifier wraps a raw AI client with rate limiting and retry. It is the
// concrete service.Verifier and service.Extractor handed to the rest of
// the application; transport errors retry internally, but a cycle that
// exhausts its retries surfaces as a single opaque failure.
type Verifier struct {
	client      Client
	logger      *slog.Logger
	rateLimiter *rateLimiter
	retryOpts   service.RetryOptions
}

// NewVerifier creates a rate-limited, retrying verifier from config.
func NewVerifier(cfg Config, logger *slog.Logger) (*Verifier, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Verifier{
		client:      client,
		logger:      logger,
		retryOpts:   retryOpts,
		rateLimiter: newRateLimiter(cfg.RateLimit),
	}, nil
}

// VerifyCategories implements service.Verifier.
func (v *Verifier) VerifyCategories(ctx context.Context, items []model.Assignment) ([]model.Assignment, error) {
	if len(items) == 0 {
		return nil, nil
	}

	var verified []model.Assignment
	err := common.WithRetry(ctx, func() error {
		if err := v.rateLimiter.wait(ctx); err != nil {
			return err
		}
		result, err := v.client.VerifyCategories(ctx, items)
		if err != nil {
			v.logger.Debug("verification attempt failed", "error", err)
			return err
		}
		verified = result
		return nil
	}, v.retryOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrVerificationFailed, err)
	}

	return verified, nil
}

// ExtractItems implements service.Extractor.
func (v *Verifier) ExtractItems(ctx context.Context, image service.Image) ([]string, error) {
	var names []string
	err := common.WithRetry(ctx, func() error {
		if err := v.rateLimiter.wait(ctx); err != nil {
			return err
		}
		result, err := v.client.ExtractItems(ctx, image)
		if err != nil {
			v.logger.Debug("extraction attempt failed", "error", err)
			return err
		}
		names = result
		return nil
	}, v.retryOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to extract items: %w", err)
	}

	return names, nil
}

// Close releases the rate limiter's background goroutine.
func (v *Verifier) Close() {
	v.rateLimiter.close()
}
