package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nstrayer/aisle-list/internal/model"
)

// Validation errors.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")
	ErrEmptySlice  = errors.New("slice cannot be empty")
	ErrInvalidItem = errors.New("invalid item")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateItems validates a slice of items before persistence.
func validateItems(items []model.Item) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: items", ErrEmptySlice)
	}
	for i, item := range items {
		if item.ID == "" {
			return fmt.Errorf("%w at index %d: missing id", ErrInvalidItem, i)
		}
		if item.ListID == "" {
			return fmt.Errorf("%w at index %d: missing list id", ErrInvalidItem, i)
		}
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("%w at index %d: missing name", ErrInvalidItem, i)
		}
		if item.Category == "" {
			return fmt.Errorf("%w at index %d: missing category", ErrInvalidItem, i)
		}
	}
	return nil
}
