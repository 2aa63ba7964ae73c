// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/nstrayer/aisle-list/internal/model"
)

// Verifier is the category verification collaborator. Implementations
// send the current item/category assignments to an external AI service
// and return the corrected assignments. Transport, authorization, and
// decoding failures all surface as a single opaque error.
type Verifier interface {
	VerifyCategories(ctx context.Context, items []model.Assignment) ([]model.Assignment, error)
}

// Extractor transcribes a photographed handwritten grocery list into
// individual item names.
type Extractor interface {
	ExtractItems(ctx context.Context, image Image) ([]string, error)
}

// Image is a base64-encoded photo handed to the extraction service.
type Image struct {
	MediaType string `json:"mediaType"`
	Base64    string `json:"base64"`
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// List operations
	CreateList(ctx context.Context, name string) (*model.GroceryList, error)
	GetList(ctx context.Context, id string) (*model.GroceryList, error)
	GetLists(ctx context.Context) ([]model.GroceryList, error)
	DeleteList(ctx context.Context, id string) error

	// Item operations
	SaveItems(ctx context.Context, items []model.Item) error
	GetItems(ctx context.Context, listID string) ([]model.Item, error)
	UpdateItemCategory(ctx context.Context, itemID, category string) error
	SetItemChecked(ctx context.Context, itemID string, checked bool) error
	DeleteItem(ctx context.Context, itemID string) error

	// Verification bookkeeping
	SaveVerification(ctx context.Context, listID, fingerprint string) error
	GetLastFingerprint(ctx context.Context, listID string) (string, error)

	// Database management
	Migrate(ctx context.Context) (applied int, err error)
	Close() error
}

// RetryOptions configures retry behavior for service calls.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
