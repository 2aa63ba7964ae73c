package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nstrayer/aisle-list/internal/common"
	"github.com/nstrayer/aisle-list/internal/llm"
	"github.com/nstrayer/aisle-list/internal/model"
	"github.com/nstrayer/aisle-list/internal/service"
	"github.com/nstrayer/aisle-list/internal/storage"
	"github.com/spf13/viper"
)

// databasePath resolves the configured database location.
func databasePath() (string, error) {
	if dbPath := viper.GetString("database.path"); dbPath != "" {
		return dbPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "aisle", "aisle.db"), nil
}

// openStorage opens the configured database and applies migrations.
func openStorage(ctx context.Context) (service.Storage, error) {
	dbPath, err := databasePath()
	if err != nil {
		return nil, err
	}

	db, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	if _, err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// newAIVerifier builds the configured AI collaborator.
func newAIVerifier() (*llm.Verifier, error) {
	cfg := llm.Config{
		Provider:   viper.GetString("ai.provider"),
		APIKey:     viper.GetString("ai.api_key"),
		Model:      viper.GetString("ai.model"),
		ProxyURL:   viper.GetString("ai.proxy_url"),
		MaxRetries: viper.GetInt("ai.max_retries"),
		RetryDelay: viper.GetDuration("ai.retry_delay"),
		RateLimit:  viper.GetInt("ai.rate_limit"),
		MaxTokens:  viper.GetInt("ai.max_tokens"),
	}

	verifier, err := llm.NewVerifier(cfg, nil)
	if err != nil {
		return nil, common.NewUserError("failed to configure AI provider", err)
	}
	return verifier, nil
}

// resolveList finds a list by ID or unique name prefix.
func resolveList(ctx context.Context, db service.Storage, ref string) (*model.GroceryList, error) {
	if list, err := db.GetList(ctx, ref); err == nil {
		return list, nil
	}

	lists, err := db.GetLists(ctx)
	if err != nil {
		return nil, err
	}

	var matches []model.GroceryList
	for _, list := range lists {
		if strings.EqualFold(list.Name, ref) {
			return &list, nil
		}
		if strings.HasPrefix(strings.ToLower(list.Name), strings.ToLower(ref)) {
			matches = append(matches, list)
		}
	}

	switch len(matches) {
	case 1:
		return &matches[0], nil
	case 0:
		return nil, common.NewUserError(fmt.Sprintf("no list matching %q", ref), common.ErrNotFound)
	default:
		return nil, common.NewUserError(fmt.Sprintf("%q matches %d lists, be more specific", ref, len(matches)), nil)
	}
}

// loadList resolves a list reference and loads its items.
func loadList(ctx context.Context, db service.Storage, ref string) (*model.GroceryList, []model.Item, error) {
	list, err := resolveList(ctx, db, ref)
	if err != nil {
		return nil, nil, err
	}

	items, err := db.GetItems(ctx, list.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load items: %w", err)
	}

	return list, items, nil
}

// resolveItem finds an item on a list by ID or unique name prefix.
func resolveItem(items []model.Item, ref string) (*model.Item, error) {
	var matches []*model.Item
	for i := range items {
		if items[i].ID == ref || strings.EqualFold(items[i].Name, ref) {
			return &items[i], nil
		}
		if strings.HasPrefix(strings.ToLower(items[i].Name), strings.ToLower(ref)) {
			matches = append(matches, &items[i])
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, common.NewUserError(fmt.Sprintf("no item matching %q", ref), common.ErrNotFound)
	default:
		return nil, common.NewUserError(fmt.Sprintf("%q matches %d items, be more specific", ref, len(matches)), nil)
	}
}

// commandTimeout bounds one networked command invocation.
const commandTimeout = 2 * time.Minute
