package storage

import (
	"context"
	"fmt"

	"github.com/nstrayer/aisle-list/internal/common"
	"github.com/nstrayer/aisle-list/internal/model"
)

// SaveItems inserts or replaces items in a single transaction.
func (s *SQLiteStorage) SaveItems(ctx context.Context, items []model.Item) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateItems(items); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `
		INSERT INTO items (id, list_id, name, category, checked, sort_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			checked = excluded.checked,
			sort_order = excluded.sort_order`

	for _, item := range items {
		if _, err := tx.ExecContext(ctx, query,
			item.ID, item.ListID, item.Name, item.Category,
			item.Checked, item.SortOrder, item.CreatedAt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to save item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit items: %w", err)
	}
	return nil
}

// GetItems returns a list's items ordered for display.
func (s *SQLiteStorage) GetItems(ctx context.Context, listID string) ([]model.Item, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(listID, "listID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, list_id, name, category, checked, sort_order, created_at
		FROM items
		WHERE list_id = ?
		ORDER BY sort_order, id`

	rows, err := s.db.QueryContext(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.ListID, &item.Name, &item.Category,
			&item.Checked, &item.SortOrder, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// UpdateItemCategory sets an item's category.
func (s *SQLiteStorage) UpdateItemCategory(ctx context.Context, itemID, category string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(itemID, "itemID"); err != nil {
		return err
	}
	if err := validateString(category, "category"); err != nil {
		return err
	}

	return s.execOnItem(ctx, itemID,
		`UPDATE items SET category = ? WHERE id = ?`, category, itemID)
}

// SetItemChecked sets an item's checked state.
func (s *SQLiteStorage) SetItemChecked(ctx context.Context, itemID string, checked bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(itemID, "itemID"); err != nil {
		return err
	}

	return s.execOnItem(ctx, itemID,
		`UPDATE items SET checked = ? WHERE id = ?`, checked, itemID)
}

// DeleteItem removes a single item.
func (s *SQLiteStorage) DeleteItem(ctx context.Context, itemID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(itemID, "itemID"); err != nil {
		return err
	}

	return s.execOnItem(ctx, itemID, `DELETE FROM items WHERE id = ?`, itemID)
}

// execOnItem runs a statement expected to affect exactly one item.
func (s *SQLiteStorage) execOnItem(ctx context.Context, itemID, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("item %s: %w", itemID, common.ErrNotFound)
	}
	return nil
}
