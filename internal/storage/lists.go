package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nstrayer/aisle-list/internal/common"
	"github.com/nstrayer/aisle-list/internal/model"
)

// CreateList creates a new grocery list with a generated ID.
func (s *SQLiteStorage) CreateList(ctx context.Context, name string) (*model.GroceryList, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	list := &model.GroceryList{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	query := `INSERT INTO lists (id, name, created_at) VALUES (?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, list.ID, list.Name, list.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert list: %w", err)
	}

	return list, nil
}

// GetList returns a list by ID.
func (s *SQLiteStorage) GetList(ctx context.Context, id string) (*model.GroceryList, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `SELECT id, name, created_at FROM lists WHERE id = ?`

	var list model.GroceryList
	err := s.db.QueryRowContext(ctx, query, id).Scan(&list.ID, &list.Name, &list.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("list %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query list: %w", err)
	}

	return &list, nil
}

// GetLists returns all lists, newest first.
func (s *SQLiteStorage) GetLists(ctx context.Context) ([]model.GroceryList, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, name, created_at FROM lists ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var lists []model.GroceryList
	for rows.Next() {
		var list model.GroceryList
		if err := rows.Scan(&list.ID, &list.Name, &list.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, list)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lists: %w", err)
	}

	return lists, nil
}

// DeleteList removes a list along with its items and verification record.
func (s *SQLiteStorage) DeleteList(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deletion: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("list %s: %w", id, common.ErrNotFound)
	}

	return nil
}

// SaveVerification records the fingerprint of the last successful
// verification for a list, replacing any prior record.
func (s *SQLiteStorage) SaveVerification(ctx context.Context, listID, fingerprint string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(listID, "listID"); err != nil {
		return err
	}

	query := `
		INSERT INTO verifications (list_id, fingerprint, verified_at)
		VALUES (?, ?, ?)
		ON CONFLICT(list_id) DO UPDATE SET
			fingerprint = excluded.fingerprint,
			verified_at = excluded.verified_at`

	if _, err := s.db.ExecContext(ctx, query, listID, fingerprint, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save verification: %w", err)
	}
	return nil
}

// GetLastFingerprint returns the last-verified fingerprint for a list,
// or "" if the list has never been verified.
func (s *SQLiteStorage) GetLastFingerprint(ctx context.Context, listID string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(listID, "listID"); err != nil {
		return "", err
	}

	var fingerprint string
	err := s.db.QueryRowContext(ctx,
		`SELECT fingerprint FROM verifications WHERE list_id = ?`, listID).Scan(&fingerprint)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query verification: %w", err)
	}

	return fingerprint, nil
}
