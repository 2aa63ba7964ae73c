package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS lists (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS items (
					id TEXT PRIMARY KEY,
					list_id TEXT NOT NULL,
					name TEXT NOT NULL,
					category TEXT NOT NULL,
					checked INTEGER NOT NULL DEFAULT 0,
					sort_order INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (list_id) REFERENCES lists(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_items_list ON items(list_id)`,
				`CREATE INDEX idx_items_category ON items(category)`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute %q: %w", query, err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Verification fingerprints",
		Up: func(tx *sql.Tx) error {
			query := `CREATE TABLE IF NOT EXISTS verifications (
				list_id TEXT PRIMARY KEY,
				fingerprint TEXT NOT NULL,
				verified_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (list_id) REFERENCES lists(id) ON DELETE CASCADE
			)`
			if _, err := tx.Exec(query); err != nil {
				return fmt.Errorf("failed to create verifications table: %w", err)
			}
			return nil
		},
	},
}

// Migrate applies any pending schema migrations and returns how many
// were applied.
func (s *SQLiteStorage) Migrate(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var currentVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}

	applied := 0
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return applied, fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return applied, fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		applied++
		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	return applied, nil
}
