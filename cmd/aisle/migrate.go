package main

import (
	"fmt"

	"github.com/nstrayer/aisle-list/internal/cli"
	"github.com/nstrayer/aisle-list/internal/storage"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply any pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbPath, err := databasePath()
			if err != nil {
				return err
			}

			db, err := storage.NewSQLiteStorage(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open storage: %w", err)
			}
			defer db.Close()

			applied, err := db.Migrate(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to apply migrations: %w", err)
			}

			if applied > 0 {
				cmd.Println(cli.FormatSuccess(fmt.Sprintf("Applied %d migrations", applied)))
			} else {
				cmd.Println(cli.FormatSuccess("Database is up to date"))
			}
			return nil
		},
	}
}
