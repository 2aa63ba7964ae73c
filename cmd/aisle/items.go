package main

import (
	"fmt"
	"time"

	"github.com/nstrayer/aisle-list/internal/cli"
	"github.com/nstrayer/aisle-list/internal/model"
	"github.com/nstrayer/aisle-list/internal/taxonomy"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	var listRef string
	var category string

	cmd := &cobra.Command{
		Use:   "add <item> [item...]",
		Short: "Add items to a list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			var list *model.GroceryList
			var existing []model.Item
			if listRef == "" {
				list, err = db.CreateList(ctx, fmt.Sprintf("Groceries %s", time.Now().Format("Jan 2")))
				if err != nil {
					return fmt.Errorf("failed to create list: %w", err)
				}
			} else {
				list, existing, err = loadList(ctx, db, listRef)
				if err != nil {
					return err
				}
			}

			// Manually added items land in "Other"; the classifier only
			// guesses for scanned items and renames.
			items := make([]model.Item, 0, len(args))
			for i, name := range args {
				cat := model.DefaultCategory
				if category != "" {
					cat = taxonomy.Default().Canonicalize(category)
				}
				items = append(items, model.Item{
					ID:        ulid.Make().String(),
					ListID:    list.ID,
					Name:      name,
					Category:  cat,
					SortOrder: len(existing) + i,
					CreatedAt: time.Now(),
				})
			}

			if err := db.SaveItems(ctx, items); err != nil {
				return fmt.Errorf("failed to save items: %w", err)
			}

			for _, item := range items {
				cmd.Printf("%s %s %s\n",
					cli.SuccessIcon, item.Name,
					cli.SectionStyle(item.Category).Render("["+item.Category+"]"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&listRef, "list", "l", "", "list to add to (default: a new list)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "store section for the new items (default: Other)")
	return cmd
}

func checkCmd() *cobra.Command {
	var uncheck bool

	cmd := &cobra.Command{
		Use:   "check <list> <item>",
		Short: "Check off an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			_, items, err := loadList(ctx, db, args[0])
			if err != nil {
				return err
			}

			item, err := resolveItem(items, args[1])
			if err != nil {
				return err
			}

			if err := db.SetItemChecked(ctx, item.ID, !uncheck); err != nil {
				return fmt.Errorf("failed to update item: %w", err)
			}

			if uncheck {
				cmd.Println(cli.FormatSuccess(fmt.Sprintf("Unchecked %s", item.Name)))
			} else {
				cmd.Println(cli.FormatSuccess(fmt.Sprintf("Checked off %s", item.Name)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&uncheck, "undo", "u", false, "uncheck instead")
	return cmd
}

func renameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <list> <item> <new-name>",
		Short: "Rename an item and re-detect its store section",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			_, items, err := loadList(ctx, db, args[0])
			if err != nil {
				return err
			}

			item, err := resolveItem(items, args[1])
			if err != nil {
				return err
			}

			item.Name = args[2]
			item.Category = taxonomy.Default().Classify(item.Name)
			if err := db.SaveItems(ctx, []model.Item{*item}); err != nil {
				return fmt.Errorf("failed to rename item: %w", err)
			}

			cmd.Printf("%s %s %s\n",
				cli.SuccessIcon, item.Name,
				cli.SectionStyle(item.Category).Render("["+item.Category+"]"))
			return nil
		},
	}
}

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <list> <item>",
		Short: "Remove an item from a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			_, items, err := loadList(ctx, db, args[0])
			if err != nil {
				return err
			}

			item, err := resolveItem(items, args[1])
			if err != nil {
				return err
			}

			if err := db.DeleteItem(ctx, item.ID); err != nil {
				return fmt.Errorf("failed to remove item: %w", err)
			}

			cmd.Println(cli.FormatSuccess(fmt.Sprintf("Removed %s", item.Name)))
			return nil
		},
	}
}

func recategorizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recategorize <list> <item> <section>",
		Short: "Move an item to a different store section",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			_, items, err := loadList(ctx, db, args[0])
			if err != nil {
				return err
			}

			item, err := resolveItem(items, args[1])
			if err != nil {
				return err
			}

			category := taxonomy.Default().Canonicalize(args[2])
			if err := db.UpdateItemCategory(ctx, item.ID, category); err != nil {
				return fmt.Errorf("failed to update item: %w", err)
			}

			cmd.Printf("%s %s %s\n",
				cli.SuccessIcon, item.Name,
				cli.SectionStyle(category).Render("["+category+"]"))
			return nil
		},
	}
}
