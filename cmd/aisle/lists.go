package main

import (
	"fmt"
	"strings"

	"github.com/nstrayer/aisle-list/internal/cli"
	"github.com/nstrayer/aisle-list/internal/taxonomy"
	"github.com/spf13/cobra"
)

func listsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Show all grocery lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			lists, err := db.GetLists(ctx)
			if err != nil {
				return fmt.Errorf("failed to load lists: %w", err)
			}

			if len(lists) == 0 {
				cmd.Println("No lists yet. Create one with `aisle scan` or `aisle add`.")
				return nil
			}

			var b strings.Builder
			for _, list := range lists {
				items, err := db.GetItems(ctx, list.ID)
				if err != nil {
					return fmt.Errorf("failed to load items: %w", err)
				}
				checked := 0
				for _, item := range items {
					if item.Checked {
						checked++
					}
				}
				fmt.Fprintf(&b, "%s  %s (%d/%d checked)\n    %s\n",
					cli.CartIcon, list.Name, checked, len(items), list.ID)
			}
			cmd.Print(b.String())
			return nil
		},
	}

	cmd.AddCommand(deleteListCmd())
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <list>",
		Short: "Show a checklist grouped by store section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			list, items, err := loadList(ctx, db, args[0])
			if err != nil {
				return err
			}

			cmd.Println(cli.RenderChecklist(taxonomy.Default(), list, items))
			return nil
		},
	}
}

func deleteListCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <list>",
		Short: "Delete a list and all its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			list, err := resolveList(ctx, db, args[0])
			if err != nil {
				return err
			}

			if !force {
				ok, err := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).
					Confirm(ctx, fmt.Sprintf("Delete %q and all its items?", list.Name))
				if err != nil {
					return err
				}
				if !ok {
					cmd.Println("Canceled.")
					return nil
				}
			}

			if err := db.DeleteList(ctx, list.ID); err != nil {
				return fmt.Errorf("failed to delete list: %w", err)
			}

			cmd.Println(cli.FormatSuccess(fmt.Sprintf("Deleted %q", list.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}
