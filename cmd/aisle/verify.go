package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nstrayer/aisle-list/internal/cli"
	"github.com/nstrayer/aisle-list/internal/reconcile"
	"github.com/nstrayer/aisle-list/internal/taxonomy"
	"github.com/spf13/cobra"
)

func verifyCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "verify <list>",
		Short: "Ask the AI to refine a list's store sections",
		Long: `Sends the list's current item/section assignments to the AI verifier
and proposes any corrections for review. Items the AI agrees with are
left alone; freeform sections you assigned by hand survive untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			db, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			list, items, err := loadList(ctx, db, args[0])
			if err != nil {
				return err
			}
			if len(items) == 0 {
				cmd.Println("Nothing to verify: the list is empty.")
				return nil
			}

			verifier, err := newAIVerifier()
			if err != nil {
				return err
			}
			defer verifier.Close()

			rec := reconcile.New(verifier, taxonomy.Default(), slog.Default())

			fingerprint, err := db.GetLastFingerprint(ctx, list.ID)
			if err != nil {
				return fmt.Errorf("failed to load verification history: %w", err)
			}
			rec.RestoreFingerprint(fingerprint)

			if !force && !rec.HasChangedSinceLastCheck(items) {
				cmd.Println(cli.FormatSuccess("Already verified; nothing has changed. Use --force to re-check."))
				return nil
			}

			prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

			for {
				cmd.Printf("Checking %d items...\n", len(items))

				var st reconcile.State
				select {
				case result, ok := <-rec.Start(ctx, items):
					if !ok {
						return fmt.Errorf("verification was superseded")
					}
					st = result
				case <-ctx.Done():
					return ctx.Err()
				}

				switch st.Phase {
				case reconcile.Idle:
					if err := db.SaveVerification(ctx, list.ID, rec.LastVerifiedFingerprint()); err != nil {
						return fmt.Errorf("failed to record verification: %w", err)
					}
					cmd.Println(cli.FormatSuccess("All sections look right."))
					return nil

				case reconcile.Suggesting:
					accepted, err := prompter.ReviewSuggestions(ctx, st.Suggestions)
					if err != nil {
						return err
					}
					if accepted {
						applied := rec.Accept(items)
						for _, s := range applied {
							if err := db.UpdateItemCategory(ctx, s.ItemID, s.To); err != nil {
								return fmt.Errorf("failed to update %s: %w", s.ItemName, err)
							}
						}
						cmd.Println(cli.FormatSuccess(fmt.Sprintf("Applied %d changes", len(applied))))
					} else {
						rec.Reject()
						cmd.Println("Kept your sections as they were.")
					}
					if err := db.SaveVerification(ctx, list.ID, rec.LastVerifiedFingerprint()); err != nil {
						return fmt.Errorf("failed to record verification: %w", err)
					}
					return nil

				case reconcile.Failed:
					retry, err := prompter.ConfirmRetry(ctx, st.Reason)
					if err != nil {
						return err
					}
					if !retry {
						return nil
					}

				default:
					return fmt.Errorf("unexpected verification state: %s", st.Phase)
				}
			}
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "re-check even if nothing changed")
	return cmd
}
