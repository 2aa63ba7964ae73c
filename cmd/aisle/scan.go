package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nstrayer/aisle-list/internal/cli"
	"github.com/nstrayer/aisle-list/internal/common"
	"github.com/nstrayer/aisle-list/internal/model"
	"github.com/nstrayer/aisle-list/internal/service"
	"github.com/nstrayer/aisle-list/internal/taxonomy"
	"github.com/oklog/ulid/v2"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var mediaTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

func scanCmd() *cobra.Command {
	var listName string

	cmd := &cobra.Command{
		Use:   "scan <photo> [photo...]",
		Short: "Create a checklist from photos of a handwritten list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			verifier, err := newAIVerifier()
			if err != nil {
				return err
			}
			defer verifier.Close()

			db, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			var bar *progressbar.ProgressBar
			if len(args) > 1 {
				bar = progressbar.NewOptions(len(args),
					progressbar.OptionSetDescription("Reading photos"),
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionClearOnFinish(),
				)
			}

			var names []string
			for _, path := range args {
				image, err := loadImage(path)
				if err != nil {
					return err
				}

				extracted, err := verifier.ExtractItems(ctx, image)
				if err != nil {
					return common.NewUserError("failed to read the list from the photo", err)
				}
				names = append(names, extracted...)

				if bar != nil {
					_ = bar.Add(1)
				}
			}

			if len(names) == 0 {
				return common.NewUserError("no items found in the photo", nil)
			}

			if listName == "" {
				listName = fmt.Sprintf("Groceries %s", time.Now().Format("Jan 2"))
			}

			list, err := db.CreateList(ctx, listName)
			if err != nil {
				return fmt.Errorf("failed to create list: %w", err)
			}

			tax := taxonomy.Default()
			items := make([]model.Item, 0, len(names))
			for i, name := range names {
				items = append(items, model.Item{
					ID:        ulid.Make().String(),
					ListID:    list.ID,
					Name:      name,
					Category:  tax.Classify(name),
					SortOrder: i,
					CreatedAt: time.Now(),
				})
			}

			if err := db.SaveItems(ctx, items); err != nil {
				return fmt.Errorf("failed to save items: %w", err)
			}

			cmd.Println(cli.FormatSuccess(fmt.Sprintf("Created %q with %d items", list.Name, len(items))))
			cmd.Println(cli.RenderChecklist(tax, list, items))
			return nil
		},
	}

	cmd.Flags().StringVarP(&listName, "name", "n", "", "name for the new list")
	return cmd
}

func loadImage(path string) (service.Image, error) {
	mediaType, ok := mediaTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return service.Image{}, common.NewUserError(fmt.Sprintf("unsupported image type: %s", path), nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return service.Image{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return service.Image{
		MediaType: mediaType,
		Base64:    base64.StdEncoding.EncodeToString(data),
	}, nil
}
