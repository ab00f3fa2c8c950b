// ABOUTME: Import command for restoring materials from a backup.
// ABOUTME: Reads a JSON or YAML record list and appends each entry.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/harper/materials/internal/models"
	"github.com/harper/materials/internal/static"
	"github.com/harper/materials/internal/ui"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import materials",
	Long:  `Append every material in a JSON or YAML file (for example one written by export) to the writable store.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		recs, err := static.Parse(data, static.IsYAML(path))
		if err != nil {
			return err
		}

		ms := make([]*models.Material, 0, len(recs))
		for _, rec := range recs {
			m := models.Decode(rec)
			if m.ID == uuid.Nil {
				m.ID = uuid.New()
			}
			if m.CreatedAt.IsZero() {
				m.CreatedAt = time.Now()
			}
			ms = append(ms, &m)
		}

		count, err := rt.Repo.AddAll(cmd.Context(), ms)
		if err != nil {
			fmt.Println(ui.Warning(err.Error()))
		}
		if count == 0 && len(ms) > 0 {
			return fmt.Errorf("no materials imported")
		}

		fmt.Println(ui.Success(fmt.Sprintf("Imported %d materials", count)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
