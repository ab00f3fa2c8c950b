// ABOUTME: Add command for submitting a new material.
// ABOUTME: Shapes flags like the web form and persists to the mutable store.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/harper/materials/internal/models"
	"github.com/harper/materials/internal/repository"
	"github.com/harper/materials/internal/ui"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <resource-name>",
	Short: "Add a material",
	Long: `Add a material to the writable store. Tags are a comma separated
list; each one is trimmed but empty entries are kept.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		form := models.Form{}
		if len(args) == 1 {
			form.ResourceName = args[0]
		}
		form.Contributor, _ = cmd.Flags().GetString("contributor")
		form.Link, _ = cmd.Flags().GetString("link")
		form.Tags, _ = cmd.Flags().GetString("tags")

		m := form.Material()
		if err := rt.Repo.Add(cmd.Context(), m); err != nil {
			var persistErr *repository.PersistError
			if errors.As(err, &persistErr) {
				return err
			}
			// Stored, but the collection could not be reloaded.
			fmt.Fprintln(os.Stderr, ui.Warning(err.Error()))
		}

		fmt.Println(ui.Success(fmt.Sprintf("Added material %s", m.ID.String()[:6])))
		return nil
	},
}

func init() {
	addCmd.Flags().StringP("contributor", "c", "", "who is sharing it")
	addCmd.Flags().StringP("link", "l", "", "where to find it")
	addCmd.Flags().StringP("tags", "t", "", "comma-separated tags")
	rootCmd.AddCommand(addCmd)
}
