// ABOUTME: Show command for displaying a single material.
// ABOUTME: Renders the material as markdown with glamour.

package main

import (
	"fmt"

	"github.com/harper/materials/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id-prefix>",
	Short: "Show a material",
	Long:  `Display a single material, found by the first 6 or more characters of its ID.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := rt.Repo.Find(args[0])
		if err != nil {
			return fmt.Errorf("failed to get material: %w", err)
		}

		themes, err := rt.ThemeStore()
		if err != nil {
			return err
		}
		state, err := ui.LoadViewState(themes)
		if err != nil {
			return fmt.Errorf("load theme: %w", err)
		}

		content, err := ui.FormatMarkdown(ui.MaterialMarkdown(m), state.Dark)
		if err != nil {
			return err
		}
		fmt.Print(content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
