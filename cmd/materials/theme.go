// ABOUTME: Theme command for the persisted dark-mode preference.
// ABOUTME: Shows, toggles, or sets the view state shared with the web UI.

package main

import (
	"fmt"

	"github.com/harper/materials/internal/ui"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [toggle|dark|light]",
	Short:     "Show or change the theme",
	Long:      `Without an argument, print the current theme. The choice is stored with the local data and used by show and serve.`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"toggle", "dark", "light"},
	RunE: func(cmd *cobra.Command, args []string) error {
		themes, err := rt.ThemeStore()
		if err != nil {
			return err
		}
		if themes == nil {
			return fmt.Errorf("the %s store does not keep a theme", rt.Config.Store)
		}

		state, err := ui.LoadViewState(themes)
		if err != nil {
			return fmt.Errorf("load theme: %w", err)
		}

		if len(args) == 1 {
			switch args[0] {
			case "toggle":
				state = state.Toggled()
			case "dark":
				state.Dark = true
			case "light":
				state.Dark = false
			}
			if err := ui.SaveViewState(themes, state); err != nil {
				return fmt.Errorf("save theme: %w", err)
			}
		}

		fmt.Println(themeName(state))
		return nil
	},
}

func themeName(state ui.ViewState) string {
	if state.Dark {
		return "dark"
	}
	return "light"
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
