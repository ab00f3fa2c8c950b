// ABOUTME: List command for displaying materials.
// ABOUTME: Filters by search query and prints text, HTML, or JSON.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/harper/materials/internal/filter"
	"github.com/harper/materials/internal/render"
	"github.com/harper/materials/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List materials",
	Long:  `List every material, baseline first, optionally narrowed by a case-insensitive search over contributor, resource name and tags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		searchFlag, _ := cmd.Flags().GetString("search")
		formatFlag, _ := cmd.Flags().GetString("format")

		all := rt.Repo.Materials()
		shown := filter.Filter(all, searchFlag)

		switch formatFlag {
		case "text":
			if len(shown) == 0 {
				fmt.Println("No materials found.")
				return nil
			}
			for _, m := range shown {
				fmt.Print(ui.FormatMaterialListItem(m))
			}
			fmt.Println(ui.Separator())
			fmt.Println(ui.FormatCount(len(shown), len(all)))
		case "html":
			for _, f := range render.Render(shown) {
				fmt.Println(f)
			}
		case "json":
			data, err := json.MarshalIndent(shown, "", "  ")
			if err != nil {
				return fmt.Errorf("encode materials: %w", err)
			}
			fmt.Println(string(data))
		default:
			return fmt.Errorf("unknown format: %s", formatFlag)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("search", "s", "", "search query")
	listCmd.Flags().StringP("format", "f", "text", "output format (text|html|json)")
	rootCmd.AddCommand(listCmd)
}
