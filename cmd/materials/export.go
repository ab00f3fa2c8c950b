// ABOUTME: Export command for backing up materials.
// ABOUTME: Writes the merged collection as JSON or YAML records.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/harper/materials/internal/filter"
	"github.com/harper/materials/internal/models"
	"github.com/harper/materials/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export materials",
	Long:  `Export the merged collection in the same record shape the stores and baselines use, so the output can be imported or served as a baseline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")
		search, _ := cmd.Flags().GetString("search")

		ms := filter.Filter(rt.Repo.Materials(), search)
		recs := make([]models.Record, len(ms))
		for i := range ms {
			recs[i] = ms[i].ToRecord()
		}

		var data []byte
		var err error
		switch format {
		case "json":
			data, err = json.MarshalIndent(recs, "", "  ")
		case "yaml":
			data, err = yaml.Marshal(recs)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
		if err != nil {
			return fmt.Errorf("encode materials: %w", err)
		}

		if outputPath == "" || outputPath == "-" {
			fmt.Println(string(data))
			return nil
		}

		if err := os.WriteFile(outputPath, data, 0644); err != nil { //nolint:gosec // Export files are meant to be shared
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Exported %d materials to %s", len(recs), outputPath)))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "export format (json|yaml)")
	exportCmd.Flags().StringP("output", "o", "", "output path")
	exportCmd.Flags().StringP("search", "s", "", "only export materials matching this query")
	rootCmd.AddCommand(exportCmd)
}
