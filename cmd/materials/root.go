// ABOUTME: Root command with configuration and repository setup.
// ABOUTME: Opens the configured stores before any subcommand runs.

package main

import (
	"fmt"
	"os"

	"github.com/harper/materials/internal/app"
	"github.com/harper/materials/internal/config"
	"github.com/harper/materials/internal/ui"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	rt      *app.Runtime
)

var rootCmd = &cobra.Command{
	Use:   "materials",
	Short: "A catalog of tech materials",
	Long: `materials keeps a shared list of tech materials: a resource name,
who contributed it, a link and a few tags.

Materials are merged from an optional read-only baseline (a JSON or YAML
file or URL) and a writable store: sqlite, charm, local or memory.`,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v := config.New()
		if err := v.BindPFlag("store", cmd.Flags().Lookup("store")); err != nil {
			return err
		}
		if err := v.BindPFlag("baseline", cmd.Flags().Lookup("baseline")); err != nil {
			return err
		}

		cfg, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		log, err := cfg.Log.NewLogger(os.Stderr)
		if err != nil {
			return err
		}

		rt, err = app.Open(cfg, log)
		if err != nil {
			return err
		}

		// A failed load still leaves the repository usable; commands show
		// what they have.
		if _, err := rt.Repo.LoadAll(cmd.Context()); err != nil {
			fmt.Fprintln(os.Stderr, ui.Warning(err.Error()))
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if rt != nil {
			return rt.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		if rt != nil {
			_ = rt.Close()
		}
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().String("store", "", "mutable store: sqlite, charm, local or memory")
	rootCmd.PersistentFlags().String("baseline", "", "read-only baseline file or URL")
}
