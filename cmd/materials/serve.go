// ABOUTME: Serve command to run the web interface.
// ABOUTME: Optionally reloads the baseline when its file changes.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harper/materials/internal/static"
	"github.com/harper/materials/internal/ui"
	"github.com/harper/materials/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web interface",
	Long:  `Serve the materials page with the submission form, live search and theme toggle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = rt.Config.HTTP.Addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		themes, err := rt.ThemeStore()
		if err != nil {
			return err
		}
		state, err := ui.LoadViewState(themes)
		if err != nil {
			rt.Log.WithError(err).Warn("load theme")
		}

		if rt.Config.WatchBaseline && rt.Baseline != nil && !rt.Baseline.IsRemote() {
			go watchBaseline(ctx, rt.Baseline.Path())
		}

		srv := web.NewServer(rt.Repo, themes, state, rt.Config.HTTP.RequestTimeout, rt.Log)
		fmt.Println(ui.Success(fmt.Sprintf("Serving on http://%s", addr)))
		return srv.Run(ctx, addr)
	},
}

func watchBaseline(ctx context.Context, path string) {
	err := static.Watch(ctx, path, func() {
		if _, err := rt.Repo.LoadAll(ctx); err != nil {
			rt.Log.WithError(err).Warn("baseline reload")
		}
	}, rt.Log)
	if err != nil {
		rt.Log.WithError(err).Error("baseline watcher stopped")
	}
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config http.addr)")
	rootCmd.AddCommand(serveCmd)
}
