package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/pointillism"
	"github.com/gogpu/pointillism/manifest"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload preset manifests as they change",
		Long: `Watch the manifest directory and rescan the registry whenever a preset
is added, edited or removed. The listing is printed after every rescan.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := a.cfg.Manifests
			if dir == "" {
				return errors.New("watch needs --manifests")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			printList(out, a.registry.Snapshot(), true)
			err := manifest.Watch(ctx, dir, a.registry, debounce, func(snap *pointillism.Snapshot) {
				printList(out, snap, true)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", manifest.DefaultDebounce, "quiet period before a rescan")
	return cmd
}
