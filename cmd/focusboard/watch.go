package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	gsync "github.com/stefanpenner/focusboard/pkg/sync"
	"github.com/stefanpenner/focusboard/pkg/tui"
)

func newWatchCmd(a *app) *cobra.Command {
	var output string
	var ship bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the snapshot whenever vault documents change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = a.store.SnapshotPath()
			}
			var shipper *gsync.Shipper
			if ship {
				shipper = a.shipper()
			}
			return runWatch(cmd.Context(), a, output, shipper)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Snapshot path (default: <state-dir>/state.json)")
	cmd.Flags().BoolVar(&ship, "ship", false, "Also ship each regenerated snapshot to the display host")
	return cmd
}

func runWatch(ctx context.Context, a *app, output string, shipper *gsync.Shipper) error {
	changed := make(chan struct{}, 1)
	stop, err := tui.StartWatcher(a.paths.VaultDirs(), func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer stop()

	builder := a.builder()
	regenerate := func() {
		doc := builder.Build(ctx)
		if err := doc.Write(output); err != nil {
			slog.Error("snapshot not written", "err", err)
			return
		}
		slog.Info("snapshot regenerated", "path", output, "current", doc.Now.Block)
		if shipper != nil {
			if err := shipper.Ship(ctx, output); err != nil {
				slog.Warn("snapshot not shipped", "err", err)
			}
		}
	}

	regenerate()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changed:
			regenerate()
		}
	}
}
