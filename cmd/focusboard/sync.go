package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/stefanpenner/focusboard/pkg/state"
	gsync "github.com/stefanpenner/focusboard/pkg/sync"
)

func newSyncCmd(a *app) *cobra.Command {
	var every time.Duration
	var output string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Generate the snapshot and ship it to the display host",
		Long: `Generate the snapshot into the state directory and copy it to the display
host over scp. With --every the cycle repeats on a fixed interval; cycles
never overlap.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = a.store.SnapshotPath()
			}
			a.settings.LogMissing()
			s := &syncer{builder: a.builder(), output: output, shipper: a.shipper()}

			if every <= 0 {
				return s.cycle(cmd.Context())
			}
			return s.loop(cmd.Context(), every)
		},
	}
	cmd.Flags().DurationVar(&every, "every", 0, "Repeat on this interval (e.g. 2m) until interrupted")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Snapshot path (default: <state-dir>/state.json)")
	return cmd
}

type syncer struct {
	builder *state.Builder
	output  string
	shipper *gsync.Shipper
}

// cycle generates, writes and ships once. A missing host or a failed ship
// is logged; only a failed write is returned.
func (s *syncer) cycle(ctx context.Context) error {
	doc := s.builder.Build(ctx)
	if err := doc.Write(s.output); err != nil {
		s.shipper.RecordFailure(err)
		return err
	}

	err := s.shipper.Ship(ctx, s.output)
	switch {
	case errors.Is(err, gsync.ErrNoHost):
		slog.Warn("snapshot not shipped", "err", err, "hint", "set sync.host or FOCUSBOARD_HOST")
	case err != nil:
		slog.Warn("snapshot not shipped", "err", err)
	default:
		slog.Debug("snapshot shipped", "target", s.shipper.Target())
	}
	return nil
}

func (s *syncer) loop(ctx context.Context, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		if err := s.cycle(ctx); err != nil {
			slog.Error("sync cycle failed", "err", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
