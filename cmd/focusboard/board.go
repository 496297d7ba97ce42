package main

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/stefanpenner/focusboard/pkg/state"
	"github.com/stefanpenner/focusboard/pkg/tui"
)

func newBoardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show the live board in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd.Context(), a)
		},
	}
}

func runBoard(ctx context.Context, a *app) error {
	output := a.store.SnapshotPath()
	builder := a.builder()

	generate := func(ctx context.Context) (*state.Document, error) {
		doc := builder.Build(ctx)
		return doc, doc.Write(output)
	}

	var ship tui.ShipFunc
	if a.settings.SyncEnabled() {
		shipper := a.shipper()
		ship = func(ctx context.Context) error {
			return shipper.Ship(ctx, output)
		}
	}

	p := tea.NewProgram(tui.NewModel(generate, ship), tea.WithAltScreen(), tea.WithContext(ctx))

	cleanup, err := tui.StartWatcher(a.paths.VaultDirs(), func() {
		p.Send(tui.FileChangedMsg{})
	})
	if err != nil {
		slog.Warn("file watcher failed", "err", err)
	} else {
		defer cleanup()
	}

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
