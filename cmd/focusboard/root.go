package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/stefanpenner/focusboard/pkg/config"
	"github.com/stefanpenner/focusboard/pkg/logging"
	"github.com/stefanpenner/focusboard/pkg/state"
	"github.com/stefanpenner/focusboard/pkg/store"
	gsync "github.com/stefanpenner/focusboard/pkg/sync"
)

// app is the resolved environment shared by every command.
type app struct {
	home     string
	paths    config.Paths
	settings *config.Settings
	store    *store.Store
	closeLog func() error
}

func (a *app) builder() *state.Builder {
	return state.NewBuilder(a.settings, a.paths, a.store)
}

func (a *app) shipper() *gsync.Shipper {
	return gsync.NewShipper(a.settings.Sync.Host, a.settings.Sync.Dest, a.store.SyncLogPath())
}

type rootOptions struct {
	home     string
	stateDir string
	output   string
	verbose  bool
}

// NewRootCmd builds the focusboard command tree. Without a subcommand it
// generates one snapshot.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	cmd := &cobra.Command{
		Use:          "focusboard",
		Short:        "Aggregate the day's plan into one dashboard snapshot",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var stderr io.Writer = cmd.ErrOrStderr()
			if cmd.Name() == "board" {
				// The board owns the terminal.
				stderr = io.Discard
			}
			return a.setup(opts, stderr)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closeLog != nil {
				return a.closeLog()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, a, opts.output)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.home, "home", "", "Directory holding the vault and timekeeper (default: ~/.claude, env: FOCUSBOARD_HOME)")
	cmd.PersistentFlags().StringVar(&opts.stateDir, "state-dir", "", "Directory for cache, logs and state.json (env: FOCUSBOARD_STATE)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the snapshot to this file instead of stdout")

	cmd.AddCommand(newSyncCmd(a))
	cmd.AddCommand(newWatchCmd(a))
	cmd.AddCommand(newBoardCmd(a))
	cmd.AddCommand(newDoctorCmd(a))

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.SetVersionTemplate("{{.Version}}\n")
	if version != "" {
		cmd.Version = version
	} else {
		cmd.Version = "dev"
	}
	return cmd
}

func (a *app) setup(opts *rootOptions, stderr io.Writer) error {
	home, err := config.ResolveHome(opts.home)
	if err != nil {
		return err
	}
	st, err := store.NewStore(store.ResolveStateDir(opts.stateDir))
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	closeLog, err := logging.Setup(logging.Options{Path: st.LogPath(), Stderr: stderr, StderrLevel: level})
	if err != nil {
		slog.Warn("file logging disabled", "err", err)
	}

	paths := config.DefaultPaths(home)
	settings, err := config.Load(paths.Config)
	if err != nil {
		slog.Warn("using default settings", "err", err)
	}

	a.home = home
	a.paths = paths.WithOverrides(settings.Paths)
	a.settings = settings
	a.store = st
	a.closeLog = closeLog
	slog.Debug("resolved environment", "home", home, "state", st.Root, "config", paths.Config)
	return nil
}
