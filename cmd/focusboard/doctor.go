package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed)
)

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check documents, credentials and tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !runDoctor(cmd.OutOrStdout(), a) {
				return errors.New("doctor checks failed")
			}
			return nil
		},
	}
}

// runDoctor prints one line per check. Only a missing home directory or
// today document is fatal; everything else degrades to a warning since the
// snapshot still generates without it.
func runDoctor(w io.Writer, a *app) bool {
	ok := true
	line := func(c *color.Color, mark, name, detail string) {
		fmt.Fprintf(w, "%s %-14s %s\n", c.Sprintf("%-8s", mark), name, detail)
	}
	okMark := func(name, detail string) { line(okColor, "OK", name, detail) }
	warnMark := func(name, detail string) { line(warnColor, "WARN", name, detail) }
	failMark := func(name, detail string) { line(failColor, "MISSING", name, detail) }

	fmt.Fprintf(w, "Home: %s\nState: %s\n\n", a.home, a.store.Root)

	if fi, err := os.Stat(a.home); err != nil || !fi.IsDir() {
		failMark("home", a.home)
		ok = false
	} else {
		okMark("home", a.home)
	}

	if _, err := os.Stat(a.paths.Config); err != nil {
		warnMark("config", a.paths.Config+" (using defaults)")
	} else {
		okMark("config", a.paths.Config)
	}

	docs := []struct {
		name     string
		path     string
		required bool
	}{
		{"today", a.paths.Today, true},
		{"focus", a.paths.Focus, false},
		{"keystones", a.paths.Keystones, false},
		{"philosophy", a.paths.Philosophy, false},
		{"tasks", a.paths.Tasks, false},
		{"quick wins", a.paths.QuickWins, false},
		{"daily log", a.paths.DailyLog, false},
		{"habits", a.paths.HabitsDB, false},
		{"pipeline", a.paths.Pipeline, false},
	}
	for _, d := range docs {
		switch _, err := os.Stat(d.path); {
		case err == nil:
			okMark(d.name, d.path)
		case d.required:
			failMark(d.name, d.path)
			ok = false
		default:
			warnMark(d.name, d.path)
		}
	}

	for _, field := range a.settings.Missing() {
		warnMark("credential", field)
	}
	if a.settings.SyncEnabled() {
		okMark("sync host", a.settings.Sync.Host)
	} else {
		warnMark("sync host", "not set (sync.host or FOCUSBOARD_HOST)")
	}

	tools := []string{"scp"}
	if runtime.GOOS == "darwin" {
		tools = append(tools, "osascript")
	}
	for _, tool := range tools {
		if p, err := exec.LookPath(tool); err == nil {
			okMark(tool, p)
		} else {
			warnMark(tool, "not on PATH")
		}
	}
	return ok
}
