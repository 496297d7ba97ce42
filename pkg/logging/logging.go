// Package logging configures the process-wide slog logger: everything at
// debug level to a log file in the state directory, warnings and errors to
// stderr.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// The file rolls over at maxLogMB and keeps maxBackups old copies.
const (
	maxLogMB   = 1
	maxBackups = 2
)

// Options controls Setup.
type Options struct {
	// Path of the debug log file. Empty disables file logging.
	Path string
	// Stderr receives records at StderrLevel and above. Nil means os.Stderr.
	Stderr      io.Writer
	StderrLevel slog.Level
}

// Setup installs the default logger and returns a function that closes the
// log file. A log file that cannot be opened is reported and stderr logging
// still works.
func Setup(opts Options) (func() error, error) {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	handlers := []slog.Handler{
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: opts.StderrLevel}),
	}

	closeFn := func() error { return nil }
	var setupErr error
	if opts.Path != "" {
		w, err := openLogFile(opts.Path)
		if err != nil {
			setupErr = err
		} else {
			handlers = append(handlers, slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
			closeFn = w.Close
		}
	}

	slog.SetDefault(slog.New(NewTee(handlers...)))
	return closeFn, setupErr
}

// openLogFile checks that path is writable and returns a size-rotating
// writer for it.
func openLogFile(path string) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxLogMB,
		MaxBackups: maxBackups,
	}, nil
}

// Tee fans records out to several handlers, each applying its own level.
type Tee struct {
	handlers []slog.Handler
}

// NewTee returns a handler writing to every h.
func NewTee(h ...slog.Handler) *Tee {
	return &Tee{handlers: h}
}

func (t *Tee) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t *Tee) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *Tee) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		out[i] = h.WithAttrs(attrs)
	}
	return &Tee{handlers: out}
}

func (t *Tee) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		out[i] = h.WithGroup(name)
	}
	return &Tee{handlers: out}
}
