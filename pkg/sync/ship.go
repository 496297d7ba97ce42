// Package sync copies the snapshot to the display host and keeps a short
// log of sync attempts.
package sync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ErrNoHost is returned when no display host is configured.
var ErrNoHost = errors.New("no display host configured")

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// DefaultShipTimeout bounds one scp invocation.
const DefaultShipTimeout = 15 * time.Second

// Shipper copies a file to host:dest over scp. Every attempt is recorded in
// the sync log at LogPath.
type Shipper struct {
	Host    string
	Dest    string
	LogPath string
	Timeout time.Duration
	Run     Runner
	Now     func() time.Time
}

// NewShipper returns a Shipper using scp from PATH.
func NewShipper(host, dest, logPath string) *Shipper {
	return &Shipper{
		Host:    host,
		Dest:    dest,
		LogPath: logPath,
		Timeout: DefaultShipTimeout,
		Run:     ExecRunner,
		Now:     time.Now,
	}
}

// Target is the scp destination, e.g. "pi@10.0.0.58:focusboard/dashboard/state.json".
func (s *Shipper) Target() string {
	return s.Host + ":" + s.Dest
}

// Ship copies file to the display host.
func (s *Shipper) Ship(ctx context.Context, file string) error {
	if s.Host == "" {
		return ErrNoHost
	}
	if _, err := os.Stat(file); err != nil {
		s.record("ERROR: nothing to ship (" + err.Error() + ")")
		return fmt.Errorf("shipping %s: %w", file, err)
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultShipTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	run := s.Run
	if run == nil {
		run = ExecRunner
	}
	out, err := run(ctx, "scp", scpArgs(file, s.Target())...)
	if err != nil {
		reason := strings.TrimSpace(string(out))
		if reason == "" {
			reason = "host offline?"
		}
		s.record("WARN: scp failed (" + reason + ")")
		return fmt.Errorf("scp to %s: %w", s.Host, err)
	}
	s.record("OK: synced to " + s.Host)
	return nil
}

// RecordFailure notes a failed generation in the sync log.
func (s *Shipper) RecordFailure(err error) {
	s.record("ERROR: generate failed: " + err.Error())
}

func (s *Shipper) record(msg string) {
	if s.LogPath == "" {
		return
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	_ = AppendLog(s.LogPath, now, msg)
}

func scpArgs(file, target string) []string {
	return []string{
		"-o", "ConnectTimeout=5",
		"-o", "BatchMode=yes",
		"-o", "StrictHostKeyChecking=no",
		file, target,
	}
}
