package sync

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/stefanpenner/focusboard/pkg/store"
)

// MaxLogLines is how many lines the sync log keeps.
const MaxLogLines = 100

// AppendLog adds "<RFC3339> msg" to the log at path, keeping only the last
// MaxLogLines lines.
func AppendLog(path string, now time.Time, msg string) error {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading sync log: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(data) == 0 {
		lines = nil
	}
	msg = strings.ReplaceAll(msg, "\n", " ")
	lines = append(lines, now.Format(time.RFC3339)+" "+msg)
	if len(lines) > MaxLogLines {
		lines = lines[len(lines)-MaxLogLines:]
	}

	if err := store.WriteFileAtomic(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing sync log: %w", err)
	}
	return nil
}

// TailLog returns up to n of the most recent log lines, oldest first.
func TailLog(path string, n int) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading sync log: %w", err)
	}
	trimmed := strings.TrimRight(string(data), "\n")
	if trimmed == "" {
		return []string{}, nil
	}
	lines := strings.Split(trimmed, "\n")
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}
