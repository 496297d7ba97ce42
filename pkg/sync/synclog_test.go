package sync

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendLogTrims(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pi", "sync.log")
	start := time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)

	for i := 0; i < MaxLogLines+5; i++ {
		require.NoError(t, AppendLog(path, start.Add(time.Duration(i)*time.Minute), fmt.Sprintf("OK %d", i)))
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, MaxLogLines)
	assert.Equal(t, "2026-02-07T00:05:00Z OK 5", lines[0])
	assert.Equal(t, "2026-02-07T01:44:00Z OK 104", lines[len(lines)-1])
}

func TestAppendLogFlattensNewlines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.log")
	require.NoError(t, AppendLog(path, time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC), "WARN: a\nb"))

	lines, err := TailLog(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-02-07T00:00:00Z WARN: a b"}, lines)
}

func TestTailLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.log")

	lines, err := TailLog(path, 3)
	require.NoError(t, err)
	assert.Empty(t, lines)

	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\nd\n"), 0o644))
	lines, err = TailLog(path, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "d"}, lines)
}
