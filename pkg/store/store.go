package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Store manages the state directory: source caches, the generated
// snapshot, the sync log and the debug log.
type Store struct {
	Root string // e.g., ~/.local/share/focusboard
}

// NewStore creates a Store rooted at the given directory.
// It creates the directory structure if it doesn't exist.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, "cache"), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Store{Root: root}, nil
}

// CacheDir returns the path to the source cache directory.
func (s *Store) CacheDir() string {
	return filepath.Join(s.Root, "cache")
}

// CachePath returns the cache side file for a source.
func (s *Store) CachePath(source string) string {
	return filepath.Join(s.CacheDir(), source+".json")
}

// SnapshotPath is where `focusboard sync` writes the document before shipping.
func (s *Store) SnapshotPath() string {
	return filepath.Join(s.Root, "state.json")
}

// SyncLogPath returns the path to the bounded sync log.
func (s *Store) SyncLogPath() string {
	return filepath.Join(s.Root, "sync.log")
}

// LogPath returns the path to the debug log.
func (s *Store) LogPath() string {
	return filepath.Join(s.Root, "focusboard.log")
}

// LoadCache decodes the cached payload for source into v when it was
// written less than ttl before now. It reports whether v was filled.
// A missing, stale or unreadable cache is a miss, not an error.
func (s *Store) LoadCache(source string, ttl time.Duration, now time.Time, v any) bool {
	data, err := os.ReadFile(s.CachePath(source))
	if err != nil {
		return false
	}
	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return false
	}
	if entry.CachedAt.IsZero() || now.Sub(entry.CachedAt) >= ttl || now.Before(entry.CachedAt) {
		return false
	}
	if err := json.Unmarshal(entry.Payload, v); err != nil {
		return false
	}
	return true
}

// SaveCache writes v as the cached payload for source, stamped with now.
func (s *Store) SaveCache(source string, now time.Time, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s cache: %w", source, err)
	}
	data, err := json.Marshal(CacheEntry{CachedAt: now, Payload: payload})
	if err != nil {
		return fmt.Errorf("encoding %s cache: %w", source, err)
	}
	if err := WriteFileAtomic(s.CachePath(source), data, 0644); err != nil {
		return fmt.Errorf("writing %s cache: %w", source, err)
	}
	return nil
}

// ReadDocument returns the contents of a vault document. A missing file is
// reported as ("", false, nil).
func ReadDocument(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return string(data), true, nil
}

// LoadStreakLog reads the streak log at path. A missing file yields an empty
// log; a corrupt file yields an empty log and the decode error.
func LoadStreakLog(path string) (*StreakLog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewStreakLog(), nil
	}
	if err != nil {
		return NewStreakLog(), fmt.Errorf("reading streak log: %w", err)
	}

	l := NewStreakLog()
	if err := json.Unmarshal(data, l); err != nil {
		return NewStreakLog(), fmt.Errorf("parsing streak log: %w", err)
	}
	if l.DailyLog == nil {
		l.DailyLog = make(map[string]map[string]bool)
	}
	if l.Streaks == nil {
		l.Streaks = make(map[string]StreakRecord)
	}
	return l, nil
}

// SaveStreakLog writes the streak log to path.
func SaveStreakLog(path string, l *StreakLog) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding streak log: %w", err)
	}
	if err := WriteFileAtomic(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing streak log: %w", err)
	}
	return nil
}

// WriteFileAtomic writes data to a temp file next to path and renames it into
// place, creating parent directories as needed. Readers never observe a
// partially written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}
