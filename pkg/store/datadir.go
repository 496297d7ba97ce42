package store

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "focusboard"

// StateDirEnv overrides the default state directory.
const StateDirEnv = "FOCUSBOARD_STATE"

// ResolveStateDir picks the directory for cache files, logs and the
// generated snapshot: explicit override, then $FOCUSBOARD_STATE, then the
// OS data directory.
func ResolveStateDir(override string) string {
	if override != "" {
		return override
	}
	if env := os.Getenv(StateDirEnv); env != "" {
		return env
	}
	return DefaultDataDir()
}

// DefaultDataDir returns the OS-appropriate default data directory.
//
//   - macOS:   ~/Library/Application Support/focusboard
//   - Linux:   $XDG_DATA_HOME/focusboard (fallback ~/.local/share/focusboard)
//   - Windows: %LOCALAPPDATA%\focusboard (fallback %APPDATA%\focusboard)
func DefaultDataDir() string {
	return defaultDataDirForOS(runtime.GOOS)
}

func defaultDataDirForOS(goos string) string {
	home, _ := os.UserHomeDir()

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		for _, env := range []string{"LOCALAPPDATA", "APPDATA"} {
			if dir := os.Getenv(env); dir != "" {
				return filepath.Join(dir, appName)
			}
		}
		return filepath.Join(home, appName)
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return filepath.Join(dir, appName)
		}
		return filepath.Join(home, ".local", "share", appName)
	}
}
