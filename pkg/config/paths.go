package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv overrides the default home directory.
const HomeEnv = "FOCUSBOARD_HOME"

// ResolveHome returns the directory holding the vault and timekeeper files.
// Resolution order: override (e.g. --home), then $FOCUSBOARD_HOME, then ~/.claude.
func ResolveHome(override string) (string, error) {
	if override != "" {
		return filepath.Clean(override), nil
	}
	if env := os.Getenv(HomeEnv); env != "" {
		return filepath.Clean(env), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".claude"), nil
}

// PathOverrides replaces individual document locations. Relative paths are
// taken relative to home.
type PathOverrides struct {
	Today      string `yaml:"today"`
	Focus      string `yaml:"focus"`
	Keystones  string `yaml:"keystones"`
	Philosophy string `yaml:"philosophy"`
	Streaks    string `yaml:"streaks"`
	DailyLog   string `yaml:"daily_log"`
	Tasks      string `yaml:"tasks"`
	QuickWins  string `yaml:"quick_wins"`
	HabitsDB   string `yaml:"habits_db"`
	Pipeline   string `yaml:"pipeline"`
}

// Paths is the resolved location of every document focusboard reads or
// rewrites.
type Paths struct {
	Home       string
	Config     string
	Today      string
	Focus      string
	Keystones  string
	Philosophy string
	Streaks    string
	DailyLog   string
	Tasks      string
	QuickWins  string
	HabitsDB   string
	Pipeline   string
}

// DefaultPaths lays out the documents under home.
func DefaultPaths(home string) Paths {
	vault := filepath.Join(home, "claude-vault")
	timekeeper := filepath.Join(home, "timekeeper")
	projects := filepath.Join(filepath.Dir(home), "Documents", "Projects", "Claude", "terminal")

	return Paths{
		Home:       home,
		Config:     filepath.Join(home, "pi", "focusboard-config.json"),
		Today:      filepath.Join(vault, "_active", "TODAY.md"),
		Focus:      filepath.Join(vault, "daily", "focus.md"),
		Keystones:  filepath.Join(timekeeper, "keystones.yaml"),
		Philosophy: filepath.Join(timekeeper, "philosophy.md"),
		Streaks:    filepath.Join(timekeeper, "keystone_streaks.json"),
		DailyLog:   filepath.Join(home, "daily", "current.md"),
		Tasks:      filepath.Join(vault, "_active", "TASKS.md"),
		QuickWins:  filepath.Join(vault, "_active", "QUICK-WINS.md"),
		HabitsDB:   filepath.Join(projects, "habit-tracker", "data", "habits.db"),
		Pipeline:   filepath.Join(projects, "YouTube-Ops"),
	}
}

// WithOverrides returns p with each non-empty override applied.
func (p Paths) WithOverrides(o PathOverrides) Paths {
	set := func(dst *string, v string) {
		if v == "" {
			return
		}
		if !filepath.IsAbs(v) {
			v = filepath.Join(p.Home, v)
		}
		*dst = v
	}
	set(&p.Today, o.Today)
	set(&p.Focus, o.Focus)
	set(&p.Keystones, o.Keystones)
	set(&p.Philosophy, o.Philosophy)
	set(&p.Streaks, o.Streaks)
	set(&p.DailyLog, o.DailyLog)
	set(&p.Tasks, o.Tasks)
	set(&p.QuickWins, o.QuickWins)
	set(&p.HabitsDB, o.HabitsDB)
	set(&p.Pipeline, o.Pipeline)
	return p
}

// VaultDirs returns the directories whose markdown changes should trigger
// a regeneration.
func (p Paths) VaultDirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, f := range []string{p.Today, p.Focus, p.Keystones, p.DailyLog, p.Tasks} {
		d := filepath.Dir(f)
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	return dirs
}
