// Package keystone loads the daily keystone commitments, matches them
// against completed schedule blocks and keeps their streaks.
package keystone

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stefanpenner/focusboard/pkg/schedule"
)

// Keystone is one tracked daily commitment.
type Keystone struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Critical   bool   `json:"critical"`
	Done       bool   `json:"done"`
	Streak     int    `json:"streak"`
	BestStreak int    `json:"best_streak"`
}

type definitionFile struct {
	Keystones map[string]struct {
		Name string `yaml:"name"`
	} `yaml:"keystones"`
	Tracking struct {
		CriticalKeystones []string `yaml:"critical_keystones"`
	} `yaml:"tracking"`
}

// Load parses keystones.yaml into records sorted by id, all not done.
// A blank document yields no keystones.
func Load(content string) ([]Keystone, error) {
	out := []Keystone{}
	if strings.TrimSpace(content) == "" {
		return out, nil
	}

	var def definitionFile
	if err := yaml.Unmarshal([]byte(content), &def); err != nil {
		return out, fmt.Errorf("parsing keystones: %w", err)
	}

	critical := make(map[string]bool, len(def.Tracking.CriticalKeystones))
	for _, id := range def.Tracking.CriticalKeystones {
		critical[id] = true
	}

	for id, k := range def.Keystones {
		name := k.Name
		if name == "" {
			name = id
		}
		out = append(out, Keystone{ID: id, Name: name, Critical: critical[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Match returns copies of defs with Done set when any of the keystone's
// trigger blocks is complete.
func Match(defs []Keystone, blocks []schedule.Block, catalog *schedule.Catalog) []Keystone {
	done := make(map[string]bool)
	for _, b := range blocks {
		if b.Done {
			done[b.Name] = true
		}
	}

	out := make([]Keystone, len(defs))
	for i, k := range defs {
		k.Done = false
		for _, name := range catalog.Triggers(k.ID) {
			if done[name] {
				k.Done = true
				break
			}
		}
		out[i] = k
	}
	return out
}
