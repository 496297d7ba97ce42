package state

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefanpenner/focusboard/pkg/sources"
)

func TestEncodeShape(t *testing.T) {
	f := newFixture(t)
	f.write(t, f.paths.Today, strings.Replace(todayDoc, "Run + lift", "Run & lift", 1))
	f.b.Sources.Weather = nil

	data, err := f.b.Build(context.Background()).Encode()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "}\n"))
	assert.Contains(t, string(data), `"source": "Philosophy"`)
	assert.Contains(t, string(data), `"task": "Run & lift"`, "no HTML escaping")
	assert.Contains(t, string(data), "☀", "no unicode escaping")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{
		"generated_at", "date", "day_label", "now", "blocks", "keystones", "sop_tasks",
		"done_today", "tomorrow_focus", "recording_ready", "backlog_next", "task_counts",
		"daily_log", "quote", "calendar", "calendar_legend", "weather", "reminders",
		"habits", "pipeline", "system", "sources", "meta",
	} {
		assert.Contains(t, decoded, key)
	}

	assert.Equal(t, map[string]any{}, decoded["weather"])
	assert.Equal(t, map[string]any{}, decoded["habits"])
	assert.Equal(t, map[string]any{"count": float64(0), "items": []any{}}, decoded["reminders"])
	assert.Equal(t, map[string]any{
		"sync_version": float64(SyncVersion),
		"no_schedule":  false,
		"all_done":     false,
	}, decoded["meta"])
}

func TestEncodeKeepsZeroReadings(t *testing.T) {
	f := newFixture(t)
	f.b.Sources.Weather = sources.Static(sources.Cached(sources.Weather{Condition: "Snow", IconChar: "❄"}))
	f.b.Sources.Habits = sources.Static(sources.OK(sources.Habits{Total: 7, Level: 1, LevelTitle: "Beginner", Tiers: []sources.Tier{}}))
	f.b.Sources.Pipeline = sources.Static(sources.OK(sources.Pipeline{
		TotalActive:  4,
		ByStage:      map[string]int{"scripting": 4},
		ByChannel:    map[string]int{"cc": 4},
		NextToRecord: []sources.PipelineVideo{},
	}))

	data, err := f.b.Build(context.Background()).Encode()
	require.NoError(t, err)
	var decoded struct {
		Weather  map[string]any `json:"weather"`
		Habits   map[string]any `json:"habits"`
		Pipeline map[string]any `json:"pipeline"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	weather := decoded.Weather
	assert.Equal(t, float64(0), weather["temp"])
	assert.Equal(t, float64(0), weather["humidity"])
	assert.Equal(t, "Snow", weather["condition"])

	habits := decoded.Habits
	assert.Equal(t, float64(0), habits["completed"])
	assert.Equal(t, float64(7), habits["total"])
	assert.Equal(t, float64(0), habits["completion_pct"])
	assert.Equal(t, []any{}, habits["tiers"])

	pipeline := decoded.Pipeline
	assert.Equal(t, float64(0), pipeline["ready_to_record"])
	assert.Equal(t, float64(4), pipeline["total_active"])
	assert.Equal(t, []any{}, pipeline["next_to_record"])
}

func TestEncodeUnavailableSectionsAreEmptyObjects(t *testing.T) {
	f := newFixture(t)
	f.b.Sources.Weather = sources.Static(sources.Failed(sources.Weather{}, errors.New("401")))
	f.b.Sources.Habits = sources.Static(sources.Disabled(sources.Habits{}))

	data, err := f.b.Build(context.Background()).Encode()
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, key := range []string{"weather", "habits", "pipeline"} {
		assert.Equal(t, map[string]any{}, decoded[key], key)
	}
}

func TestWriteCreatesParents(t *testing.T) {
	f := newFixture(t)
	doc := f.b.Build(context.Background())

	path := filepath.Join(t.TempDir(), "out", "nested", "state.json")
	require.NoError(t, doc.Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc.GeneratedAt, decoded.GeneratedAt)
	assert.True(t, decoded.Meta.NoSchedule)
}

func TestWriteUnwritablePath(t *testing.T) {
	f := newFixture(t)
	doc := f.b.Build(context.Background())

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	assert.Error(t, doc.Write(filepath.Join(blocker, "state.json")))
}
