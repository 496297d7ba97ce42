package state

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefanpenner/focusboard/pkg/config"
	"github.com/stefanpenner/focusboard/pkg/keystone"
	"github.com/stefanpenner/focusboard/pkg/schedule"
	"github.com/stefanpenner/focusboard/pkg/sources"
	"github.com/stefanpenner/focusboard/pkg/store"
)

var buildNow = time.Date(2026, 2, 7, 10, 15, 0, 0, time.UTC)

const todayDoc = `# TODAY | Sat Feb 7

## Day Overview

| Time | Block | File | Task | Source |
|------|-------|------|------|--------|
| 6:30 | Morning Foundation | | Stretch+Coffee | Philosophy |
| 8:00 | Creation Stack | SOP-Recording.md | Record CC-013 | Pipeline |
| 9:30 | Power Hour | (no file) | Run + lift | — |

## Block Tracker

- [x] 6:30 Morning Foundation
- [x] 8:00 Creation Stack
- [ ] 9:30 Power Hour

## Done Today

- Shipped the CC-013 thumbnail

CC: 8 | Pioneers: 12 | HA: 7 | Zendo: 16 (43 total)
`

const keystonesDoc = `keystones:
  K1:
    name: Morning Foundation
  K2:
    name: Creation
  K3:
    name: Movement
tracking:
  critical_keystones: [K2]
`

const focusDoc = `**Video:** CC-014 Cursor Rules
**Action:** Script the intro

## The ONE Thing

**Finish the CC-014 script**
`

type fixture struct {
	paths config.Paths
	b     *Builder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	home := t.TempDir()
	paths := config.DefaultPaths(home)
	paths.HabitsDB = ""
	paths.Pipeline = ""

	b := &Builder{
		Catalog: schedule.DefaultCatalog(),
		Paths:   paths,
		Streaks: keystone.NewEngine(paths.Streaks),
		Sources: Sources{
			Calendar: sources.Static(sources.OK([]sources.Event{
				{Title: "Dentist", Start: "2026-02-07T15:00:00Z", End: "2026-02-07T16:00:00Z", Calendar: "Me", Color: "#e84393"},
			})),
			Legend:  []sources.LegendEntry{{Label: "Me", Color: "#e84393"}},
			Weather: sources.Static(sources.OK(sources.Weather{Temp: 72, Condition: "Clear", IconChar: "☀"})),
			System:  sources.Static(sources.OK(sources.System{DiskFreePct: 40, SyncOK: true, SyncAgeMin: 1})),
		},
		Now: func() time.Time { return buildNow },
	}
	return &fixture{paths: paths, b: b}
}

func (f *fixture) write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestBuildWithoutSchedule(t *testing.T) {
	f := newFixture(t)
	f.write(t, f.paths.Focus, focusDoc)

	doc := f.b.Build(context.Background())

	assert.True(t, doc.Meta.NoSchedule)
	assert.False(t, doc.Meta.AllDone)
	assert.Equal(t, SyncVersion, doc.Meta.SyncVersion)
	assert.Equal(t, "", doc.Now.Block)
	assert.Equal(t, "Waiting for schedule", doc.Now.Task)
	assert.Empty(t, doc.Blocks)
	assert.NotNil(t, doc.Blocks)
	assert.Empty(t, doc.Keystones)
	assert.Empty(t, doc.SOPTasks)
	assert.Empty(t, doc.DoneToday)

	assert.Equal(t, "2026-02-07", doc.Date)
	assert.Equal(t, "Sat Feb 7", doc.DayLabel)
	assert.Equal(t, "Finish the CC-014 script", doc.TomorrowFocus.OneThing)
	assert.Equal(t, schedule.DefaultQuote, doc.Quote)

	require.Len(t, doc.Calendar, 1)
	assert.Equal(t, 72, doc.Weather.Temp)
	assert.Equal(t, sources.StatusOK, doc.Sources[SourceCalendar])
	assert.Equal(t, sources.StatusDisabled, doc.Sources[SourceHabits])

	_, err := os.Stat(f.paths.Streaks)
	assert.True(t, os.IsNotExist(err), "no schedule means no streak update")
}

func TestBuildBlankScheduleIsNoSchedule(t *testing.T) {
	f := newFixture(t)
	f.write(t, f.paths.Today, "  \n\n")

	doc := f.b.Build(context.Background())
	assert.True(t, doc.Meta.NoSchedule)
	assert.Equal(t, schedule.WaitingNow(), doc.Now)
}

func TestBuild(t *testing.T) {
	f := newFixture(t)
	f.write(t, f.paths.Today, todayDoc)
	f.write(t, f.paths.Keystones, keystonesDoc)
	f.write(t, f.paths.Tasks, "- [ ] Pitch sponsor [P1] (30m) #email\n- [ ] Fix mic [P2]\n")

	doc := f.b.Build(context.Background())

	assert.False(t, doc.Meta.NoSchedule)
	assert.False(t, doc.Meta.AllDone)
	assert.Equal(t, "2026-02-07", doc.Date)
	assert.Equal(t, "Sat Feb 7", doc.DayLabel)

	require.Len(t, doc.Blocks, 3)
	foundation := doc.Blocks[0]
	assert.True(t, foundation.Done)
	assert.Equal(t, schedule.CategoryHealth, foundation.Category)
	assert.True(t, foundation.Required)
	assert.False(t, foundation.IsCurrent)
	assert.True(t, doc.Blocks[2].IsCurrent)
	assert.Equal(t, "Power Hour", doc.Now.Block)
	assert.Equal(t, "Run + lift", doc.Now.Task)

	require.Len(t, doc.Keystones, 3)
	byID := map[string]keystone.Keystone{}
	for _, k := range doc.Keystones {
		byID[k.ID] = k
	}
	assert.True(t, byID["K1"].Done)
	assert.True(t, byID["K2"].Done)
	assert.True(t, byID["K2"].Critical)
	assert.Equal(t, 1, byID["K2"].Streak)
	assert.Equal(t, 1, byID["K2"].BestStreak)
	assert.False(t, byID["K3"].Done)
	assert.Equal(t, 0, byID["K3"].Streak)

	assert.Equal(t, []schedule.SOPTask{{Name: "Record CC-013", Done: true, Block: "Creation Stack"}}, doc.SOPTasks)
	assert.Equal(t, []string{"Shipped the CC-013 thumbnail"}, doc.DoneToday)
	assert.Equal(t, 43, doc.RecordingReady.Total)
	assert.Equal(t, "Pitch sponsor", doc.BacklogNext.Task)
	assert.Equal(t, 1, doc.TaskCounts.P1Count)
	assert.Equal(t, schedule.NotPlannedYet, doc.TomorrowFocus.OneThing)

	log, err := store.LoadStreakLog(f.paths.Streaks)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"K1": true, "K2": true, "K3": false}, log.DailyLog["2026-02-07"])
}

func TestBuildAllDone(t *testing.T) {
	f := newFixture(t)
	done := `# TODAY | Sat Feb 7

| Time | Block | File | Task | Source |
|---|---|---|---|---|
| 6:30 | Morning Foundation | | Stretch | |

## Block Tracker

- [x] 6:30 Morning Foundation
`
	f.write(t, f.paths.Today, done)

	doc := f.b.Build(context.Background())
	assert.True(t, doc.Meta.AllDone)
	assert.False(t, doc.Meta.NoSchedule)
	assert.Equal(t, schedule.DayCompleteNow(), doc.Now)
	for _, blk := range doc.Blocks {
		assert.False(t, blk.IsCurrent)
	}
}

func TestBuildProseOnlySchedule(t *testing.T) {
	f := newFixture(t)
	f.write(t, f.paths.Today, "# TODAY | Sat Feb 7\n\nRest day.\n")

	doc := f.b.Build(context.Background())
	assert.True(t, doc.Meta.NoSchedule)
	assert.False(t, doc.Meta.AllDone)
	assert.Equal(t, schedule.WaitingNow(), doc.Now)
}

func TestBuildFrontmatterDate(t *testing.T) {
	f := newFixture(t)
	f.write(t, f.paths.Today, "---\ndate: 2026-02-06\n---\n"+todayDoc)

	doc := f.b.Build(context.Background())
	assert.Equal(t, "2026-02-06", doc.Date)
	assert.Equal(t, "Sat Feb 7", doc.DayLabel)
	require.Len(t, doc.Blocks, 3)
}

func TestBuildCalendarTimeout(t *testing.T) {
	f := newFixture(t)
	f.write(t, f.paths.Today, todayDoc)
	f.b.Sources.Calendar = sources.Static(sources.Failed([]sources.Event{}, context.DeadlineExceeded))

	doc := f.b.Build(context.Background())

	assert.Equal(t, sources.StatusFailed, doc.Sources[SourceCalendar])
	assert.Empty(t, doc.Calendar)
	assert.NotEmpty(t, doc.CalendarLegend)
	assert.Equal(t, 72, doc.Weather.Temp)
	assert.Len(t, doc.Blocks, 3)

	data, err := doc.Encode()
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []any{}, decoded["calendar"])
	assert.NotEmpty(t, decoded["calendar_legend"])
}

func TestBuildNilSourcesAreDisabled(t *testing.T) {
	f := newFixture(t)
	f.b.Sources = Sources{}

	doc := f.b.Build(context.Background())
	for _, name := range []string{SourceCalendar, SourceWeather, SourceReminders, SourceHabits, SourcePipeline, SourceSystem} {
		assert.Equal(t, sources.StatusDisabled, doc.Sources[name], name)
	}
	assert.Equal(t, sources.EmptyReminders(), doc.Reminders)
	assert.Equal(t, sources.EmptySystem(), doc.System)
	assert.NotNil(t, doc.Calendar)
	assert.NotNil(t, doc.CalendarLegend)
}

func TestBuildStreakWriteFailureStillReturnsValues(t *testing.T) {
	f := newFixture(t)
	f.write(t, f.paths.Today, todayDoc)
	f.write(t, f.paths.Keystones, keystonesDoc)

	blocker := filepath.Join(t.TempDir(), "file")
	f.write(t, blocker, "x")
	f.b.Streaks = keystone.NewEngine(filepath.Join(blocker, "streaks.json"))

	doc := f.b.Build(context.Background())
	require.Len(t, doc.Keystones, 3)
	assert.Equal(t, 1, doc.Keystones[1].Streak)
}

func TestBuildFailedSourceLogsAndContinues(t *testing.T) {
	f := newFixture(t)
	f.b.Sources.Weather = sources.Static(sources.Failed(sources.Weather{}, errors.New("401")))

	doc := f.b.Build(context.Background())
	assert.Equal(t, sources.StatusFailed, doc.Sources[SourceWeather])
	assert.Equal(t, sources.Weather{}, doc.Weather)
	assert.Len(t, doc.Calendar, 1)
}
