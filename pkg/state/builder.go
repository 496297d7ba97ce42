package state

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/stefanpenner/focusboard/pkg/config"
	"github.com/stefanpenner/focusboard/pkg/keystone"
	"github.com/stefanpenner/focusboard/pkg/schedule"
	"github.com/stefanpenner/focusboard/pkg/sources"
	"github.com/stefanpenner/focusboard/pkg/store"
)

// Sources are the external inputs of a build. A nil source is reported as
// disabled.
type Sources struct {
	Calendar  sources.Source[[]sources.Event]
	Legend    []sources.LegendEntry
	Weather   sources.Source[sources.Weather]
	Reminders sources.Source[sources.Reminders]
	Habits    sources.Source[sources.Habits]
	Pipeline  sources.Source[sources.Pipeline]
	System    sources.Source[sources.System]
}

// Builder produces a Document per call. It holds no state between builds
// apart from what the streak engine persists.
type Builder struct {
	Catalog *schedule.Catalog
	Paths   config.Paths
	Streaks *keystone.Engine
	Sources Sources
	Now     func() time.Time
}

// NewBuilder wires the production sources from settings.
func NewBuilder(s *config.Settings, paths config.Paths, st *store.Store) *Builder {
	cal := sources.NewCalendar(s, st)
	return &Builder{
		Catalog: schedule.DefaultCatalog(),
		Paths:   paths,
		Streaks: keystone.NewEngine(paths.Streaks),
		Sources: Sources{
			Calendar:  cal,
			Legend:    cal.Legend(),
			Weather:   sources.NewOpenWeather(s, st),
			Reminders: sources.NewAppleReminders(s.Reminders.Lists),
			Habits:    &sources.HabitsDB{Path: paths.HabitsDB, Now: time.Now},
			Pipeline:  &sources.PipelineDir{Root: paths.Pipeline},
			System:    sources.NewHostProbe(st.SyncLogPath()),
		},
		Now: time.Now,
	}
}

// Build assembles a fresh document. It never fails: every missing or broken
// input degrades to its empty value.
func (b *Builder) Build(ctx context.Context) *Document {
	now := time.Now()
	if b.Now != nil {
		now = b.Now()
	}
	catalog := b.Catalog
	if catalog == nil {
		catalog = schedule.DefaultCatalog()
	}

	doc := &Document{
		GeneratedAt: now.Format(time.RFC3339),
		Date:        now.Format(schedule.DateLayout),
		DayLabel:    now.Format(schedule.LabelLayout),
		Now:         schedule.WaitingNow(),
		Blocks:      []schedule.Block{},
		Keystones:   []keystone.Keystone{},
		SOPTasks:    []schedule.SOPTask{},
		DoneToday:   []string{},
		Sources:     make(map[string]sources.Status),
		Meta:        Meta{SyncVersion: SyncVersion},
	}
	b.fillDocuments(doc)
	b.fillSources(ctx, doc)

	today := readDocument("today", b.Paths.Today)
	if strings.TrimSpace(today) == "" {
		doc.Meta.NoSchedule = true
		return doc
	}

	fm, body, err := store.SplitFrontmatter(today)
	if err != nil {
		slog.Warn("schedule frontmatter ignored", "path", b.Paths.Today, "err", err)
	}
	doc.Date, doc.DayLabel = schedule.ParseDateLabel(body, now)
	if fm.Date != "" {
		if _, err := time.Parse(schedule.DateLayout, fm.Date); err == nil {
			doc.Date = fm.Date
		} else {
			slog.Warn("schedule frontmatter date ignored", "date", fm.Date, "err", err)
		}
	}

	blocks := schedule.ParseBlocks(body, catalog)
	blocks = schedule.ApplyTracker(blocks, schedule.ParseTracker(body))
	blocks, current, _ := schedule.ResolveCurrent(blocks)
	doc.Blocks = blocks
	doc.Now = current

	defs, err := keystone.Load(readDocument("keystones", b.Paths.Keystones))
	if err != nil {
		slog.Warn("keystones unreadable", "path", b.Paths.Keystones, "err", err)
	}
	keystones := keystone.Match(defs, blocks, catalog)
	if b.Streaks != nil {
		keystones = b.Streaks.Update(keystones, doc.Date)
	}
	doc.Keystones = keystones

	doc.SOPTasks = schedule.ExtractSOPTasks(blocks, catalog)
	doc.DoneToday = schedule.ParseDoneToday(body)
	doc.RecordingReady = schedule.ParseRecordingReady(body)
	doc.Meta.NoSchedule = len(blocks) == 0
	doc.Meta.AllDone = schedule.AllDone(blocks)
	return doc
}

// fillDocuments sets the sections that come from vault documents other than
// the schedule.
func (b *Builder) fillDocuments(doc *Document) {
	doc.TomorrowFocus = schedule.ParseFocus(readDocument("focus", b.Paths.Focus))
	doc.Quote = schedule.ParseQuote(readDocument("philosophy", b.Paths.Philosophy))

	tasks := readDocument("tasks", b.Paths.Tasks)
	doc.BacklogNext = schedule.ParseBacklogNext(tasks)
	doc.TaskCounts = schedule.ParseTaskCounts(tasks, readDocument("quick wins", b.Paths.QuickWins))
	doc.DailyLog = schedule.ParseDailyLog(readDocument("daily log", b.Paths.DailyLog))
}

func (b *Builder) fillSources(ctx context.Context, doc *Document) {
	src := b.Sources

	doc.Calendar = fetch(ctx, doc, SourceCalendar, src.Calendar, []sources.Event{})
	doc.CalendarLegend = append([]sources.LegendEntry{}, src.Legend...)
	doc.Weather = fetch(ctx, doc, SourceWeather, src.Weather, sources.Weather{})
	doc.Reminders = fetch(ctx, doc, SourceReminders, src.Reminders, sources.EmptyReminders())
	doc.Habits = fetch(ctx, doc, SourceHabits, src.Habits, sources.Habits{})
	doc.Pipeline = fetch(ctx, doc, SourcePipeline, src.Pipeline, sources.Pipeline{})
	doc.System = fetch(ctx, doc, SourceSystem, src.System, sources.EmptySystem())
}

// fetch runs one source, records its status and logs failures.
func fetch[T any](ctx context.Context, doc *Document, name string, src sources.Source[T], empty T) T {
	if src == nil {
		doc.Sources[name] = sources.StatusDisabled
		return empty
	}
	r := src.Fetch(ctx)
	doc.Sources[name] = r.Status
	switch r.Status {
	case sources.StatusFailed:
		slog.Warn("source failed", "source", name, "err", r.Err)
	case sources.StatusDisabled:
		slog.Debug("source disabled", "source", name)
	}
	return r.Value
}

func readDocument(name, path string) string {
	if path == "" {
		return ""
	}
	content, found, err := store.ReadDocument(path)
	if err != nil {
		slog.Warn("document unreadable", "document", name, "path", path, "err", err)
		return ""
	}
	if !found {
		slog.Debug("document missing", "document", name, "path", path)
	}
	return content
}
