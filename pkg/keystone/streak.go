package keystone

import (
	"log/slog"
	"time"

	"github.com/stefanpenner/focusboard/pkg/schedule"
	"github.com/stefanpenner/focusboard/pkg/store"
)

// DefaultRetention is how many dates the streak log keeps.
const DefaultRetention = 30

// Engine maintains the persisted streak log. Runs must be serialized by
// the caller; the log is read and rewritten on every Update.
type Engine struct {
	Path      string
	Retention int
}

// NewEngine returns an Engine backed by the log file at path.
func NewEngine(path string) *Engine {
	return &Engine{Path: path, Retention: DefaultRetention}
}

// Update records today's completion for each keystone, recomputes streaks
// and persists the log. It never fails: an unreadable log starts empty and
// a failed write is logged while the computed values are still returned.
func (e *Engine) Update(keystones []Keystone, date string) []Keystone {
	log, err := store.LoadStreakLog(e.Path)
	if err != nil {
		slog.Warn("streak log unreadable, starting fresh", "path", e.Path, "err", err)
	}

	entry := make(map[string]bool, len(keystones))
	for _, k := range keystones {
		entry[k.ID] = k.Done
	}
	log.DailyLog[date] = entry

	keep := e.Retention
	if keep <= 0 {
		keep = DefaultRetention
	}
	log.Prune(keep)

	out := make([]Keystone, len(keystones))
	for i, k := range keystones {
		current := CurrentStreak(log, k.ID, date)
		best := log.Streaks[k.ID].Best
		if current > best {
			best = current
		}
		log.Streaks[k.ID] = store.StreakRecord{Current: current, Best: best}

		k.Streak = current
		k.BestStreak = best
		out[i] = k
	}

	if err := store.SaveStreakLog(e.Path, log); err != nil {
		slog.Warn("streak log not saved", "path", e.Path, "err", err)
	}
	return out
}

// CurrentStreak counts consecutive calendar days ending at date on which id
// was complete. A missing day ends the streak.
func CurrentStreak(log *store.StreakLog, id, date string) int {
	day, err := time.Parse(schedule.DateLayout, date)
	if err != nil {
		return 0
	}

	n := 0
	for {
		entry, ok := log.DailyLog[day.Format(schedule.DateLayout)]
		if !ok || !entry[id] {
			return n
		}
		n++
		day = day.AddDate(0, 0, -1)
	}
}
