package sources

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Habit is one tracked habit scheduled for today.
type Habit struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Done        bool   `json:"done"`
	Streak      int    `json:"streak"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// Tier groups habits by the tracker's tier.
type Tier struct {
	Name      string  `json:"name"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Habits    []Habit `json:"habits"`

	sortOrder int
}

// Habits is today's habit summary.
type Habits struct {
	Completed        int    `json:"completed"`
	Total            int    `json:"total"`
	CompletionPct    int    `json:"completion_pct"`
	XP               int    `json:"xp"`
	Level            int    `json:"level"`
	LevelTitle       string `json:"level_title"`
	LevelProgress    int    `json:"level_progress"`
	PerfectDayStreak int    `json:"perfect_day_streak"`
	BestStreak       int    `json:"best_streak"`
	Tiers            []Tier `json:"tiers"`
}

type levelThreshold struct {
	level int
	xp    int
	title string
}

var levelThresholds = []levelThreshold{
	{1, 0, "Beginner"},
	{2, 100, "Novice"},
	{3, 300, "Apprentice"},
	{4, 600, "Journeyman"},
	{5, 1000, "Adept"},
	{6, 1500, "Expert"},
	{7, 2100, "Master"},
	{8, 2800, "Grandmaster"},
	{9, 3600, "Legend"},
	{10, 4500, "Mythic"},
}

// LevelInfo returns the level, title and percent progress toward the next
// level for a total XP. Past the last threshold each level spans 1000 XP.
func LevelInfo(xp int) (level int, title string, progress int) {
	idx := 0
	for i, t := range levelThresholds {
		if xp >= t.xp {
			idx = i
		}
	}
	cur := levelThresholds[idx]
	next := cur.xp + 1000
	if idx+1 < len(levelThresholds) {
		next = levelThresholds[idx+1].xp
	}
	progress = int(math.Round(float64(xp-cur.xp) / float64(next-cur.xp) * 100))
	return cur.level, cur.title, progress
}

// weekday prefixes as stored in schedule_days, indexed by time.Weekday.
var dayNames = [...]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// scheduledOn reports whether a habit's schedule_days JSON includes day.
// NULL or unparseable schedules mean every day.
func scheduledOn(scheduleDays sql.NullString, day time.Weekday) bool {
	if !scheduleDays.Valid || scheduleDays.String == "" {
		return true
	}
	var days []string
	if err := json.Unmarshal([]byte(scheduleDays.String), &days); err != nil {
		return true
	}
	name := dayNames[day]
	for _, d := range days {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" && (strings.HasPrefix(name, d) || strings.HasPrefix(d, name)) {
			return true
		}
	}
	return false
}

// HabitsDB reads the habit tracker's SQLite database without writing to it.
type HabitsDB struct {
	Path string
	Now  func() time.Time
}

func (h *HabitsDB) Fetch(ctx context.Context) Result[Habits] {
	if h.Path == "" {
		return Disabled(Habits{})
	}
	if _, err := os.Stat(h.Path); errors.Is(err, fs.ErrNotExist) {
		return Disabled(Habits{})
	}

	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	v, err := h.read(ctx, now)
	if err != nil {
		return Failed(Habits{}, err)
	}
	return OK(v)
}

func (h *HabitsDB) read(ctx context.Context, now time.Time) (Habits, error) {
	db, err := sql.Open("sqlite3", "file:"+h.Path+"?mode=ro&_busy_timeout=3000")
	if err != nil {
		return Habits{}, fmt.Errorf("opening habits db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	today := now.Format("2006-01-02")
	var out Habits

	var pct float64
	var fromSnapshot bool
	err = db.QueryRowContext(ctx,
		`SELECT completion_pct, completed_habits, total_habits FROM daily_snapshots WHERE date = ?`, today,
	).Scan(&pct, &out.Completed, &out.Total)
	switch {
	case err == nil:
		fromSnapshot = true
		out.CompletionPct = int(math.Round(pct))
	case errors.Is(err, sql.ErrNoRows):
	default:
		return Habits{}, fmt.Errorf("reading today's snapshot: %w", err)
	}

	var xp sql.NullInt64
	err = db.QueryRowContext(ctx, `SELECT total_xp FROM user_progress WHERE id = 1`).Scan(&xp)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Habits{}, fmt.Errorf("reading progress: %w", err)
	}
	out.XP = int(xp.Int64)
	out.Level, out.LevelTitle, out.LevelProgress = LevelInfo(out.XP)

	out.PerfectDayStreak, out.BestStreak, err = snapshotStreaks(ctx, db, now)
	if err != nil {
		return Habits{}, err
	}

	tiers, completed, total, err := habitTiers(ctx, db, today, now.Weekday())
	if err != nil {
		return Habits{}, err
	}
	out.Tiers = tiers
	if !fromSnapshot {
		out.Completed = completed
		out.Total = total
		if total > 0 {
			out.CompletionPct = int(math.Round(float64(completed) / float64(total) * 100))
		}
	}
	return out, nil
}

// snapshotStreaks returns the run of 100% days ending today and the longest
// such run within the last 90 snapshots.
func snapshotStreaks(ctx context.Context, db *sql.DB, now time.Time) (current, best int, err error) {
	rows, err := db.QueryContext(ctx, `SELECT date, completion_pct FROM daily_snapshots ORDER BY date DESC LIMIT 90`)
	if err != nil {
		return 0, 0, fmt.Errorf("reading snapshots: %w", err)
	}
	defer rows.Close()

	type snap struct {
		date    string
		perfect bool
	}
	var snaps []snap
	for rows.Next() {
		var s snap
		var pct float64
		if err := rows.Scan(&s.date, &pct); err != nil {
			return 0, 0, fmt.Errorf("scanning snapshot: %w", err)
		}
		s.perfect = pct >= 100
		snaps = append(snaps, s)
	}
	if err := rows.Err(); err != nil {
		return 0, 0, fmt.Errorf("reading snapshots: %w", err)
	}

	expected := now
	for _, s := range snaps {
		if s.date != expected.Format("2006-01-02") || !s.perfect {
			break
		}
		current++
		expected = expected.AddDate(0, 0, -1)
	}

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].date < snaps[j].date })
	run := 0
	var last time.Time
	for _, s := range snaps {
		if !s.perfect {
			run = 0
			last = time.Time{}
			continue
		}
		d, err := time.Parse("2006-01-02", s.date)
		if err != nil {
			continue
		}
		if !last.IsZero() && d.Sub(last) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		last = d
		if run > best {
			best = run
		}
	}
	if current > best {
		best = current
	}
	return current, best, nil
}

const habitsQuery = `
SELECT h.id, h.name, COALESCE(h.emoji, ''), h.tier_id, h.schedule_days,
       COALESCE(t.display_name, ''), t.name, t.sort_order,
       CASE WHEN c.habit_id IS NOT NULL THEN 1 ELSE 0 END,
       COALESCE(c.completed_at, ''),
       COALESCE(s.current_streak, 0)
FROM habits h
JOIN tiers t ON h.tier_id = t.id
LEFT JOIN completions c ON c.habit_id = h.id AND c.date = ?
LEFT JOIN streaks s ON s.habit_id = h.id
WHERE h.archived_at IS NULL
ORDER BY t.sort_order, h.sort_order`

func habitTiers(ctx context.Context, db *sql.DB, today string, weekday time.Weekday) ([]Tier, int, int, error) {
	rows, err := db.QueryContext(ctx, habitsQuery, today)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("reading habits: %w", err)
	}
	defer rows.Close()

	byTier := make(map[int64]*Tier)
	var order []int64
	completed, total := 0, 0
	for rows.Next() {
		var (
			hb                     Habit
			tierID                 int64
			schedule               sql.NullString
			tierDisplay, tierName  string
			tierSort, done, streak int
		)
		if err := rows.Scan(&hb.ID, &hb.Name, &hb.Emoji, &tierID, &schedule,
			&tierDisplay, &tierName, &tierSort, &done, &hb.CompletedAt, &streak); err != nil {
			return nil, 0, 0, fmt.Errorf("scanning habit: %w", err)
		}
		if !scheduledOn(schedule, weekday) {
			continue
		}

		t, ok := byTier[tierID]
		if !ok {
			name := tierDisplay
			if name == "" {
				name = tierName
			}
			t = &Tier{Name: name, Habits: []Habit{}, sortOrder: tierSort}
			byTier[tierID] = t
			order = append(order, tierID)
		}
		hb.Done = done == 1
		hb.Streak = streak
		t.Total++
		total++
		if hb.Done {
			t.Completed++
			completed++
		}
		t.Habits = append(t.Habits, hb)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, fmt.Errorf("reading habits: %w", err)
	}

	tiers := make([]Tier, 0, len(order))
	for _, id := range order {
		tiers = append(tiers, *byTier[id])
	}
	sort.SliceStable(tiers, func(i, j int) bool { return tiers[i].sortOrder < tiers[j].sortOrder })
	return tiers, completed, total, nil
}
