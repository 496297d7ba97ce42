package store

import (
	"encoding/json"
	"sort"
	"time"
)

// ScheduleMeta is the optional YAML frontmatter of the schedule document.
type ScheduleMeta struct {
	Date string `yaml:"date"`
}

// StreakRecord is the cached current/best streak for one keystone.
type StreakRecord struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// StreakLog is the persisted day-by-day keystone completion record.
type StreakLog struct {
	DailyLog map[string]map[string]bool `json:"daily_log"`
	Streaks  map[string]StreakRecord    `json:"streaks"`
}

// NewStreakLog returns an empty log.
func NewStreakLog() *StreakLog {
	return &StreakLog{
		DailyLog: make(map[string]map[string]bool),
		Streaks:  make(map[string]StreakRecord),
	}
}

// Dates returns the logged ISO dates, oldest first.
func (l *StreakLog) Dates() []string {
	dates := make([]string, 0, len(l.DailyLog))
	for d := range l.DailyLog {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Prune drops the oldest dates until at most keep remain.
func (l *StreakLog) Prune(keep int) {
	dates := l.Dates()
	for len(dates) > keep {
		delete(l.DailyLog, dates[0])
		dates = dates[1:]
	}
}

// CacheEntry is the on-disk shape of a cached source payload.
type CacheEntry struct {
	CachedAt time.Time       `json:"cached_at"`
	Payload  json.RawMessage `json:"payload"`
}
