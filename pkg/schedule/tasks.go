package schedule

import (
	"regexp"
	"strings"
)

const HeadingAvailable = "## Available"

const (
	maxWins     = 5
	maxBlockers = 3
)

// - [ ] Task text [P1] (30m) #context
var backlogLine = regexp.MustCompile(`^- \[ \]\s+(.+?)\s+\[P([12])\]\s*(?:\((\w+)\))?\s*(?:#(\w+))?`)

var topP1Line = regexp.MustCompile(`^- \[ \]\s+(.+?)\s+\[P1\]`)

var blockerKeywords = []string{"BLOCKED", "WAITING ON", "BLOCKER"}

// ParseBacklogNext returns the first open P1 or P2 task in TASKS.md.
func ParseBacklogNext(tasks string) BacklogItem {
	for _, line := range Lines(tasks) {
		if !strings.HasPrefix(line, "- [ ]") {
			continue
		}
		m := backlogLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return BacklogItem{
			Task:     strings.TrimSpace(m[1]),
			Priority: "P" + m[2],
			Time:     m[3],
			Context:  m[4],
		}
	}
	return BacklogItem{}
}

// ParseTaskCounts totals open P1/P2 tasks in TASKS.md and open items in the
// Available section of QUICK-WINS.md.
func ParseTaskCounts(tasks, quickWins string) TaskCounts {
	var c TaskCounts
	for _, line := range Lines(tasks) {
		if !strings.HasPrefix(line, "- [ ]") {
			continue
		}
		switch {
		case strings.Contains(line, "[P1]"):
			c.P1Count++
			if c.TopP1 == "" {
				if m := topP1Line.FindStringSubmatch(line); m != nil {
					c.TopP1 = strings.TrimSpace(m[1])
				}
			}
		case strings.Contains(line, "[P2]"):
			c.P2Count++
		}
	}

	lines, _ := Section(quickWins, HeadingAvailable)
	for _, line := range lines {
		if strings.HasPrefix(line, "- [ ]") {
			c.QuickWins++
		}
	}
	return c
}

// ParseDailyLog collects wins (checked items) and blockers from the daily log.
func ParseDailyLog(content string) DailyLog {
	log := DailyLog{Wins: []string{}, Blockers: []string{}}
	seen := make(map[string]bool)

	for _, line := range Lines(content) {
		if checked, text, ok := Checkbox(line); ok {
			log.EntryCount++
			if checked && text != "" {
				log.Wins = append(log.Wins, text)
			}
		}

		if !strings.HasPrefix(line, "- ") || !hasBlockerKeyword(line) {
			continue
		}
		text := line
		if _, t, ok := Checkbox(line); ok {
			text = t
		}
		text = strings.TrimSpace(strings.TrimLeft(text, "- "))
		if text == "" || strings.HasSuffix(text, ":") || seen[text] {
			continue
		}
		seen[text] = true
		log.Blockers = append(log.Blockers, text)
	}

	if len(log.Wins) > maxWins {
		log.Wins = log.Wins[:maxWins]
	}
	if len(log.Blockers) > maxBlockers {
		log.Blockers = log.Blockers[:maxBlockers]
	}
	return log
}

func hasBlockerKeyword(line string) bool {
	upper := strings.ToUpper(line)
	for _, kw := range blockerKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}
