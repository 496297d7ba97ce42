package schedule

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	HeadingBlockTracker = "## Block Tracker"
	HeadingDoneToday    = "## Done Today"
)

var trackerTime = regexp.MustCompile(`^(\d{1,2}:\d{2})(?:\s|$)`)

// ParseTracker reads the Block Tracker checklist into time label -> done.
// Only the first time token on each line counts.
func ParseTracker(content string) map[string]bool {
	tracker := make(map[string]bool)
	lines, _ := Section(content, HeadingBlockTracker)
	for _, line := range lines {
		done, text, ok := Checkbox(line)
		if !ok {
			continue
		}
		m := trackerTime.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		tracker[m[1]] = done
	}
	return tracker
}

// ApplyTracker returns a copy of blocks with completion taken from the tracker.
// Blocks whose time is not tracked keep their current state.
func ApplyTracker(blocks []Block, tracker map[string]bool) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		if done, ok := tracker[b.Time]; ok {
			b.Done = done
		}
		out[i] = b
	}
	return out
}

// ParseDoneToday returns the bullet items under Done Today.
func ParseDoneToday(content string) []string {
	items := []string{}
	lines, _ := Section(content, HeadingDoneToday)
	for _, line := range lines {
		if item, ok := Bullet(line); ok && item != "" {
			items = append(items, item)
		}
	}
	return items
}

var (
	recCC       = regexp.MustCompile(`CC:\s*(\d+)`)
	recPioneers = regexp.MustCompile(`Pioneers:\s*(\d+)`)
	recHA       = regexp.MustCompile(`HA:\s*(\d+)`)
	recZendo    = regexp.MustCompile(`Zendo:\s*(\d+)`)
	recTotal    = regexp.MustCompile(`\((\d+)\s+total\)`)
)

// ParseRecordingReady decodes the first status line of the form
// "CC: 8 | Pioneers: 12 | HA: 7 | Zendo: 16 (43 total)". Missing fields are 0.
func ParseRecordingReady(content string) RecordingReady {
	var r RecordingReady
	for _, line := range Lines(content) {
		if !strings.HasPrefix(line, "CC:") && !strings.Contains(line, "total)") {
			continue
		}
		r.CC = firstInt(recCC, line)
		r.Pioneers = firstInt(recPioneers, line)
		r.HA = firstInt(recHA, line)
		r.Zendo = firstInt(recZendo, line)
		r.Total = firstInt(recTotal, line)
		break
	}
	return r
}

func firstInt(re *regexp.Regexp, s string) int {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
