package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDateLabel(t *testing.T) {
	now := time.Date(2026, time.February, 9, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		input     string
		wantISO   string
		wantLabel string
	}{
		{"header label", sampleToday, "2026-02-07", "Fri Feb 7"},
		{"unparseable label", "# TODAY | Someday\n", "2026-02-09", "Someday"},
		{"no header", "no header at all", "2026-02-09", "Mon Feb 9"},
		{"header without label", "# TODAY |\n", "2026-02-09", "Mon Feb 9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iso, label := ParseDateLabel(tt.input, now)
			assert.Equal(t, tt.wantISO, iso)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}

func TestParseFocus(t *testing.T) {
	doc := `# Tomorrow

**Video:** CC-014 Hook
**Action:** Record intro
**File:** scripts/cc-014.md

## The ONE Thing

**Finish the CC-014 script**
`
	assert.Equal(t, Focus{
		Task:     "CC-014 Hook",
		Action:   "Record intro",
		OneThing: "Finish the CC-014 script",
		File:     "scripts/cc-014.md",
	}, ParseFocus(doc))

	assert.Equal(t, EmptyFocus(), ParseFocus("  \n"))
	assert.Equal(t, NotPlannedYet, EmptyFocus().OneThing)
}

func TestParseQuote(t *testing.T) {
	doc := `# Philosophy

> "Short"
> “Discipline is the bridge to freedom.”
> Another long enough quote here
`
	assert.Equal(t, "Discipline is the bridge to freedom.", ParseQuote(doc))
	assert.Equal(t, DefaultQuote, ParseQuote(""))
	assert.Equal(t, DefaultQuote, ParseQuote("> tiny"))
	assert.Equal(t, DefaultQuote, ParseQuote("> 禅の心は静か"), "length counts characters")
	assert.Equal(t, "禅の心は静かで、水のように流れる", ParseQuote("> 禅の心は静か\n> 禅の心は静かで、水のように流れる"))
}
