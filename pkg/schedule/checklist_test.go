package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTracker(t *testing.T) {
	tracker := ParseTracker(sampleToday)
	assert.Equal(t, map[string]bool{
		"6:30":  true,
		"8:00":  true,
		"9:30":  false,
		"11:00": true,
		"13:00": false,
	}, tracker)
}

func TestParseTrackerWithoutSection(t *testing.T) {
	assert.Empty(t, ParseTracker("- [x] 6:30 Morning Foundation\n"))
}

func TestParseTrackerFirstTimeTokenWins(t *testing.T) {
	doc := "## Block Tracker\n- [x] 6:30 moved to 7:30\n"
	tracker := ParseTracker(doc)
	assert.Equal(t, map[string]bool{"6:30": true}, tracker)
}

func TestApplyTracker(t *testing.T) {
	c := DefaultCatalog()
	blocks := ParseBlocks(sampleToday, c)
	applied := ApplyTracker(blocks, ParseTracker(sampleToday))
	require.Len(t, applied, len(blocks))

	done := make([]bool, len(applied))
	for i, b := range applied {
		done[i] = b.Done
	}
	assert.Equal(t, []bool{true, true, false, true, false}, done)

	for _, b := range blocks {
		assert.False(t, b.Done, "input slice is not modified")
	}
}

func TestApplyTrackerLeavesUntrackedBlocks(t *testing.T) {
	blocks := []Block{{Time: "5:00", Done: true}, {Time: "6:00"}}
	applied := ApplyTracker(blocks, map[string]bool{"6:00": true})
	assert.True(t, applied[0].Done)
	assert.True(t, applied[1].Done)
}

func TestMorningFoundationRow(t *testing.T) {
	doc := `# TODAY | Fri Feb 7

| Time | Block | File | Task | Source |
|------|-------|------|------|--------|
| 6:30 | Morning Foundation | | Stretch+Coffee | Philosophy |

## Block Tracker
- [x] 6:30 Morning Foundation
`
	blocks := ApplyTracker(ParseBlocks(doc, DefaultCatalog()), ParseTracker(doc))
	require.Len(t, blocks, 1)

	b := blocks[0]
	assert.True(t, b.Done)
	assert.Equal(t, CategoryHealth, b.Category)
	assert.True(t, b.Required)
	assert.Equal(t, "☀", b.Icon)
	assert.Equal(t, "#f0a030", b.Color)
}

func TestParseDoneToday(t *testing.T) {
	assert.Equal(t, []string{"Shipped the CC-013 thumbnail", "Called the bank"}, ParseDoneToday(sampleToday))

	none := ParseDoneToday("# nothing here")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestParseRecordingReady(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  RecordingReady
	}{
		{
			name:  "full status line",
			input: sampleToday,
			want:  RecordingReady{CC: 8, Pioneers: 12, HA: 7, Zendo: 16, Total: 43},
		},
		{
			name:  "missing fields are zero",
			input: "CC: 3 | Zendo: 2\n",
			want:  RecordingReady{CC: 3, Zendo: 2},
		},
		{
			name:  "total only",
			input: "Ready now (5 total)\n",
			want:  RecordingReady{Total: 5},
		},
		{
			name:  "no status line",
			input: "nothing to see",
			want:  RecordingReady{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRecordingReady(tt.input))
		})
	}
}
