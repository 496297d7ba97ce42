package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCurrent(t *testing.T) {
	tests := []struct {
		name   string
		blocks []Block
		check  func(t *testing.T, out []Block, now Now, state State)
	}{
		{
			name: "first incomplete block is current",
			blocks: []Block{
				{Name: "Morning Foundation", Done: true},
				{Name: "Creation", Task: "Record", File: "SOP-Rec.md", Icon: "✦", Details: []string{"Walk"}},
				{Name: "Workout"},
			},
			check: func(t *testing.T, out []Block, now Now, state State) {
				assert.Equal(t, StateActive, state)
				assert.Equal(t, []bool{false, true, false}, currentFlags(out))
				assert.Equal(t, "Creation", now.Block)
				assert.Equal(t, "Record", now.Task)
				assert.Equal(t, "SOP-Rec.md", now.File)
				assert.Equal(t, "✦", now.Icon)
				assert.Equal(t, []string{"Walk"}, now.Details)
			},
		},
		{
			name:   "stale current flags are cleared",
			blocks: []Block{{Name: "A", IsCurrent: true, Done: true}, {Name: "B"}, {Name: "C", IsCurrent: true}},
			check: func(t *testing.T, out []Block, now Now, state State) {
				assert.Equal(t, []bool{false, true, false}, currentFlags(out))
				assert.Equal(t, "B", now.Block)
			},
		},
		{
			name:   "everything done",
			blocks: []Block{{Name: "A", Done: true}, {Name: "B", Done: true}},
			check: func(t *testing.T, out []Block, now Now, state State) {
				assert.Equal(t, StateComplete, state)
				assert.Equal(t, []bool{false, false}, currentFlags(out))
				assert.Equal(t, DayCompleteNow(), now)
				assert.Equal(t, "✔", now.Icon)
				assert.Equal(t, "COMPLETE", now.Label)
			},
		},
		{
			name:   "no blocks",
			blocks: nil,
			check: func(t *testing.T, out []Block, now Now, state State) {
				assert.Equal(t, StateWaiting, state)
				assert.Empty(t, out)
				assert.Equal(t, "Waiting for schedule", now.Task)
				assert.Equal(t, "◌", now.Icon)
				assert.Equal(t, "#555555", now.Color)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, now, state := ResolveCurrent(tt.blocks)
			tt.check(t, out, now, state)
		})
	}
}

func TestResolveCurrentDoesNotMutateInput(t *testing.T) {
	in := []Block{{Name: "A"}, {Name: "B"}}
	out, _, _ := ResolveCurrent(in)
	require.True(t, out[0].IsCurrent)
	assert.False(t, in[0].IsCurrent)
}

func TestResolveCurrentOnParsedDay(t *testing.T) {
	c := DefaultCatalog()
	blocks := ApplyTracker(ParseBlocks(sampleToday, c), ParseTracker(sampleToday))
	out, now, state := ResolveCurrent(blocks)

	assert.Equal(t, StateActive, state)
	assert.Equal(t, "Power Hour", now.Block)
	assert.Equal(t, "POWER HOUR", now.Label)

	count := 0
	for _, b := range out {
		if b.IsCurrent {
			count++
			assert.False(t, b.Done)
		}
	}
	assert.Equal(t, 1, count)
}

func TestAllDone(t *testing.T) {
	assert.False(t, AllDone(nil))
	assert.False(t, AllDone([]Block{{Done: true}, {}}))
	assert.True(t, AllDone([]Block{{Done: true}, {Done: true}}))
}

func currentFlags(blocks []Block) []bool {
	flags := make([]bool, len(blocks))
	for i, b := range blocks {
		flags[i] = b.IsCurrent
	}
	return flags
}
