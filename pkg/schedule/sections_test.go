package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableCells(t *testing.T) {
	tests := []struct {
		line  string
		cells []string
		ok    bool
	}{
		{"| a | b |", []string{"a", "b"}, true},
		{"| 6:30 | Morning Foundation | | Stretch | x |", []string{"6:30", "Morning Foundation", "", "Stretch", "x"}, true},
		{"| a | b", []string{"a", "b"}, true},
		{"|", []string{}, true},
		{"a | b", nil, false},
		{"", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cells, ok := TableCells(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.cells, cells)
			}
		})
	}
}

func TestIsSeparatorRow(t *testing.T) {
	assert.True(t, isSeparatorRow([]string{"---", ":--:", "--:"}))
	assert.False(t, isSeparatorRow([]string{"---", "Time"}))
	assert.False(t, isSeparatorRow([]string{"", ":"}))
	assert.False(t, isSeparatorRow(nil))
}

func TestCheckbox(t *testing.T) {
	tests := []struct {
		line    string
		checked bool
		text    string
		ok      bool
	}{
		{"- [ ] open item", false, "open item", true},
		{"- [x] done item", true, "done item", true},
		{"- [X] shouted", true, "shouted", true},
		{"- [x]", true, "", true},
		{"- [-] odd", false, "", false},
		{"- plain bullet", false, "", false},
		{"* [x] star", false, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			checked, text, ok := Checkbox(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.checked, checked)
			assert.Equal(t, tt.text, text)
		})
	}
}

func TestSection(t *testing.T) {
	doc := "# Title\r\n## A\r\n  one  \r\ntwo\r\n## B\r\nthree\r\n"

	lines, found := Section(doc, "## A")
	assert.True(t, found)
	assert.Equal(t, []string{"one", "two"}, lines)

	lines, found = Section(doc, "## B")
	assert.True(t, found)
	assert.Equal(t, []string{"three", ""}, lines)

	lines, found = Section(doc, "## Missing")
	assert.False(t, found)
	assert.Empty(t, lines)
}

func TestBullet(t *testing.T) {
	text, ok := Bullet("- hello ")
	assert.True(t, ok)
	assert.Equal(t, "hello", text)

	_, ok = Bullet("-nospace")
	assert.False(t, ok)
}
