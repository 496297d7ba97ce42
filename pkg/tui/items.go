package tui

import (
	"fmt"
	"strings"

	"github.com/stefanpenner/focusboard/pkg/schedule"
	"github.com/stefanpenner/focusboard/pkg/state"
)

// BlockRow is one line of the block list.
type BlockRow struct {
	Index int
	Block schedule.Block
}

// BuildRows flattens the document's blocks into list rows.
func BuildRows(doc *state.Document) []BlockRow {
	if doc == nil {
		return nil
	}
	rows := make([]BlockRow, len(doc.Blocks))
	for i, b := range doc.Blocks {
		rows[i] = BlockRow{Index: i, Block: b}
	}
	return rows
}

// CurrentRow returns the index of the current block, or 0.
func CurrentRow(rows []BlockRow) int {
	for i, r := range rows {
		if r.Block.IsCurrent {
			return i
		}
	}
	return 0
}

func statusIcon(b schedule.Block) string {
	switch {
	case b.Done:
		return IconComplete
	case b.IsCurrent:
		return IconCurrent
	default:
		return IconIncomplete
	}
}

// blockProgress counts completed blocks.
func blockProgress(doc *state.Document) (done, total int) {
	for _, b := range doc.Blocks {
		if b.Done {
			done++
		}
	}
	return done, len(doc.Blocks)
}

func keystoneProgress(doc *state.Document) (done, total int) {
	for _, k := range doc.Keystones {
		if k.Done {
			done++
		}
	}
	return done, len(doc.Keystones)
}

// focusMarkdown renders tomorrow's focus as markdown for glamour.
func focusMarkdown(f schedule.Focus) string {
	var b strings.Builder
	b.WriteString("## Tomorrow\n\n")
	fmt.Fprintf(&b, "**%s**\n\n", f.OneThing)
	if f.Task != "" {
		fmt.Fprintf(&b, "- Video: %s\n", f.Task)
	}
	if f.Action != "" {
		fmt.Fprintf(&b, "- Action: %s\n", f.Action)
	}
	if f.File != "" {
		fmt.Fprintf(&b, "- File: `%s`\n", f.File)
	}
	return b.String()
}
