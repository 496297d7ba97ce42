package schedule

import "strings"

const minTableColumns = 5

// placeholderRefs are cell values that mean "no file".
var placeholderRefs = map[string]bool{
	"(no file)": true,
	"(browser)": true,
	"—":         true,
	"-":         true,
}

func cleanFileRef(s string) string {
	if placeholderRefs[s] {
		return ""
	}
	return s
}

func cleanSource(s string) string {
	if s == "—" || s == "-" {
		return ""
	}
	return s
}

type tableState int

const (
	beforeTable tableState = iota
	inHeader
	inRows
)

// ParseBlocks reads the day overview table from the schedule document and
// returns its rows in document order. The first table whose header names
// Time and Block is used; parsing stops at the first non-table line after
// its rows begin. Rows with fewer than five columns are skipped.
func ParseBlocks(content string, catalog *Catalog) []Block {
	blocks := []Block{}
	state := beforeTable

	for _, line := range Lines(content) {
		switch state {
		case beforeTable:
			if strings.HasPrefix(line, "| Time") && strings.Contains(line, "Block") {
				state = inHeader
			}

		case inHeader:
			if cells, ok := TableCells(line); ok && isSeparatorRow(cells) {
				state = inRows
			}

		case inRows:
			cells, ok := TableCells(line)
			if !ok {
				return blocks
			}
			if len(cells) < minTableColumns {
				continue
			}
			blocks = append(blocks, newBlock(cells, catalog))
		}
	}

	return blocks
}

func newBlock(cells []string, catalog *Catalog) Block {
	name := cells[1]
	file := cleanFileRef(cells[2])
	visual := catalog.Visual(name)
	return Block{
		Time:     cells[0],
		Name:     name,
		File:     file,
		Task:     cells[3],
		Source:   cleanSource(cells[4]),
		Category: catalog.Category(name),
		Required: catalog.IsRequired(name, file),
		Icon:     visual.Icon,
		Color:    visual.Color,
		Label:    visual.Label,
		Details:  catalog.Details(name),
	}
}

// ExtractSOPTasks lists blocks whose file reference is an SOP.
func ExtractSOPTasks(blocks []Block, catalog *Catalog) []SOPTask {
	tasks := []SOPTask{}
	for _, b := range blocks {
		if catalog.IsSOP(b.File) {
			tasks = append(tasks, SOPTask{Name: b.Task, Done: b.Done, Block: b.Name})
		}
	}
	return tasks
}
