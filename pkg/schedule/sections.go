package schedule

import "strings"

// Lines splits content into trimmed lines.
func Lines(content string) []string {
	raw := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}

// Section returns the trimmed lines under the first line equal to heading,
// up to the next "## " heading or the end of the document. The second
// return value reports whether the heading was found.
func Section(content, heading string) ([]string, bool) {
	var out []string
	in := false
	for _, line := range Lines(content) {
		if !in {
			if line == heading {
				in = true
			}
			continue
		}
		if strings.HasPrefix(line, "## ") {
			break
		}
		out = append(out, line)
	}
	return out, in
}

// Checkbox decodes a "- [ ] text" or "- [x] text" list item.
func Checkbox(line string) (checked bool, text string, ok bool) {
	if len(line) < 5 || !strings.HasPrefix(line, "- [") || line[4] != ']' {
		return false, "", false
	}
	switch line[3] {
	case 'x', 'X':
		checked = true
	case ' ':
	default:
		return false, "", false
	}
	return checked, strings.TrimSpace(line[5:]), true
}

// Bullet returns the text of a "- " list item.
func Bullet(line string) (string, bool) {
	if !strings.HasPrefix(line, "- ") {
		return "", false
	}
	return strings.TrimSpace(line[2:]), true
}

// TableCells splits a pipe-delimited row into trimmed cells. The empty
// cells produced by the leading and trailing pipes are dropped; interior
// empty cells are kept so columns stay positional.
func TableCells(line string) ([]string, bool) {
	if !strings.HasPrefix(line, "|") {
		return nil, false
	}
	parts := strings.Split(line, "|")
	parts = parts[1:]
	if n := len(parts); n > 0 && strings.TrimSpace(parts[n-1]) == "" {
		parts = parts[:n-1]
	}
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells, true
}

// isSeparatorRow reports whether cells form a markdown table rule like |---|:--:|.
func isSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	sawDash := false
	for _, c := range cells {
		for _, r := range c {
			switch r {
			case '-':
				sawDash = true
			case ':', ' ':
			default:
				return false
			}
		}
	}
	return sawDash
}
