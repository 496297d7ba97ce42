package schedule

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DateLayout  = "2006-01-02"
	LabelLayout = "Mon Jan 2"

	HeadingOneThing = "## The ONE Thing"

	DefaultQuote    = "Structure creates freedom. Trust the stacks."
	NotPlannedYet   = "Not planned yet"
	minQuoteLength  = 10
	todayHeaderMark = "# TODAY"
)

// ParseDateLabel reads the "# TODAY | Fri Feb 7" header. The label is taken
// verbatim; the ISO date assumes the year of now and falls back to now's date
// when the label does not parse.
func ParseDateLabel(content string, now time.Time) (iso, label string) {
	for _, line := range Lines(content) {
		if !strings.HasPrefix(line, todayHeaderMark) {
			continue
		}
		idx := strings.Index(line, "|")
		if idx < 0 {
			continue
		}
		label = strings.TrimSpace(line[idx+1:])
		if label == "" {
			continue
		}
		parsed, err := time.ParseInLocation(LabelLayout+" 2006", fmt.Sprintf("%s %d", label, now.Year()), now.Location())
		if err != nil {
			return now.Format(DateLayout), label
		}
		return parsed.Format(DateLayout), label
	}
	return now.Format(DateLayout), now.Format(LabelLayout)
}

// EmptyFocus is the focus shown when nothing is planned for tomorrow.
func EmptyFocus() Focus {
	return Focus{OneThing: NotPlannedYet}
}

// ParseFocus reads tomorrow's focus document.
func ParseFocus(content string) Focus {
	var f Focus
	if strings.TrimSpace(content) == "" {
		return EmptyFocus()
	}

	fields := []struct {
		prefix string
		dst    *string
	}{
		{"**Video:**", &f.Task},
		{"**Action:**", &f.Action},
		{"**File:**", &f.File},
	}
	for _, line := range Lines(content) {
		for _, fd := range fields {
			if strings.HasPrefix(line, fd.prefix) {
				*fd.dst = strings.TrimSpace(strings.TrimPrefix(line, fd.prefix))
				break
			}
		}
	}

	in := false
	for _, line := range Lines(content) {
		if strings.Contains(line, HeadingOneThing) {
			in = true
			continue
		}
		if in && len(line) > 4 && strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") {
			f.OneThing = strings.TrimSpace(strings.Trim(line, "*"))
			break
		}
	}
	return f
}

// ParseQuote returns the first substantial blockquote in the philosophy doc.
func ParseQuote(content string) string {
	for _, line := range Lines(content) {
		if !strings.HasPrefix(line, "> ") {
			continue
		}
		quote := strings.Trim(strings.TrimSpace(line[2:]), `"“”`)
		if utf8.RuneCountInString(quote) > minQuoteLength {
			return quote
		}
	}
	return DefaultQuote
}
