package sources

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

const maxReminderItems = 8

// Reminder is one open Apple Reminders item.
type Reminder struct {
	Title string `json:"title"`
	List  string `json:"list"`
	Due   string `json:"due"`
}

// Reminders holds open reminders across the configured lists. Count covers
// every open item; Items is capped for display.
type Reminders struct {
	Count int        `json:"count"`
	Items []Reminder `json:"items"`
}

// EmptyReminders is the shape used when reminders are unavailable.
func EmptyReminders() Reminders {
	return Reminders{Items: []Reminder{}}
}

const remindersScript = `tell application "Reminders"
	try
		set theList to list "%s"
		set output to ""
		repeat with r in (reminders of theList whose completed is false)
			set rName to name of r
			set rDue to ""
			try
				set rDue to (due date of r) as «class isot» as string
			end try
			set output to output & rName & tab & rDue & linefeed
		end repeat
		return output
	on error
		return ""
	end try
end tell`

// AppleReminders reads open reminders through osascript. It is only
// available on macOS.
type AppleReminders struct {
	Lists []string
	GOOS  string
	// Run executes an AppleScript and returns its stdout.
	Run func(ctx context.Context, script string) (string, error)
}

// NewAppleReminders returns a reader for lists on the current OS.
func NewAppleReminders(lists []string) *AppleReminders {
	return &AppleReminders{Lists: lists, GOOS: runtime.GOOS, Run: runOSAScript}
}

func runOSAScript(ctx context.Context, script string) (string, error) {
	out, err := exec.CommandContext(ctx, "osascript", "-e", script).Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return "", fmt.Errorf("osascript: %s", strings.TrimSpace(string(ee.Stderr)))
		}
		return "", fmt.Errorf("osascript: %w", err)
	}
	return string(out), nil
}

func (a *AppleReminders) Fetch(ctx context.Context) Result[Reminders] {
	if a.GOOS != "darwin" || a.Run == nil || len(a.Lists) == 0 {
		return Disabled(EmptyReminders())
	}

	out := EmptyReminders()
	failures := 0
	for _, list := range a.Lists {
		items, err := a.readList(ctx, list)
		if err != nil {
			slog.Warn("reminders fetch failed", "list", list, "err", err)
			failures++
			continue
		}
		out.Items = append(out.Items, items...)
	}
	if failures == len(a.Lists) {
		return Failed(EmptyReminders(), fmt.Errorf("all %d reminder lists failed", failures))
	}

	out.Count = len(out.Items)
	if len(out.Items) > maxReminderItems {
		out.Items = out.Items[:maxReminderItems]
	}
	return OK(out)
}

func (a *AppleReminders) readList(ctx context.Context, list string) ([]Reminder, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(list)
	stdout, err := a.Run(ctx, fmt.Sprintf(remindersScript, escaped))
	if err != nil {
		return nil, err
	}
	return parseReminders(stdout, list), nil
}

// parseReminders decodes "title<TAB>due" lines.
func parseReminders(stdout, list string) []Reminder {
	var items []Reminder
	for _, line := range strings.Split(stdout, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		title, due, _ := strings.Cut(line, "\t")
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		due = strings.TrimSpace(due)
		if len(due) > 10 {
			due = due[:10]
		}
		items = append(items, Reminder{Title: title, List: list, Due: due})
	}
	return items
}
