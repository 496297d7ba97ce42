package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/stefanpenner/focusboard/pkg/sources"
	"github.com/stefanpenner/focusboard/pkg/state"
)

const minWidth = 40
const minHeight = 10

const maxBoardEvents = 5

// detailWidth is the right panel width for a terminal width.
func detailWidth(width int) int {
	w := width - width/3 - 1 - 2
	if w < 20 {
		w = 20
	}
	return w
}

// View implements tea.Model.
func (m Model) View() string {
	w := m.width
	h := m.height
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}

	if m.showHelpModal {
		return placeOverlay(m.renderHelpModal(), w, h)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader(w))
	b.WriteString("\n")
	b.WriteString(m.renderNow(w))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	headerLines := 3
	footerLines := 2
	contentHeight := h - headerLines - footerLines

	leftWidth := w / 3
	rightWidth := w - leftWidth - 1
	if leftWidth < 20 {
		leftWidth = 20
	}
	if rightWidth < 20 {
		rightWidth = 20
	}

	leftPanel := m.renderBlockPanel(leftWidth, contentHeight)
	rightPanel := m.renderDetailPanel(rightWidth)

	sep := lipgloss.NewStyle().Foreground(ColorFaint).Render("│")
	for i := 0; i < contentHeight; i++ {
		b.WriteString(getLine(leftPanel, i, leftWidth))
		b.WriteString(sep)
		b.WriteString(getLine(rightPanel, i, rightWidth))
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")
	b.WriteString(m.renderFooter(w))
	return b.String()
}

func (m Model) renderHeader(width int) string {
	title := HeaderStyle.Render("FocusBoard")
	if m.doc != nil {
		title += "  " + HeaderCountStyle.Render(m.doc.DayLabel)
	}

	stats := ""
	if m.doc != nil {
		bd, bt := blockProgress(m.doc)
		kd, kt := keystoneProgress(m.doc)
		stats = HeaderCountStyle.Render(fmt.Sprintf("%d/%d blocks · %d/%d keystones", bd, bt, kd, kt))
	}

	status := ""
	if m.statusMsg != "" && time.Now().Before(m.statusTimeout) {
		status = lipgloss.NewStyle().Foreground(ColorHeading).Render(m.statusMsg) + "  "
	}

	gap := width - lipgloss.Width(title) - lipgloss.Width(stats) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + status + stats
}

func (m Model) renderNow(width int) string {
	if m.doc == nil {
		return FooterStyle.Render("Generating...")
	}
	now := m.doc.Now
	label := NowLabelStyle.Background(lipgloss.Color(now.Color)).Render(now.Label)
	text := now.Icon + " "
	if now.Block != "" {
		text += now.Block + " · "
	}
	text += now.Task
	return truncate(label+" "+text, width)
}

func (m Model) renderBlockPanel(width, height int) string {
	var lines []string
	if len(m.rows) == 0 {
		msg := "No schedule for today."
		if m.doc == nil {
			msg = "Loading..."
		}
		return FooterStyle.Render(msg)
	}

	// Scrolling window
	startIdx := 0
	endIdx := len(m.rows)
	if len(m.rows) > height {
		startIdx = m.cursor - height/2
		if startIdx < 0 {
			startIdx = 0
		}
		endIdx = startIdx + height
		if endIdx > len(m.rows) {
			endIdx = len(m.rows)
			startIdx = endIdx - height
		}
	}

	for i := startIdx; i < endIdx; i++ {
		blk := m.rows[i].Block
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color(blk.Color)).Render(blk.Icon)
		req := " "
		if blk.Required && !blk.Done {
			req = RequiredStyle.Render(IconRequired)
		}
		text := fmt.Sprintf("%s %5s %s %s", statusIcon(blk), blk.Time, icon, blk.Name)

		var style lipgloss.Style
		switch {
		case i == m.cursor:
			style = SelectedStyle
		case blk.Done:
			style = CompleteStyle
		case blk.IsCurrent:
			style = CurrentStyle
		default:
			style = IncompleteStyle
		}
		line := truncate(text, width-2)
		pad := width - 2 - lipgloss.Width(line)
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, style.Render(line+strings.Repeat(" ", pad))+" "+req)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDetailPanel(width int) string {
	if m.doc == nil {
		return ""
	}
	inner := width - 2
	var sections []string

	if m.cursor < len(m.rows) {
		sections = append(sections, renderBlockDetail(m.rows[m.cursor], inner))
	}
	if len(m.doc.Keystones) > 0 {
		sections = append(sections, renderKeystones(m.doc, inner))
	}
	sections = append(sections, renderCalendar(m.doc, inner))
	if w := renderWeather(m.doc.Weather); w != "" {
		sections = append(sections, w)
	}
	if h := renderHabits(m.doc.Habits); h != "" {
		sections = append(sections, h)
	}
	sections = append(sections, m.renderFocus(inner))

	return DetailPanelStyle.Render(strings.Join(sections, "\n\n"))
}

func renderBlockDetail(row BlockRow, width int) string {
	blk := row.Block
	var b strings.Builder
	b.WriteString(SectionTitleStyle.Render(blk.Label + " · " + blk.Name))
	b.WriteString("\n")
	b.WriteString(truncate(blk.Task, width))
	if blk.File != "" {
		b.WriteString("\n" + FooterStyle.Render("file: "+blk.File))
	}
	if blk.Source != "" {
		b.WriteString("\n" + FooterStyle.Render("source: "+blk.Source))
	}
	for _, d := range blk.Details {
		b.WriteString("\n  · " + truncate(d, width-4))
	}
	return b.String()
}

func renderKeystones(doc *state.Document, width int) string {
	lines := []string{SectionTitleStyle.Render("Keystones")}
	for _, k := range doc.Keystones {
		icon := IncompleteStyle.Render(IconIncomplete)
		if k.Done {
			icon = CompleteStyle.Render(IconComplete)
		}
		name := k.Name
		if k.Critical {
			name = RequiredStyle.Render(name)
		}
		streak := ""
		if k.Streak > 0 {
			streak = fmt.Sprintf(" %s%d", IconFlame, k.Streak)
		}
		line := fmt.Sprintf("%s %s %s%s", icon, k.ID, name, streak)
		if k.BestStreak > 0 {
			line += FooterStyle.Render(fmt.Sprintf(" (best %d)", k.BestStreak))
		}
		lines = append(lines, truncate(line, width))
	}
	return strings.Join(lines, "\n")
}

func renderCalendar(doc *state.Document, width int) string {
	title := SectionTitleStyle.Render("Calendar")
	if doc.Sources[state.SourceCalendar] == sources.StatusFailed {
		title += " " + FailedSourceStyle.Render("(unavailable)")
	}
	lines := []string{title}
	if len(doc.Calendar) == 0 {
		lines = append(lines, FooterStyle.Render("Nothing scheduled"))
	}
	for i, e := range doc.Calendar {
		if i == maxBoardEvents {
			lines = append(lines, FooterStyle.Render(fmt.Sprintf("+%d more", len(doc.Calendar)-i)))
			break
		}
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color)).Render("●")
		lines = append(lines, truncate(fmt.Sprintf("%s %s %s", dot, eventTime(e), e.Title), width))
	}
	return strings.Join(lines, "\n")
}

func eventTime(e sources.Event) string {
	if e.AllDay {
		return "all day"
	}
	t, err := time.Parse(time.RFC3339, e.Start)
	if err != nil {
		return e.Start
	}
	return t.Local().Format("Mon 15:04")
}

func renderWeather(w sources.Weather) string {
	if w == (sources.Weather{}) {
		return ""
	}
	return SectionTitleStyle.Render("Weather") + "\n" +
		fmt.Sprintf("%s %d° %s  H%d L%d  %d%%", w.IconChar, w.Temp, w.Condition, w.High, w.Low, w.Humidity)
}

func renderHabits(h sources.Habits) string {
	if h.Total == 0 && h.XP == 0 {
		return ""
	}
	line := fmt.Sprintf("%d/%d today · Lv%d %s", h.Completed, h.Total, h.Level, h.LevelTitle)
	if h.PerfectDayStreak > 0 {
		line += fmt.Sprintf(" · %s%d", IconFlame, h.PerfectDayStreak)
	}
	return SectionTitleStyle.Render("Habits") + "\n" + line
}

func (m Model) renderFocus(width int) string {
	md := focusMarkdown(m.doc.TomorrowFocus)
	if r := m.getGlamourRenderer(width); r != nil {
		if out, err := r.Render(md); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return md
}

func (m Model) renderFooter(width int) string {
	help := FooterStyle.Render(m.keys.ShortHelp())
	src := ""
	if m.doc != nil {
		src = renderSourceStatus(m.doc.Sources)
	}
	gap := width - lipgloss.Width(help) - lipgloss.Width(src)
	if gap < 1 {
		gap = 1
	}
	return help + strings.Repeat(" ", gap) + src
}

// renderSourceStatus lists sources that are not ok, failures highlighted.
func renderSourceStatus(statuses map[string]sources.Status) string {
	names := make([]string, 0, len(statuses))
	for name := range statuses {
		names = append(names, name)
	}
	sort.Strings(names)

	var parts []string
	for _, name := range names {
		switch statuses[name] {
		case sources.StatusFailed:
			parts = append(parts, FailedSourceStyle.Render(name+" ✗"))
		case sources.StatusCached:
			parts = append(parts, FooterStyle.Render(name+" ⟳"))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderHelpModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(ColorCalendar).Width(16)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	for _, binding := range m.keys.FullHelp() {
		b.WriteString(keyStyle.Render(binding[0]))
		b.WriteString(descStyle.Render(binding[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("Press Esc or ? to close"))

	return ModalStyle.Render(b.String())
}

// Helper functions

// truncate cuts s to width cells, keeping ANSI styling intact.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

func getLine(block string, idx int, width int) string {
	lines := strings.Split(block, "\n")
	if idx < len(lines) {
		line := lines[idx]
		lineWidth := lipgloss.Width(line)
		if lineWidth < width {
			return line + strings.Repeat(" ", width-lineWidth)
		}
		if lineWidth > width {
			return ansi.Truncate(line, width, "")
		}
		return line
	}
	return strings.Repeat(" ", width)
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := (height - len(modalLines)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	leftPadding := (width - lipgloss.Width(modalLines[0])) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}

	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}
