package tui

import "github.com/charmbracelet/lipgloss"

// Palette follows the dashboard's block colors.
var (
	ColorAccent   = lipgloss.Color("#7C4DFF")
	ColorDone     = lipgloss.Color("#2ECC71")
	ColorCalendar = lipgloss.Color("#4285F4")
	ColorAlert    = lipgloss.Color("#E84393")
	ColorActive   = lipgloss.Color("#F0A030")
	ColorMuted    = lipgloss.Color("#888888")
	ColorFaint    = lipgloss.Color("#555555")
	ColorWhite    = lipgloss.Color("#FFFFFF")
	ColorText     = lipgloss.Color("#D0D0D0")
	ColorCursorBg = lipgloss.Color("#263238")
	ColorHeading  = lipgloss.Color("#00BCD4")
	ColorKeystone = lipgloss.Color("#FF9800")
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	HeaderCountStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NowLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Padding(0, 1)
)

// Block list styles
var (
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorCursorBg)

	NormalStyle = lipgloss.NewStyle()

	CompleteStyle = lipgloss.NewStyle().
			Foreground(ColorDone)

	CurrentStyle = lipgloss.NewStyle().
			Foreground(ColorActive)

	IncompleteStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	RequiredStyle = lipgloss.NewStyle().
			Foreground(ColorKeystone)
)

// Panel styles
var (
	SectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHeading)

	DetailPanelStyle = lipgloss.NewStyle().
				Padding(0, 1)

	FailedSourceStyle = lipgloss.NewStyle().
				Foreground(ColorAlert)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)
)

// Status icons
const (
	IconComplete   = "✓"
	IconCurrent    = "◐"
	IconIncomplete = "○"
	IconRequired   = "!"
	IconFlame      = "🔥"
)
