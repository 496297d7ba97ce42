package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the board.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Now    key.Binding
	Reload key.Binding
	Ship   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first block"),
		),
		Now: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "current block"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "regenerate"),
		),
		Ship: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "ship to display"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the footer help text.
func (k KeyMap) ShortHelp() string {
	return "↑↓ nav  n now  R regenerate  s ship  ? help  q quit"
}

// FullHelp returns all key bindings for the help modal.
func (k KeyMap) FullHelp() [][]string {
	return [][]string{
		{"↑/k", "Move up"},
		{"↓/j", "Move down"},
		{"g", "Jump to first block"},
		{"n", "Jump to current block"},
		{"R", "Regenerate the snapshot"},
		{"s", "Ship the snapshot to the display"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
}
