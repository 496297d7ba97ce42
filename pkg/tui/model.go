// Package tui is the live terminal board: it renders the current snapshot
// and regenerates it when the vault changes.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/stefanpenner/focusboard/pkg/state"
)

// FileChangedMsg is sent when the file watcher detects changes.
type FileChangedMsg struct{}

// DocumentMsg carries a freshly generated snapshot.
type DocumentMsg struct {
	Doc *state.Document
	Err error
}

// ShipDoneMsg is sent when shipping to the display completes.
type ShipDoneMsg struct {
	Err error
}

// GenerateFunc builds (and usually persists) a snapshot.
type GenerateFunc func(ctx context.Context) (*state.Document, error)

// ShipFunc sends the last written snapshot to the display.
type ShipFunc func(ctx context.Context) error

// Model is the Bubble Tea model for the board.
type Model struct {
	generate GenerateFunc
	ship     ShipFunc
	keys     KeyMap
	width    int
	height   int

	doc    *state.Document
	rows   []BlockRow
	cursor int

	// Regeneration is serialized: at most one in flight, and changes that
	// arrive meanwhile queue exactly one more run.
	generating bool
	pending    bool
	shipping   bool

	showHelpModal bool

	statusMsg     string
	statusTimeout time.Time

	// Cached glamour renderer (expensive to create)
	glamourRenderer *glamour.TermRenderer
	glamourWidth    int
}

// NewModel creates a board that regenerates with generate and ships with
// ship. ship may be nil when no display host is configured.
func NewModel(generate GenerateFunc, ship ShipFunc) Model {
	return Model{
		generate:   generate,
		ship:       ship,
		keys:       DefaultKeyMap(),
		generating: generate != nil,
	}
}

// Init implements tea.Model. The first build is already marked in flight
// by NewModel.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.WindowSize(), generateCmd(m.generate))
}

func generateCmd(generate GenerateFunc) tea.Cmd {
	if generate == nil {
		return nil
	}
	return func() tea.Msg {
		doc, err := generate(context.Background())
		return DocumentMsg{Doc: doc, Err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.getGlamourRenderer(detailWidth(msg.Width))
		return m, tea.ClearScreen

	case FileChangedMsg:
		return m, m.regenerate()

	case DocumentMsg:
		m.generating = false
		if msg.Err != nil {
			m.setStatus("Generate failed: " + msg.Err.Error())
		}
		if msg.Doc != nil {
			m.setDocument(msg.Doc)
		}
		if m.pending {
			m.pending = false
			return m, m.regenerate()
		}
		return m, nil

	case ShipDoneMsg:
		m.shipping = false
		if msg.Err != nil {
			m.setStatus("Ship failed: " + msg.Err.Error())
		} else {
			m.setStatus("Shipped to display")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelpModal {
		switch {
		case key.Matches(msg, m.keys.Help), msg.Type == tea.KeyEsc:
			m.showHelpModal = false
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelpModal = true

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0

	case key.Matches(msg, m.keys.Now):
		m.cursor = CurrentRow(m.rows)

	case key.Matches(msg, m.keys.Reload):
		m.setStatus("Regenerating...")
		return m, m.regenerate()

	case key.Matches(msg, m.keys.Ship):
		return m, m.doShip()
	}
	return m, nil
}

// regenerate starts a build unless one is already running, in which case
// another is queued behind it.
func (m *Model) regenerate() tea.Cmd {
	if m.generating {
		m.pending = true
		return nil
	}
	cmd := generateCmd(m.generate)
	if cmd != nil {
		m.generating = true
	}
	return cmd
}

func (m *Model) doShip() tea.Cmd {
	if m.ship == nil {
		m.setStatus("No display host configured")
		return nil
	}
	if m.shipping {
		return nil
	}
	m.shipping = true
	m.setStatus("Shipping...")
	ship := m.ship
	return func() tea.Msg {
		return ShipDoneMsg{Err: ship(context.Background())}
	}
}

// setDocument swaps in a new snapshot, keeping the cursor on the same block
// when it still exists and otherwise following the current block.
func (m *Model) setDocument(doc *state.Document) {
	var selected string
	if m.cursor < len(m.rows) {
		selected = m.rows[m.cursor].Block.Time + "|" + m.rows[m.cursor].Block.Name
	}
	first := m.doc == nil

	m.doc = doc
	m.rows = BuildRows(doc)

	if first {
		m.cursor = CurrentRow(m.rows)
		return
	}
	for i, r := range m.rows {
		if r.Block.Time+"|"+r.Block.Name == selected {
			m.cursor = i
			return
		}
	}
	m.cursor = CurrentRow(m.rows)
}

// getGlamourRenderer returns a cached renderer, rebuilding it when the
// width changes.
func (m *Model) getGlamourRenderer(width int) *glamour.TermRenderer {
	if m.glamourRenderer != nil && m.glamourWidth == width {
		return m.glamourRenderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	m.glamourRenderer = r
	m.glamourWidth = width
	return r
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTimeout = time.Now().Add(3 * time.Second)
}
