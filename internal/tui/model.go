// Package tui draws per-destination copy progress, either as an interactive
// bubbletea display or as plain lines.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/multidup/internal/dupengine"
	"github.com/joe/multidup/internal/tui/shared"
)

// Model represents the TUI state
type Model struct {
	source string
	bridge *shared.EventBridge

	// view holds one row per destination, in command-line order.
	view     dupengine.AggregateView
	bar      progress.Model
	spinner  spinner.Model
	width    int
	start    time.Time
	now      time.Time
	flushing bool
	flushErr error
	result   *dupengine.Result
	detached bool
}

// NewModel creates a model showing every destination as pending until the first snapshot.
func NewModel(source string, destinations []string, bridge *shared.EventBridge) Model {
	view := make(dupengine.AggregateView, 0, len(destinations))
	for i, destination := range destinations {
		view = append(view, dupengine.DestinationStatus{Index: i, Destination: destination})
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = shared.LabelStyle()

	now := time.Now()

	return Model{
		source:  source,
		bridge:  bridge,
		view:    view,
		bar:     shared.NewProgressModel(shared.ProgressBarWidth),
		spinner: s,
		start:   now,
		now:     now,
	}
}

// Detached reports whether the user closed the display before the copies finished.
func (m Model) Detached() bool {
	return m.detached
}

// Done reports whether the final result has been received.
func (m Model) Done() bool {
	return m.result != nil
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listen(), m.spinner.Tick, shared.TickCmd())
}

// listen waits for the next engine event.
func (m Model) listen() tea.Cmd {
	if m.bridge == nil {
		return nil
	}

	return m.bridge.ListenCmd()
}
