package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/multidup/internal/dupengine"
	"github.com/joe/multidup/internal/tui/shared"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = shared.BarWidth(msg.Width)

		return m, nil

	case tea.KeyMsg:
		if msg.String() == shared.KeyCtrlC {
			return m.Update(shared.DetachMsg{})
		}

		return m, nil

	case shared.DetachMsg:
		// The copies keep running; only the display goes away.
		if m.result == nil {
			m.detached = true
		}

		return m, tea.Quit

	case shared.EngineEventMsg:
		return m.handleEngineEvent(msg.Event)

	case shared.TickMsg:
		if m.result != nil {
			return m, nil
		}

		m.now = time.Time(msg)

		return m, shared.TickCmd()

	case spinner.TickMsg:
		if m.result != nil {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

// handleEngineEvent folds one engine event into the model and keeps listening
// until the run is complete.
func (m Model) handleEngineEvent(event dupengine.Event) (tea.Model, tea.Cmd) {
	switch event := event.(type) {
	case dupengine.RunStarted:
		m.source = event.Source
	case dupengine.Snapshot:
		m.view = event.View
	case dupengine.FlushStarted:
		m.flushing = true
	case dupengine.FlushComplete:
		m.flushing = false
		m.flushErr = event.Err
	case dupengine.RunComplete:
		m.result = event.Result
		m.view = event.Result.View
		m.flushing = false
		m.flushErr = event.Result.FlushErr
		m.now = m.start.Add(event.Result.Elapsed)

		return m, tea.Quit
	}

	return m, m.listen()
}
