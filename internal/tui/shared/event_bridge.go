package shared

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/multidup/internal/dupengine"
)

// lifecycleBuffer holds the run's non-snapshot events, of which there are only a few.
const lifecycleBuffer = 16

// EngineEventMsg wraps a dupengine.Event for use as a tea.Msg.
type EngineEventMsg struct {
	Event dupengine.Event
}

// EventBridge adapts engine events to bubble tea messages without ever blocking
// the engine. Only the newest Snapshot is kept: an older one still waiting to be
// drawn is replaced. Lifecycle events are queued.
type EventBridge struct {
	latest    chan tea.Msg
	lifecycle chan tea.Msg
	done      chan struct{}
	closeOnce sync.Once
}

// NewEventBridge creates a new event bridge.
func NewEventBridge() *EventBridge {
	return &EventBridge{
		latest:    make(chan tea.Msg, 1),
		lifecycle: make(chan tea.Msg, lifecycleBuffer),
		done:      make(chan struct{}),
	}
}

// Emit implements dupengine.EventEmitter. It must be called from one goroutine.
func (b *EventBridge) Emit(event dupengine.Event) {
	msg := EngineEventMsg{Event: event}

	if _, ok := event.(dupengine.Snapshot); !ok {
		select {
		case b.lifecycle <- msg:
		default:
		}

		return
	}

	// Drop the undrawn snapshot, if any, then store this one.
	select {
	case <-b.latest:
	default:
	}

	select {
	case b.latest <- msg:
	default:
	}
}

// ListenCmd returns a tea.Cmd that blocks until the next event, or returns nil
// once the bridge is closed. Lifecycle events are delivered before a pending snapshot.
func (b *EventBridge) ListenCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.lifecycle:
			return msg
		default:
		}

		select {
		case msg := <-b.lifecycle:
			return msg
		case msg := <-b.latest:
			return msg
		case <-b.done:
			return nil
		}
	}
}

// Close stops every pending and future ListenCmd.
func (b *EventBridge) Close() {
	b.closeOnce.Do(func() {
		close(b.done)
	})
}
