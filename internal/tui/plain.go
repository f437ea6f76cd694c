package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/joe/multidup/internal/dupengine"
	"github.com/joe/multidup/internal/tui/shared"
	"github.com/joe/multidup/pkg/errors"
)

// PlainRenderer writes a line for every destination whose state or percentage
// changed. It is used when stdout is not a terminal or --plain is given.
// Emit only queues text; a background goroutine does the writing, so a slow
// reader of out never holds up the copies.
type PlainRenderer struct {
	out  io.Writer
	last map[int]rowState

	mu        sync.Mutex
	pending   []string
	wake      chan struct{}
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

type rowState struct {
	state   dupengine.WorkerState
	percent int
}

// NewPlainRenderer creates a renderer writing to out. Call Close when the run is over.
func NewPlainRenderer(out io.Writer) *PlainRenderer {
	r := &PlainRenderer{
		out:     out,
		last:    make(map[int]rowState),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	go r.run()

	return r
}

// Emit implements dupengine.EventEmitter. It must be called from one goroutine.
func (r *PlainRenderer) Emit(event dupengine.Event) {
	var b strings.Builder

	switch event := event.(type) {
	case dupengine.RunStarted:
		fmt.Fprintf(&b, "copying %s to %d destination(s)\n", event.Source, len(event.Destinations))
	case dupengine.Snapshot:
		r.writeChanges(&b, event.View)
	case dupengine.FlushStarted:
		fmt.Fprintf(&b, "flushing %d filesystem(s)...\n", event.Filesystems)
	case dupengine.FlushComplete:
		if event.Err != nil {
			fmt.Fprintf(&b, "flush failed: %v\n", event.Err)
		} else {
			b.WriteString("flush complete\n")
		}
	case dupengine.RunComplete:
		writeSummary(&b, event.Result)
	}

	if b.Len() == 0 {
		return
	}

	r.mu.Lock()
	r.pending = append(r.pending, b.String())
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Close writes everything emitted so far and stops the writer. Later events are dropped.
func (r *PlainRenderer) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
	})

	<-r.stopped
}

func (r *PlainRenderer) run() {
	defer close(r.stopped)

	for {
		select {
		case <-r.wake:
			r.flushPending()
		case <-r.done:
			r.flushPending()
			return
		}
	}
}

func (r *PlainRenderer) flushPending() {
	r.mu.Lock()
	text := r.pending
	r.pending = nil
	r.mu.Unlock()

	for _, chunk := range text {
		_, _ = io.WriteString(r.out, chunk)
	}
}

func (r *PlainRenderer) writeChanges(b *strings.Builder, view dupengine.AggregateView) {
	for _, status := range view {
		current := rowState{state: status.State, percent: status.Percent}

		previous, seen := r.last[status.Index]
		if seen && previous == current {
			continue
		}

		r.last[status.Index] = current

		switch status.State {
		case dupengine.StatePending:
			continue
		case dupengine.StateRunning:
			fmt.Fprintf(b, "[%s] %s\n", shared.FormatPercent(status.Percent), status.Destination)
		case dupengine.StateCompleted:
			fmt.Fprintf(b, "[done] %s (%s)\n", status.Destination, shared.FormatBytes(status.BytesWritten))
		case dupengine.StateFailed:
			fmt.Fprintf(b, "[FAIL] %s: %v\n", status.Destination, status.Err)
		}
	}
}

// WriteSummary writes the final counts and explains every failure without styling.
func WriteSummary(out io.Writer, result *dupengine.Result) {
	var b strings.Builder

	writeSummary(&b, result)

	_, _ = io.WriteString(out, b.String())
}

func writeSummary(b *strings.Builder, result *dupengine.Result) {
	b.WriteString(summaryLine(result))
	b.WriteString("\n")
	b.WriteString(summaryTable(result.View))
	b.WriteString("\n")

	enricher := errors.NewEnricher()

	for _, failure := range result.View.Failures() {
		fmt.Fprintf(b, "%s:\n", failure.Destination)

		suggestions := errors.FormatSuggestions(enricher.Enrich(failure.Err, failure.Err.Path))
		if suggestions != "" {
			fmt.Fprintf(b, "    %s\n", strings.ReplaceAll(suggestions, "\n", "\n    "))
		}
	}

	if result.FlushErr != nil {
		fmt.Fprintf(b, "  flush failed: %v\n", result.FlushErr)
	}
}

// summaryTable lists every destination with its final state.
func summaryTable(view dupengine.AggregateView) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Destination", "State", "Written", "Error"})

	for _, status := range view {
		errText := ""
		if status.Err != nil {
			errText = status.Err.Error()
		}

		t.AppendRow(table.Row{
			status.Destination,
			status.State.String(),
			shared.FormatBytes(status.BytesWritten),
			errText,
		})
	}

	return t.Render()
}
