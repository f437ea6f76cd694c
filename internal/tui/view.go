package tui

import (
	"fmt"
	"strings"

	"github.com/joe/multidup/internal/dupengine"
	"github.com/joe/multidup/internal/tui/shared"
)

// minNameWidth keeps destination names readable on narrow terminals.
const minNameWidth = 16

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(shared.RenderTitle("multidup"))
	b.WriteString("  ")
	b.WriteString(shared.RenderDim("copying " + m.source))

	if total := totalBytes(m.view); total > 0 {
		b.WriteString(shared.RenderDim(" (" + shared.FormatBytes(total) + ")"))
	}

	b.WriteString("\n\n")

	nameWidth := m.nameWidth()
	for _, status := range m.view {
		b.WriteString(m.renderRow(status, nameWidth))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	switch {
	case m.result != nil:
		b.WriteString(renderSummary(m.result))
	case m.flushing:
		fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), shared.RenderLabel("flushing to storage..."))
	default:
		b.WriteString(shared.RenderDim(fmt.Sprintf("elapsed %s  %s",
			shared.FormatDuration(m.now.Sub(m.start)), countsLine(m.view))))
		b.WriteString("\n")
		b.WriteString(shared.RenderDim("ctrl+c hides this display; copies continue"))
		b.WriteString("\n")
	}

	return b.String()
}

// renderRow draws one destination: symbol, name, bar, percent and bytes or error.
func (m Model) renderRow(status dupengine.DestinationStatus, nameWidth int) string {
	name := fmt.Sprintf("%-*s", nameWidth, shared.TruncatePath(status.Destination, nameWidth))

	switch status.State {
	case dupengine.StatePending:
		return fmt.Sprintf("  %s %s %s", shared.PendingSymbol(), shared.ItemStyle().Render(name),
			shared.RenderDim("pending"))

	case dupengine.StateRunning:
		return fmt.Sprintf("  %s %s %s %s  %s", m.spinner.View(), shared.ItemCopyingStyle().Render(name),
			shared.RenderProgress(m.bar, status.Percent), shared.FormatPercent(status.Percent),
			shared.RenderDim(shared.FormatBytes(status.BytesWritten)+" / "+shared.FormatBytes(status.TotalBytes)))

	case dupengine.StateCompleted:
		return fmt.Sprintf("  %s %s %s %s  %s", shared.SuccessSymbol(), shared.ItemCompleteStyle().Render(name),
			shared.RenderProgress(m.bar, status.Percent), shared.FormatPercent(status.Percent),
			shared.RenderDim(shared.FormatBytes(status.BytesWritten)))

	case dupengine.StateFailed:
		reason := "failed"
		if status.Err != nil {
			reason = "failed: " + status.Err.Kind.String()
		}

		return fmt.Sprintf("  %s %s %s", shared.ErrorSymbol(), shared.ItemErrorStyle().Render(name),
			shared.RenderError(reason))
	}

	return ""
}

// nameWidth fits the longest destination, shrinking it on narrow terminals.
func (m Model) nameWidth() int {
	width := minNameWidth

	for _, status := range m.view {
		width = max(width, len([]rune(status.Destination)))
	}

	if m.width > 0 {
		width = min(width, max(minNameWidth, m.width-m.bar.Width-shared.RowOverhead/2))
	}

	return width
}

// renderSummary draws the final counts and explains every failure.
func renderSummary(result *dupengine.Result) string {
	var b strings.Builder

	line := summaryLine(result)
	if result.HasError {
		b.WriteString(shared.RenderWarning(line))
	} else {
		b.WriteString(shared.RenderSuccess(line))
	}

	b.WriteString("\n")

	if result.FlushErr != nil {
		b.WriteString(shared.RenderError("flush failed: " + result.FlushErr.Error()))
		b.WriteString("\n")
	}

	if failures := result.View.Failures(); len(failures) > 0 {
		b.WriteString("\n")
		b.WriteString(shared.RenderErrorList(shared.ErrorListConfig{Failures: failures}))
	}

	return b.String()
}

// summaryLine reads like "2 of 3 copies completed, 1 failed (4s)".
func summaryLine(result *dupengine.Result) string {
	counts := result.View.Counts()

	line := fmt.Sprintf("%d of %d copies completed", counts[dupengine.StateCompleted], len(result.View))
	if failed := counts[dupengine.StateFailed]; failed > 0 {
		line += fmt.Sprintf(", %d failed", failed)
	}

	return line + " (" + shared.FormatDuration(result.Elapsed) + ")"
}

// countsLine reads like "1 running, 2 completed".
func countsLine(view dupengine.AggregateView) string {
	counts := view.Counts()
	parts := make([]string, 0, 4) //nolint:mnd // one part per state

	for _, state := range []dupengine.WorkerState{
		dupengine.StatePending, dupengine.StateRunning, dupengine.StateCompleted, dupengine.StateFailed,
	} {
		if counts[state] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[state], state))
		}
	}

	return strings.Join(parts, ", ")
}

func totalBytes(view dupengine.AggregateView) int64 {
	for _, status := range view {
		if status.TotalBytes > 0 {
			return status.TotalBytes
		}
	}

	return 0
}
