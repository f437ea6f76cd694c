package shared

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
)

// NewProgressModel creates a progress bar with the application's colors.
// Percentages are rendered next to the bar, not inside it.
func NewProgressModel(width int) progress.Model {
	progressBar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	progressBar.Width = width

	if !colorsDisabled {
		progressBar.EmptyColor = dimColorCode
		progressBar.FullColor = accentColorCode
	}

	return progressBar
}

// BarWidth picks a bar width that leaves room for the rest of a destination row.
func BarWidth(terminalWidth int) int {
	if terminalWidth <= 0 {
		return ProgressBarWidth
	}

	return min(MaxProgressBarWidth, max(MinProgressBarWidth, terminalWidth-RowOverhead))
}

// RenderASCIIProgress renders a bar like "[=========>          ]".
// percent is 0..100 and width is the number of cells between the brackets.
func RenderASCIIProgress(percent, width int) string {
	percent = min(ProgressPercentageScale, max(0, percent))
	filled := percent * width / ProgressPercentageScale

	var bar strings.Builder

	bar.WriteString("[")

	switch {
	case filled >= width:
		bar.WriteString(strings.Repeat("=", width))
	case percent > 0:
		equals := max(0, filled-1)
		bar.WriteString(strings.Repeat("=", equals))
		bar.WriteString(">")
		bar.WriteString(strings.Repeat(" ", width-equals-1))
	default:
		bar.WriteString(strings.Repeat(" ", width))
	}

	bar.WriteString("]")

	return bar.String()
}

// RenderProgress draws percent with the styled bar, or the ASCII one when
// NO_COLOR is set or TERM=dumb.
func RenderProgress(model progress.Model, percent int) string {
	if colorsDisabled {
		return RenderASCIIProgress(percent, model.Width)
	}

	return model.ViewAs(float64(percent) / ProgressPercentageScale)
}

// FormatPercent pads a percentage to a fixed width, e.g. " 42%".
func FormatPercent(percent int) string {
	return fmt.Sprintf("%3d%%", percent)
}
