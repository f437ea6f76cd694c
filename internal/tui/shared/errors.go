package shared

import (
	"fmt"
	"strings"

	"github.com/joe/multidup/internal/dupengine"
	"github.com/joe/multidup/pkg/errors"
)

// ErrorLimitSummary is how many failed destinations are explained in full.
const ErrorLimitSummary = 10

// ErrorListConfig holds configuration for rendering error lists
type ErrorListConfig struct {
	// Failures are the failed destinations to explain
	Failures []dupengine.DestinationStatus

	// Limit caps how many failures are shown. Zero means ErrorLimitSummary.
	Limit int

	// MaxWidth is the maximum width for path and error message display
	MaxWidth int
}

// RenderErrorList renders each failure with its cause and suggestions for fixing it.
func RenderErrorList(config ErrorListConfig) string {
	if len(config.Failures) == 0 {
		return ""
	}

	limit := config.Limit
	if limit <= 0 {
		limit = ErrorLimitSummary
	}

	var builder strings.Builder

	enricher := errors.NewEnricher()

	for i, failure := range config.Failures {
		if i >= limit {
			fmt.Fprintf(&builder, "... and %d more error(s)\n", len(config.Failures)-limit)

			break
		}

		displayPath := TruncatePath(failure.Destination, config.MaxWidth)
		fmt.Fprintf(&builder, "  %s %s\n", ErrorSymbol(), ItemErrorStyle().Render(displayPath))

		if failure.Err == nil {
			continue
		}

		errMsg := failure.Err.Error()
		if config.MaxWidth > ProgressEllipsisLength && len(errMsg) > config.MaxWidth {
			errMsg = errMsg[:config.MaxWidth-ProgressEllipsisLength] + "..."
		}

		fmt.Fprintf(&builder, "    %s\n", errMsg)

		enrichedErr := enricher.Enrich(failure.Err, failure.Err.Path)

		suggestions := errors.FormatSuggestions(enrichedErr)
		if suggestions != "" {
			fmt.Fprintf(&builder, "    %s\n", strings.ReplaceAll(suggestions, "\n", "\n    "))
		}
	}

	return builder.String()
}
