// Package main is the entry point for the multidup application.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term" //nolint:depguard // Required for TTY detection

	"github.com/joe/multidup/internal/config"
	"github.com/joe/multidup/internal/dupengine"
	"github.com/joe/multidup/internal/logger"
	"github.com/joe/multidup/internal/tui"
	"github.com/joe/multidup/internal/tui/shared"
	"github.com/joe/multidup/pkg/errors"
	"github.com/joe/multidup/pkg/filesystem"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return exitUsage
	}

	log, err := logger.New(logger.Config{Path: cfg.LogPath, Level: cfg.LogLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return exitUsage
	}

	defer func() {
		_ = log.Sync()
	}()

	resolver := filesystem.NewResolver()

	defer func() {
		closeErr := resolver.Close()
		if closeErr != nil {
			log.Warnw("failed to close remote connections", "error", closeErr)
		}
	}()

	// Paths that cannot be resolved become failed destinations, not a failed run.
	tasks, err := dupengine.PlanTasks(resolver, cfg.Source, cfg.Destinations)
	if err != nil {
		printError(err)

		return exitUsage
	}

	registry, err := dupengine.NewWorkerRegistry(tasks, log)
	if err != nil {
		printError(err)

		return exitUsage
	}

	coordinator := dupengine.NewCoordinator(registry, log)

	var result *dupengine.Result
	if !cfg.Plain && term.IsTerminal(int(os.Stdout.Fd())) {
		result = runInteractive(cfg, coordinator, log)
	} else {
		renderer := tui.NewPlainRenderer(os.Stdout)
		coordinator.SetEventEmitter(renderer)
		result = coordinator.Run()
		renderer.Close()
	}

	if result.HasError {
		return exitError
	}

	return exitOK
}

// runInteractive shows the bubbletea display while the coordinator runs. If the
// display is closed early the copies still run to completion and a plain summary
// is printed at the end.
func runInteractive(cfg *config.Config, coordinator *dupengine.Coordinator, log *zap.SugaredLogger) *dupengine.Result {
	bridge := shared.NewEventBridge()
	coordinator.SetEventEmitter(bridge)

	results := make(chan *dupengine.Result, 1)

	go func() {
		results <- coordinator.Run()
	}()

	program := tea.NewProgram(tui.NewModel(cfg.Source, cfg.Destinations, bridge))

	finalModel, err := program.Run()
	bridge.Close()

	showSummary := err != nil
	if err != nil {
		log.Warnw("display stopped", "error", err)
	}

	if model, ok := finalModel.(tui.Model); ok && model.Detached() {
		fmt.Fprintln(os.Stderr, "Display closed; waiting for copies to finish...")

		showSummary = true
	}

	result := <-results
	if showSummary {
		tui.WriteSummary(os.Stdout, result)
	}

	return result
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	suggestions := errors.FormatSuggestions(err)
	if suggestions != "" {
		fmt.Fprintln(os.Stderr, suggestions)
	}
}
