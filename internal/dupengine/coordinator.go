// Package dupengine copies one source file to many destinations at once and
// reports per-destination progress.
package dupengine

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/joe/multidup/pkg/filesystem"
)

// Coordinator launches the workers, observes their status until every copy is
// final, then flushes the destinations and reports the result.
type Coordinator struct {
	registry *WorkerRegistry
	logger   *zap.SugaredLogger
	emitter  EventEmitter // optional
}

// NewCoordinator creates a coordinator for registry.
func NewCoordinator(registry *WorkerRegistry, logger *zap.SugaredLogger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Coordinator{
		registry: registry,
		logger:   logger,
	}
}

// SetEventEmitter sets the event emitter for progress reporting.
// The emitter is optional - if nil, no events will be emitted.
func (c *Coordinator) SetEventEmitter(emitter EventEmitter) {
	c.emitter = emitter
}

// GetEventEmitter returns the current event emitter.
func (c *Coordinator) GetEventEmitter() EventEmitter {
	return c.emitter
}

// Run copies to every destination and blocks until all of them are final and flushed.
// A failed destination never stops the others.
func (c *Coordinator) Run() *Result {
	start := time.Now()

	workers := c.registry.Workers()
	destinations := make([]string, 0, len(workers))

	for _, worker := range workers {
		destinations = append(destinations, worker.Task().Destination)
	}

	source := workers[0].Task().Source
	c.logger.Infow("starting copies", "source", source, "destinations", len(destinations))
	c.emit(RunStarted{Source: source, Destinations: destinations})

	c.registry.Start()
	view := c.observe()
	c.registry.Wait()

	flushErr := c.flush(workers, view)

	result := &Result{
		View:     view,
		HasError: view.HasError() || flushErr != nil,
		FlushErr: flushErr,
		Elapsed:  time.Since(start),
	}

	c.logResult(result)
	c.emit(RunComplete{Result: result})

	return result
}

// emit sends an event if an emitter is configured.
func (c *Coordinator) emit(event Event) {
	if c.emitter != nil {
		c.emitter.Emit(event)
	}
}

// observe holds the status lock, publishing a snapshot after every change, and
// returns the first view in which every destination is final.
func (c *Coordinator) observe() AggregateView {
	channel := c.registry.Channel()

	channel.Lock()
	defer channel.Unlock()

	for {
		view := c.registry.snapshotLocked()
		c.emit(Snapshot{View: view})

		if view.IsDone() {
			return view
		}

		channel.Wait()
	}
}

// flush asks each destination filesystem once to push written data to storage.
// Destinations that never opened are skipped.
func (c *Coordinator) flush(workers []*CopyWorker, view AggregateView) error {
	var (
		order  []filesystem.FileSystem
		groups = make(map[filesystem.FileSystem][]string)
	)

	for i, worker := range workers {
		if !wroteData(view[i]) {
			continue
		}

		task := worker.Task()
		if _, seen := groups[task.DestFS]; !seen {
			order = append(order, task.DestFS)
		}

		groups[task.DestFS] = append(groups[task.DestFS], task.DestPath)
	}

	if len(order) == 0 {
		return nil
	}

	c.emit(FlushStarted{Filesystems: len(order)})
	c.logger.Debugw("flushing destinations", "filesystems", len(order))

	var errs []error

	for _, fs := range order {
		err := fs.Flush(groups[fs])
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to flush %v: %w", groups[fs], err))
		}
	}

	err := errors.Join(errs...)
	c.emit(FlushComplete{Err: err})

	return err
}

// wroteData reports whether a destination was opened for writing.
func wroteData(status DestinationStatus) bool {
	switch status.State {
	case StateCompleted:
		return true
	case StateFailed:
		return status.Err != nil && status.Err.Kind == IOError
	case StatePending, StateRunning:
		return false
	default:
		return false
	}
}

func (c *Coordinator) logResult(result *Result) {
	for _, failure := range result.View.Failures() {
		c.logger.Errorw("destination failed",
			"destination", failure.Destination,
			"kind", failure.Err.Kind.String(),
			"errno", int(failure.Err.Errno),
			"error", failure.Err.Message())
	}

	if result.FlushErr != nil {
		c.logger.Errorw("flush failed", "error", result.FlushErr)
	}

	counts := result.View.Counts()
	c.logger.Infow("copies finished",
		"completed", counts[StateCompleted],
		"failed", counts[StateFailed],
		"elapsed", result.Elapsed)
}
