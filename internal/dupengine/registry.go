package dupengine

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/joe/multidup/pkg/filesystem"
)

// Resolver maps a user-supplied path to the filesystem that serves it.
type Resolver interface {
	Resolve(path string) (filesystem.FileSystem, string, error)
}

// PlanTasks resolves the source and every destination into copy tasks, in order.
// Duplicate destinations are kept; each gets its own task. A path that cannot be
// resolved still yields a task: its worker fails to open instead of stopping the run.
func PlanTasks(resolver Resolver, source string, destinations []string) ([]CopyTask, error) {
	if len(destinations) == 0 {
		return nil, ErrNoDestinations
	}

	sourceFS, sourcePath, sourceErr := resolver.Resolve(source)
	if sourceErr != nil {
		sourceErr = fmt.Errorf("failed to resolve source %s: %w", source, sourceErr)
	}

	tasks := make([]CopyTask, 0, len(destinations))

	for _, destination := range destinations {
		destFS, destPath, err := resolver.Resolve(destination)
		if err != nil {
			err = fmt.Errorf("failed to resolve destination %s: %w", destination, err)
		}

		tasks = append(tasks, CopyTask{
			Source:      source,
			Destination: destination,
			SourceFS:    sourceFS,
			SourcePath:  sourcePath,
			SourceErr:   sourceErr,
			DestFS:      destFS,
			DestPath:    destPath,
			DestErr:     err,
		})
	}

	return tasks, nil
}

// WorkerRegistry owns one worker per destination and the status channel they share.
type WorkerRegistry struct {
	channel *StatusChannel
	workers []*CopyWorker
	wg      sync.WaitGroup
	once    sync.Once
}

// NewWorkerRegistry creates a Pending worker for each task.
func NewWorkerRegistry(tasks []CopyTask, logger *zap.SugaredLogger) (*WorkerRegistry, error) {
	if len(tasks) == 0 {
		return nil, ErrNoDestinations
	}

	registry := &WorkerRegistry{
		channel: NewStatusChannel(),
		workers: make([]*CopyWorker, 0, len(tasks)),
	}

	for i, task := range tasks {
		registry.workers = append(registry.workers, NewCopyWorker(i, task, registry.channel, logger))
	}

	return registry, nil
}

// Channel returns the status channel shared by all workers.
func (r *WorkerRegistry) Channel() *StatusChannel {
	return r.channel
}

// Len returns the number of destinations.
func (r *WorkerRegistry) Len() int {
	return len(r.workers)
}

// Workers returns the workers in destination order.
func (r *WorkerRegistry) Workers() []*CopyWorker {
	workers := make([]*CopyWorker, len(r.workers))
	copy(workers, r.workers)

	return workers
}

// Start launches every worker concurrently. Later calls do nothing.
func (r *WorkerRegistry) Start() {
	r.once.Do(func() {
		for _, worker := range r.workers {
			r.wg.Add(1)

			go func(worker *CopyWorker) {
				defer r.wg.Done()
				worker.Run()
			}(worker)
		}
	})
}

// Wait blocks until every started worker has returned.
func (r *WorkerRegistry) Wait() {
	r.wg.Wait()
}

// Snapshot returns the current view, taking the status lock.
func (r *WorkerRegistry) Snapshot() AggregateView {
	r.channel.Lock()
	defer r.channel.Unlock()

	return r.snapshotLocked()
}

// snapshotLocked builds the view. The caller must hold the status lock.
func (r *WorkerRegistry) snapshotLocked() AggregateView {
	view := make(AggregateView, 0, len(r.workers))

	for _, worker := range r.workers {
		view = append(view, worker.snapshotLocked())
	}

	return view
}
