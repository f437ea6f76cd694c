package dupengine

// Event is the interface implemented by all duplication engine events.
type Event interface {
	isEvent()
}

// EventEmitter is the interface for emitting events.
// Emit is called while the status lock is held, so implementations must not block.
type EventEmitter interface {
	Emit(event Event)
}

// RunStarted is emitted once, before any worker is launched.
type RunStarted struct {
	Source       string
	Destinations []string
}

func (RunStarted) isEvent() {}

// Snapshot is emitted every time the coordinator observes a status change.
type Snapshot struct {
	View AggregateView
}

func (Snapshot) isEvent() {}

// Flush phase events

// FlushStarted is emitted after all workers have finished, before buffered
// writes are pushed to durable storage.
type FlushStarted struct {
	Filesystems int
}

func (FlushStarted) isEvent() {}

// FlushComplete is emitted when every destination filesystem has been flushed.
type FlushComplete struct {
	Err error
}

func (FlushComplete) isEvent() {}

// RunComplete is emitted last, with the final result.
type RunComplete struct {
	Result *Result
}

func (RunComplete) isEvent() {}
