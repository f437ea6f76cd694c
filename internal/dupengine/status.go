package dupengine

import "time"

// WorkerState is the lifecycle stage of one destination copy.
type WorkerState int

// Worker states. Pending and Running are transient, Failed and Completed are final.
const (
	StatePending WorkerState = iota
	StateRunning
	StateFailed
	StateCompleted
)

// String returns the label shown next to each destination.
func (s WorkerState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateFailed:
		return "failed"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further transitions can happen.
func (s WorkerState) IsTerminal() bool {
	return s == StateFailed || s == StateCompleted
}

// WorkerStatus is a copy of one worker's progress, safe to read without the lock.
type WorkerStatus struct {
	State   WorkerState
	Percent int // 0..100, 100 only when Completed
	// BytesWritten is refreshed at each percent step, then set to the full count on completion.
	BytesWritten int64
	TotalBytes   int64
	Err          *WorkerError // set only when Failed
}

// DestinationStatus pairs a destination with its status, in the order given on the command line.
type DestinationStatus struct {
	Index       int
	Destination string
	WorkerStatus
}

// AggregateView is the coordinator's snapshot of every destination.
type AggregateView []DestinationStatus

// IsDone reports whether every destination reached a final state.
func (v AggregateView) IsDone() bool {
	for _, status := range v {
		if !status.State.IsTerminal() {
			return false
		}
	}

	return true
}

// HasError reports whether any destination failed.
func (v AggregateView) HasError() bool {
	for _, status := range v {
		if status.State == StateFailed {
			return true
		}
	}

	return false
}

// Counts returns how many destinations are in each state.
func (v AggregateView) Counts() map[WorkerState]int {
	counts := make(map[WorkerState]int, 4) //nolint:mnd // one bucket per state

	for _, status := range v {
		counts[status.State]++
	}

	return counts
}

// Failures returns the failed destinations.
func (v AggregateView) Failures() []DestinationStatus {
	var failed []DestinationStatus

	for _, status := range v {
		if status.State == StateFailed {
			failed = append(failed, status)
		}
	}

	return failed
}

// Result is what a finished run reports.
type Result struct {
	View     AggregateView
	HasError bool
	// FlushErr is set when pushing data to durable storage failed. It also sets HasError.
	FlushErr error
	Elapsed  time.Duration
}
