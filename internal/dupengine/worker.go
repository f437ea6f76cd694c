package dupengine

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/joe/multidup/pkg/filesystem"
)

// BlockSize is the size of each read and write. It is the unit of progress and of
// interleaving between destinations.
const BlockSize = 4096

// maxRunningPercent keeps 100 reserved for a completed copy.
const maxRunningPercent = 99

// CopyTask describes one source-to-destination copy.
type CopyTask struct {
	// Source and Destination are the paths as the user gave them, used for display.
	Source      string
	Destination string

	SourceFS   filesystem.FileSystem
	SourcePath string
	DestFS     filesystem.FileSystem
	DestPath   string

	// SourceErr and DestErr hold a failure to resolve that side, such as an
	// unreachable SFTP server. The worker reports it as an open error.
	SourceErr error
	DestErr   error
}

// CopyWorker copies one source into one destination, reporting through a StatusChannel.
type CopyWorker struct {
	index   int
	task    CopyTask
	channel *StatusChannel
	logger  *zap.SugaredLogger

	status WorkerStatus // guarded by channel
}

// NewCopyWorker creates a Pending worker.
func NewCopyWorker(index int, task CopyTask, channel *StatusChannel, logger *zap.SugaredLogger) *CopyWorker {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &CopyWorker{
		index:   index,
		task:    task,
		channel: channel,
		logger:  logger.With("destination", task.Destination),
	}
}

// Task returns the worker's copy task.
func (w *CopyWorker) Task() CopyTask {
	return w.task
}

// Status returns a snapshot of the worker's status, taking the status lock.
func (w *CopyWorker) Status() WorkerStatus {
	w.channel.Lock()
	defer w.channel.Unlock()

	return w.status
}

// Run performs the copy and leaves the worker in Completed or Failed.
func (w *CopyWorker) Run() {
	written, err := w.copy()
	if err != nil {
		w.logger.Warnw("copy failed", "kind", err.Kind.String(), "path", err.Path, "error", err.Err)
		w.transition(func(status *WorkerStatus) {
			status.State = StateFailed
			status.Err = err
		})

		return
	}

	w.transition(func(status *WorkerStatus) {
		status.State = StateCompleted
		status.Percent = 100
		status.BytesWritten = written
	})
	w.logger.Debugw("copy completed", "bytes", written)
}

// snapshotLocked returns the status. The caller must hold the status lock.
func (w *CopyWorker) snapshotLocked() DestinationStatus {
	return DestinationStatus{
		Index:        w.index,
		Destination:  w.task.Destination,
		WorkerStatus: w.status,
	}
}

// transition applies mutate under the lock unless the worker already reached a final state.
func (w *CopyWorker) transition(mutate func(status *WorkerStatus)) {
	w.channel.Update(func() {
		if w.status.State.IsTerminal() {
			return
		}

		mutate(&w.status)
	})
}

// copy opens both ends, streams the data and closes the destination.
// Handles are released on every path.
func (w *CopyWorker) copy() (int64, *WorkerError) {
	if w.task.SourceErr != nil {
		return 0, newWorkerError(OpenError, w.task.Source, w.task.SourceErr)
	}

	sourceFile, err := w.task.SourceFS.Open(w.task.SourcePath)
	if err != nil {
		return 0, newWorkerError(OpenError, w.task.Source, err)
	}

	defer func() {
		_ = sourceFile.Close()
	}()

	sourceInfo, err := sourceFile.Stat()
	if err != nil {
		return 0, newWorkerError(StatError, w.task.Source, err)
	}

	if w.task.DestErr != nil {
		return 0, newWorkerError(OpenError, w.task.Destination, w.task.DestErr)
	}

	destFile, err := w.task.DestFS.OpenFile(w.task.DestPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, sourceInfo.Mode().Perm())
	if err != nil {
		return 0, newWorkerError(OpenError, w.task.Destination, err)
	}

	destClosed := false

	defer func() {
		if !destClosed {
			_ = destFile.Close()
		}
	}()

	w.transition(func(status *WorkerStatus) {
		status.State = StateRunning
		status.TotalBytes = sourceInfo.Size()
	})
	w.logger.Debugw("copy started", "bytes", sourceInfo.Size())

	written, copyErr := w.copyLoop(sourceFile, destFile, sourceInfo.Size())
	if copyErr != nil {
		return written, copyErr
	}

	destClosed = true

	err = destFile.Close()
	if err != nil {
		return written, newWorkerError(IOError, w.task.Destination,
			fmt.Errorf("failed to close destination: %w", err))
	}

	return written, nil
}

// copyLoop moves BlockSize chunks until the source reports end of file.
func (w *CopyWorker) copyLoop(sourceFile io.Reader, destFile io.Writer, sourceSize int64) (int64, *WorkerError) {
	buf := make([]byte, BlockSize)
	tracker := newProgressTracker(sourceSize)

	for {
		nr, err := sourceFile.Read(buf) //nolint:varnamelen // nr is idiomatic for bytes read
		if nr > 0 {
			writeErr := writeFull(destFile, buf[:nr])
			if writeErr != nil {
				return tracker.written, newWorkerError(IOError, w.task.Destination,
					fmt.Errorf("failed to write to destination: %w", writeErr))
			}

			if tracker.advance(nr) {
				percent, written := tracker.percent, tracker.written
				w.transition(func(status *WorkerStatus) {
					status.Percent = percent
					status.BytesWritten = written
				})
			}
		}

		if errors.Is(err, io.EOF) {
			return tracker.written, nil
		}

		if err != nil {
			return tracker.written, newWorkerError(IOError, w.task.Source,
				fmt.Errorf("failed to read from source: %w", err))
		}
	}
}

// writeFull writes chunk completely, retrying short writes.
// A write that makes no progress without reporting an error is a short write.
func writeFull(destFile io.Writer, chunk []byte) error {
	for len(chunk) > 0 {
		nw, err := destFile.Write(chunk) //nolint:varnamelen // nw is idiomatic for bytes written
		if err != nil {
			return err //nolint:wrapcheck // Caller adds destination context
		}

		if nw == 0 {
			return io.ErrShortWrite
		}

		chunk = chunk[nw:]
	}

	return nil
}

// progressTracker turns a byte count into whole percent steps of size/100 bytes.
// Files under 100 bytes have no steps and go straight from 0 to 100 on completion.
type progressTracker struct {
	step    int64
	next    int64
	written int64
	percent int
}

func newProgressTracker(size int64) *progressTracker {
	step := size / 100 //nolint:mnd // percent

	return &progressTracker{step: step, next: step}
}

// advance records n written bytes and reports whether the percentage moved.
// Several thresholds crossed by one chunk count as one change.
func (p *progressTracker) advance(n int) bool {
	p.written += int64(n)

	if p.step == 0 {
		return false
	}

	moved := false

	for p.percent < maxRunningPercent && p.written >= p.next {
		p.percent++
		p.next += p.step
		moved = true
	}

	return moved
}
