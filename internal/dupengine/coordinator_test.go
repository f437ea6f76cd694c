//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package dupengine_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/multidup/internal/dupengine"
	"github.com/joe/multidup/pkg/filesystem"
)

const sourcePath = "/images/disk.img"

func TestRun_CopiesToEveryDestination(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	dir := t.TempDir()
	content := patternBytes(10 * 1024 * 1024)
	source := filepath.Join(dir, "disk.img")
	g.Expect(os.WriteFile(source, content, 0o600)).Should(Succeed())

	destinations := []string{
		filepath.Join(dir, "a.img"),
		filepath.Join(dir, "b.img"),
		filepath.Join(dir, "c.img"),
	}

	fs := filesystem.NewRealFileSystem()
	result, _ := runCopies(t, taskSet(fs, source, fs, destinations...))

	g.Expect(result.HasError).Should(BeFalse())
	g.Expect(result.FlushErr).ShouldNot(HaveOccurred())

	for _, status := range result.View {
		g.Expect(status.State).Should(Equal(dupengine.StateCompleted))
		g.Expect(status.Percent).Should(Equal(100))
		g.Expect(status.BytesWritten).Should(Equal(int64(len(content))))
		g.Expect(status.Err).Should(BeNil())
	}

	for _, destination := range destinations {
		written, err := os.ReadFile(destination)
		g.Expect(err).ShouldNot(HaveOccurred())
		g.Expect(bytes.Equal(written, content)).Should(BeTrue(), destination)

		info, err := os.Stat(destination)
		g.Expect(err).ShouldNot(HaveOccurred())
		g.Expect(info.Mode().Perm()).Should(Equal(os.FileMode(0o600)))
	}
}

func TestRun_MissingSourceFailsEveryDestination(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	dir := t.TempDir()
	destinations := []string{filepath.Join(dir, "a.img"), filepath.Join(dir, "b.img")}

	fs := filesystem.NewRealFileSystem()
	result, _ := runCopies(t, taskSet(fs, filepath.Join(dir, "missing.img"), fs, destinations...))

	g.Expect(result.HasError).Should(BeTrue())

	for _, status := range result.View {
		g.Expect(status.State).Should(Equal(dupengine.StateFailed))
		g.Expect(status.Err.Kind).Should(Equal(dupengine.OpenError))
		g.Expect(status.Err.Errno).Should(Equal(syscall.ENOENT))
		g.Expect(status.Percent).Should(Equal(0))
	}

	for _, destination := range destinations {
		_, err := os.Stat(destination)
		g.Expect(os.IsNotExist(err)).Should(BeTrue())
	}
}

func TestRun_BadDestinationDoesNotStopOthers(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "disk.img")
	g.Expect(os.WriteFile(source, patternBytes(64*1024), 0o600)).Should(Succeed())

	good := filepath.Join(dir, "good.img")
	bad := filepath.Join(dir, "no-such-dir", "bad.img")

	fs := filesystem.NewRealFileSystem()
	result, _ := runCopies(t, taskSet(fs, source, fs, bad, good))

	g.Expect(result.HasError).Should(BeTrue())
	g.Expect(result.View[0].State).Should(Equal(dupengine.StateFailed))
	g.Expect(result.View[0].Err.Kind).Should(Equal(dupengine.OpenError))
	g.Expect(result.View[0].Err.Path).Should(Equal(bad))
	g.Expect(result.View[0].Err.Errno).Should(Equal(syscall.ENOENT))
	g.Expect(result.View[1].State).Should(Equal(dupengine.StateCompleted))
	g.Expect(result.View[1].Percent).Should(Equal(100))
}

func TestRun_UnreachableDestinationDoesNotStopOthers(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	local := filesystem.NewMockFileSystem()
	local.AddFile(sourcePath, patternBytes(8*1024), 0o644)

	resolver := &stubResolver{local: local, err: syscall.ECONNREFUSED}

	tasks, err := dupengine.PlanTasks(resolver, sourcePath, []string{"/usb1/disk.img", "sftp://joe@down/disk.img"})
	g.Expect(err).ShouldNot(HaveOccurred())

	result, emitter := runCopies(t, tasks)

	g.Expect(result.HasError).Should(BeTrue())
	g.Expect(result.View[0].State).Should(Equal(dupengine.StateCompleted))
	g.Expect(result.View[1].State).Should(Equal(dupengine.StateFailed))
	g.Expect(result.View[1].Err.Kind).Should(Equal(dupengine.OpenError))
	g.Expect(result.View[1].Err.Path).Should(Equal("sftp://joe@down/disk.img"))
	g.Expect(result.View[1].Err.Errno).Should(Equal(syscall.ECONNREFUSED))
	g.Expect(local.Exists("/usb1/disk.img")).Should(BeTrue())
	g.Expect(local.Flushes()).Should(Equal([][]string{{"/usb1/disk.img"}}))

	for _, view := range emitter.snapshots() {
		g.Expect(view[1].State).ShouldNot(Equal(dupengine.StateRunning))
	}
}

func TestRun_UnreachableSourceFailsEveryDestination(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	local := filesystem.NewMockFileSystem()
	resolver := &stubResolver{local: local, err: syscall.ECONNREFUSED}

	tasks, err := dupengine.PlanTasks(resolver, "sftp://joe@down/disk.img", []string{"/usb1/disk.img", "/usb2/disk.img"})
	g.Expect(err).ShouldNot(HaveOccurred())

	result, _ := runCopies(t, tasks)

	g.Expect(result.HasError).Should(BeTrue())
	g.Expect(result.FlushErr).ShouldNot(HaveOccurred())

	for _, status := range result.View {
		g.Expect(status.State).Should(Equal(dupengine.StateFailed))
		g.Expect(status.Err.Kind).Should(Equal(dupengine.OpenError))
		g.Expect(status.Err.Path).Should(Equal("sftp://joe@down/disk.img"))
	}

	g.Expect(local.ListFiles()).Should(BeEmpty())
	g.Expect(local.Flushes()).Should(BeEmpty())
}

func TestRun_ZeroLengthSource(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "empty.img")
	g.Expect(os.WriteFile(source, nil, 0o600)).Should(Succeed())

	destination := filepath.Join(dir, "copy.img")

	fs := filesystem.NewRealFileSystem()
	result, _ := runCopies(t, taskSet(fs, source, fs, destination))

	g.Expect(result.HasError).Should(BeFalse())
	g.Expect(result.View[0].State).Should(Equal(dupengine.StateCompleted))
	g.Expect(result.View[0].Percent).Should(Equal(100))

	info, err := os.Stat(destination)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(info.Size()).Should(BeZero())
}

func TestRun_TruncatesExistingDestination(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := filesystem.NewMockFileSystem()
	mock.AddFile(sourcePath, []byte("short"), 0o644)
	mock.AddFile("/usb1/disk.img", bytes.Repeat([]byte("x"), 1000), 0o644)

	result, _ := runCopies(t, taskSet(mock, sourcePath, mock, "/usb1/disk.img"))
	g.Expect(result.HasError).Should(BeFalse())

	data, _, err := mock.GetFile("/usb1/disk.img")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).Should(Equal("short"))
}

func TestRun_DestinationsGetSourcePermissions(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "disk.img")
	g.Expect(os.WriteFile(source, patternBytes(4096), 0o600)).Should(Succeed())
	g.Expect(os.Chmod(source, 0o666)).Should(Succeed())

	fresh := filepath.Join(dir, "fresh.img")
	existing := filepath.Join(dir, "existing.img")
	g.Expect(os.WriteFile(existing, []byte("stale"), 0o600)).Should(Succeed())

	fs := filesystem.NewRealFileSystem()
	result, _ := runCopies(t, taskSet(fs, source, fs, fresh, existing))
	g.Expect(result.HasError).Should(BeFalse())

	for _, destination := range []string{fresh, existing} {
		info, err := os.Stat(destination)
		g.Expect(err).ShouldNot(HaveOccurred())
		g.Expect(info.Mode().Perm()).Should(Equal(os.FileMode(0o666)), destination)
	}
}

func TestRun_SmallFileJumpsFromZeroToHundred(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := filesystem.NewMockFileSystem()
	mock.AddFile(sourcePath, patternBytes(50), 0o644)

	_, emitter := runCopies(t, taskSet(mock, sourcePath, mock, "/usb1/disk.img"))

	for _, view := range emitter.snapshots() {
		g.Expect(view[0].Percent).Should(Or(Equal(0), Equal(100)))

		if view[0].Percent == 100 {
			g.Expect(view[0].State).Should(Equal(dupengine.StateCompleted))
		}
	}
}

func TestRun_RetriesShortWrites(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	content := patternBytes(3 * dupengine.BlockSize)

	mock := filesystem.NewMockFileSystem()
	mock.AddFile(sourcePath, content, 0o644)
	mock.InjectFault("/usb1/disk.img", filesystem.Fault{MaxWrite: 100})

	result, _ := runCopies(t, taskSet(mock, sourcePath, mock, "/usb1/disk.img"))
	g.Expect(result.HasError).Should(BeFalse())

	data, _, err := mock.GetFile("/usb1/disk.img")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(bytes.Equal(data, content)).Should(BeTrue())
}

func TestRun_WriteErrorFailsOnlyThatDestination(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := filesystem.NewMockFileSystem()
	mock.AddFile(sourcePath, patternBytes(10*dupengine.BlockSize), 0o644)
	mock.InjectFault("/usb1/disk.img", filesystem.Fault{
		Write:     &os.PathError{Op: "write", Path: "/usb1/disk.img", Err: syscall.EIO},
		FailAfter: 2 * dupengine.BlockSize,
	})

	result, _ := runCopies(t, taskSet(mock, sourcePath, mock, "/usb1/disk.img", "/usb2/disk.img"))

	g.Expect(result.HasError).Should(BeTrue())

	failed := result.View[0]
	g.Expect(failed.State).Should(Equal(dupengine.StateFailed))
	g.Expect(failed.Err.Kind).Should(Equal(dupengine.IOError))
	g.Expect(failed.Err.Errno).Should(Equal(syscall.EIO))
	g.Expect(failed.Err.Message()).Should(ContainSubstring("input/output error"))
	g.Expect(failed.Percent).Should(BeNumerically("<", 100))

	g.Expect(result.View[1].State).Should(Equal(dupengine.StateCompleted))
}

func TestRun_SourceReadErrorIsIOError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := filesystem.NewMockFileSystem()
	mock.AddFile(sourcePath, patternBytes(4*dupengine.BlockSize), 0o644)
	mock.InjectFault(sourcePath, filesystem.Fault{Read: syscall.EIO, FailAfter: dupengine.BlockSize})

	result, _ := runCopies(t, taskSet(mock, sourcePath, mock, "/usb1/disk.img"))

	g.Expect(result.View[0].State).Should(Equal(dupengine.StateFailed))
	g.Expect(result.View[0].Err.Kind).Should(Equal(dupengine.IOError))
	g.Expect(result.View[0].Err.Path).Should(Equal(sourcePath))
	g.Expect(result.View[0].Err.Errno).Should(Equal(syscall.EIO))
}

func TestRun_StatErrorFailsBeforeDestinationIsCreated(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := filesystem.NewMockFileSystem()
	mock.AddFile(sourcePath, patternBytes(100), 0o644)
	mock.InjectFault(sourcePath, filesystem.Fault{Stat: syscall.EIO})

	result, _ := runCopies(t, taskSet(mock, sourcePath, mock, "/usb1/disk.img"))

	g.Expect(result.View[0].State).Should(Equal(dupengine.StateFailed))
	g.Expect(result.View[0].Err.Kind).Should(Equal(dupengine.StatError))
	g.Expect(mock.Exists("/usb1/disk.img")).Should(BeFalse())
}

func TestRun_CloseErrorIsIOError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := filesystem.NewMockFileSystem()
	mock.AddFile(sourcePath, patternBytes(1000), 0o644)
	mock.InjectFault("/usb1/disk.img", filesystem.Fault{Close: syscall.ENOSPC})

	result, _ := runCopies(t, taskSet(mock, sourcePath, mock, "/usb1/disk.img"))

	g.Expect(result.View[0].State).Should(Equal(dupengine.StateFailed))
	g.Expect(result.View[0].Err.Kind).Should(Equal(dupengine.IOError))
	g.Expect(result.View[0].Err.Errno).Should(Equal(syscall.ENOSPC))
	g.Expect(mock.OpenHandles()).Should(BeZero())
}

func TestRun_ReleasesEveryHandle(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	source := filesystem.NewMockFileSystem()
	source.AddFile(sourcePath, patternBytes(5*dupengine.BlockSize), 0o644)

	dest := filesystem.NewMockFileSystem()
	dest.InjectFault("/usb1/disk.img", filesystem.Fault{Write: syscall.EIO, FailAfter: dupengine.BlockSize})
	dest.InjectFault("/usb2/disk.img", filesystem.Fault{Open: syscall.EACCES})

	result, _ := runCopies(t, taskSet(source, sourcePath, dest, "/usb1/disk.img", "/usb2/disk.img", "/usb3/disk.img"))

	g.Expect(result.View.Counts()[dupengine.StateFailed]).Should(Equal(2))
	g.Expect(result.View.Counts()[dupengine.StateCompleted]).Should(Equal(1))
	g.Expect(source.OpenHandles()).Should(BeZero())
	g.Expect(dest.OpenHandles()).Should(BeZero())
}

func TestRun_ProgressNeverMovesBackwards(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := filesystem.NewMockFileSystem()
	mock.AddFile(sourcePath, patternBytes(300*dupengine.BlockSize), 0o644)
	mock.InjectFault("/usb2/disk.img", filesystem.Fault{Write: syscall.EIO, FailAfter: 100 * dupengine.BlockSize})

	_, emitter := runCopies(t, taskSet(mock, sourcePath, mock, "/usb1/disk.img", "/usb2/disk.img", "/usb3/disk.img"))

	snapshots := emitter.snapshots()
	g.Expect(snapshots).ShouldNot(BeEmpty())

	for i := 1; i < len(snapshots); i++ {
		for d := range snapshots[i] {
			previous, current := snapshots[i-1][d], snapshots[i][d]

			g.Expect(current.Percent).Should(BeNumerically(">=", previous.Percent))
			g.Expect(stateRank(current.State)).Should(BeNumerically(">=", stateRank(previous.State)))

			if previous.State.IsTerminal() {
				g.Expect(current.WorkerStatus).Should(Equal(previous.WorkerStatus))
			}

			if current.State == dupengine.StateRunning {
				g.Expect(current.Percent).Should(BeNumerically("<=", 99))
			}
		}
	}

	final := snapshots[len(snapshots)-1]
	g.Expect(final.IsDone()).Should(BeTrue())
}

func TestRun_OtherDestinationsFinishWhileOneIsStalled(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	gate := make(chan struct{})

	mock := filesystem.NewMockFileSystem()
	mock.AddFile(sourcePath, patternBytes(20*dupengine.BlockSize), 0o644)
	mock.InjectFault("/slow/disk.img", filesystem.Fault{Gate: gate})

	registry, err := dupengine.NewWorkerRegistry(
		taskSet(mock, sourcePath, mock, "/slow/disk.img", "/fast/disk.img"), nil)
	g.Expect(err).ShouldNot(HaveOccurred())

	coordinator := dupengine.NewCoordinator(registry, nil)
	done := make(chan *dupengine.Result, 1)

	go func() {
		done <- coordinator.Run()
	}()

	g.Eventually(func() []dupengine.WorkerState {
		view := registry.Snapshot()

		return []dupengine.WorkerState{view[0].State, view[1].State}
	}).Should(Equal([]dupengine.WorkerState{dupengine.StateRunning, dupengine.StateCompleted}))

	g.Consistently(done, 50*time.Millisecond).ShouldNot(Receive())

	close(gate)

	var result *dupengine.Result
	g.Eventually(done, 5*time.Second).Should(Receive(&result))
	g.Expect(result.HasError).Should(BeFalse())
	g.Expect(result.View.Counts()[dupengine.StateCompleted]).Should(Equal(2))
}

func TestRun_FlushesEachFilesystemOnce(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	source := filesystem.NewMockFileSystem()
	source.AddFile(sourcePath, patternBytes(1000), 0o644)

	first := filesystem.NewMockFileSystem()
	first.InjectFault("/usb2/disk.img", filesystem.Fault{Open: syscall.EACCES})

	second := filesystem.NewMockFileSystem()

	tasks := append(taskSet(source, sourcePath, first, "/usb1/disk.img", "/usb2/disk.img", "/usb3/disk.img"),
		taskSet(source, sourcePath, second, "/nas/disk.img")...)

	result, emitter := runCopies(t, tasks)

	g.Expect(first.Flushes()).Should(Equal([][]string{{"/usb1/disk.img", "/usb3/disk.img"}}))
	g.Expect(second.Flushes()).Should(Equal([][]string{{"/nas/disk.img"}}))
	g.Expect(source.Flushes()).Should(BeEmpty())
	g.Expect(emitter.count(dupengine.FlushStarted{Filesystems: 2})).Should(Equal(1))
	g.Expect(result.FlushErr).ShouldNot(HaveOccurred())
}

func TestRun_NoFlushWhenNothingWasWritten(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := filesystem.NewMockFileSystem()

	result, _ := runCopies(t, taskSet(mock, sourcePath, mock, "/usb1/disk.img"))

	g.Expect(result.HasError).Should(BeTrue())
	g.Expect(mock.Flushes()).Should(BeEmpty())
}

func TestRun_FlushErrorIsReported(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := filesystem.NewMockFileSystem()
	mock.AddFile(sourcePath, patternBytes(1000), 0o644)
	mock.SetFlushError(syscall.EIO)

	result, _ := runCopies(t, taskSet(mock, sourcePath, mock, "/usb1/disk.img"))

	g.Expect(result.View[0].State).Should(Equal(dupengine.StateCompleted))
	g.Expect(result.HasError).Should(BeTrue())
	g.Expect(errors.Is(result.FlushErr, syscall.EIO)).Should(BeTrue())
}

func TestRun_DuplicateDestinationsEachGetAWorker(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	content := patternBytes(8 * dupengine.BlockSize)

	mock := filesystem.NewMockFileSystem()
	mock.AddFile(sourcePath, content, 0o644)

	result, _ := runCopies(t, taskSet(mock, sourcePath, mock, "/usb1/disk.img", "/usb1/disk.img"))

	g.Expect(result.View).Should(HaveLen(2))
	g.Expect(result.View.Counts()[dupengine.StateCompleted]).Should(Equal(2))

	data, _, err := mock.GetFile("/usb1/disk.img")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(bytes.Equal(data, content)).Should(BeTrue())
}

func TestRun_EmitsLifecycleInOrder(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := filesystem.NewMockFileSystem()
	mock.AddFile(sourcePath, patternBytes(1000), 0o644)

	result, emitter := runCopies(t, taskSet(mock, sourcePath, mock, "/usb1/disk.img"))

	events := emitter.all()
	g.Expect(len(events)).Should(BeNumerically(">=", 5))
	g.Expect(events[0]).Should(Equal(dupengine.RunStarted{
		Source:       sourcePath,
		Destinations: []string{"/usb1/disk.img"},
	}))
	g.Expect(events[1]).Should(BeAssignableToTypeOf(dupengine.Snapshot{}))
	g.Expect(events[len(events)-3]).Should(BeAssignableToTypeOf(dupengine.FlushStarted{}))
	g.Expect(events[len(events)-2]).Should(Equal(dupengine.FlushComplete{}))
	g.Expect(events[len(events)-1]).Should(Equal(dupengine.RunComplete{Result: result}))
}

func TestCoordinator_NilEmitterIsValid(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := filesystem.NewMockFileSystem()
	mock.AddFile(sourcePath, patternBytes(10), 0o644)

	registry, err := dupengine.NewWorkerRegistry(taskSet(mock, sourcePath, mock, "/usb1/disk.img"), nil)
	g.Expect(err).ShouldNot(HaveOccurred())

	coordinator := dupengine.NewCoordinator(registry, nil)
	g.Expect(coordinator.GetEventEmitter()).Should(BeNil())
	g.Expect(coordinator.Run().HasError).Should(BeFalse())
}

// runCopies runs tasks to completion and returns the result with every emitted event.
func runCopies(t *testing.T, tasks []dupengine.CopyTask) (*dupengine.Result, *testEventEmitter) {
	t.Helper()

	registry, err := dupengine.NewWorkerRegistry(tasks, nil)
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}

	emitter := &testEventEmitter{}
	coordinator := dupengine.NewCoordinator(registry, nil)
	coordinator.SetEventEmitter(emitter)

	return coordinator.Run(), emitter
}

func taskSet(
	sourceFS filesystem.FileSystem, source string, destFS filesystem.FileSystem, destinations ...string,
) []dupengine.CopyTask {
	tasks := make([]dupengine.CopyTask, 0, len(destinations))

	for _, destination := range destinations {
		tasks = append(tasks, dupengine.CopyTask{
			Source:      source,
			Destination: destination,
			SourceFS:    sourceFS,
			SourcePath:  source,
			DestFS:      destFS,
			DestPath:    destination,
		})
	}

	return tasks
}

func patternBytes(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i*7 + i/251)
	}

	return data
}

func stateRank(state dupengine.WorkerState) int {
	switch state {
	case dupengine.StatePending:
		return 0
	case dupengine.StateRunning:
		return 1
	case dupengine.StateFailed, dupengine.StateCompleted:
		return 2
	default:
		return -1
	}
}

// testEventEmitter is a simple test double for capturing events.
type testEventEmitter struct {
	mu     sync.Mutex
	events []dupengine.Event
}

func (e *testEventEmitter) Emit(event dupengine.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.events = append(e.events, event)
}

func (e *testEventEmitter) all() []dupengine.Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]dupengine.Event(nil), e.events...)
}

func (e *testEventEmitter) count(want dupengine.Event) int {
	n := 0

	for _, event := range e.all() {
		if event == want {
			n++
		}
	}

	return n
}

func (e *testEventEmitter) snapshots() []dupengine.AggregateView {
	var views []dupengine.AggregateView

	for _, event := range e.all() {
		if snapshot, ok := event.(dupengine.Snapshot); ok {
			views = append(views, snapshot.View)
		}
	}

	return views
}
