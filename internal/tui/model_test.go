package tui

import (
	"errors"
	"os"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/joe/multidup/internal/dupengine"
	"github.com/joe/multidup/internal/tui/shared"
)

var _ = Describe("Model", func() {
	var (
		bridge *shared.EventBridge
		model  Model
	)

	destinations := []string{"/media/usb1/disk.img", "/media/usb2/disk.img"}

	BeforeEach(func() {
		bridge = shared.NewEventBridge()
		model = NewModel("/images/disk.img", destinations, bridge)
	})

	AfterEach(func() {
		bridge.Close()
	})

	update := func(msg tea.Msg) (Model, tea.Cmd) {
		next, cmd := model.Update(msg)

		return next.(Model), cmd
	}

	Describe("before any event", func() {
		It("lists every destination as pending", func() {
			view := model.View()

			Expect(view).To(ContainSubstring("/media/usb1/disk.img"))
			Expect(view).To(ContainSubstring("/media/usb2/disk.img"))
			Expect(view).To(ContainSubstring("pending"))
		})

		It("starts listening for engine events", func() {
			Expect(model.Init()).NotTo(BeNil())
		})
	})

	Describe("engine events", func() {
		It("shows the latest snapshot and keeps listening", func() {
			next, cmd := update(shared.EngineEventMsg{Event: dupengine.Snapshot{View: dupengine.AggregateView{
				running(0, destinations[0], 42),
				running(1, destinations[1], 7),
			}}})

			Expect(cmd).NotTo(BeNil())
			Expect(next.View()).To(ContainSubstring(" 42%"))
			Expect(next.View()).To(ContainSubstring("  7%"))
			Expect(next.View()).To(ContainSubstring("2 running"))
		})

		It("shows the flush phase", func() {
			next, _ := update(shared.EngineEventMsg{Event: dupengine.FlushStarted{Filesystems: 1}})

			Expect(next.View()).To(ContainSubstring("flushing"))

			next, _ = next.Update(shared.EngineEventMsg{Event: dupengine.FlushComplete{}})
			Expect(next.(Model).View()).NotTo(ContainSubstring("flushing"))
		})

		It("quits with a summary when the run completes", func() {
			result := &dupengine.Result{
				View: dupengine.AggregateView{
					completed(0, destinations[0]),
					failed(1, destinations[1], syscall.ENOSPC),
				},
				HasError: true,
				Elapsed:  3 * time.Second,
			}

			next, cmd := update(shared.EngineEventMsg{Event: dupengine.RunComplete{Result: result}})

			Expect(cmd).NotTo(BeNil())
			Expect(cmd()).To(Equal(tea.Quit()))
			Expect(next.Done()).To(BeTrue())
			Expect(next.Detached()).To(BeFalse())

			view := next.View()
			Expect(view).To(ContainSubstring("1 of 2 copies completed, 1 failed (3s)"))
			Expect(view).To(ContainSubstring("no space left on device"))
			Expect(view).To(ContainSubstring("df -h"))
		})

		It("reports a flush failure in the summary", func() {
			result := &dupengine.Result{
				View:     dupengine.AggregateView{completed(0, destinations[0]), completed(1, destinations[1])},
				HasError: true,
				FlushErr: errors.New("fsync failed"),
			}

			next, _ := update(shared.EngineEventMsg{Event: dupengine.RunComplete{Result: result}})

			Expect(next.View()).To(ContainSubstring("flush failed: fsync failed"))
		})
	})

	Describe("ctrl+c", func() {
		It("detaches while copies are running", func() {
			next, cmd := update(tea.KeyMsg{Type: tea.KeyCtrlC})

			Expect(next.Detached()).To(BeTrue())
			Expect(cmd()).To(Equal(tea.Quit()))
		})

		It("is not a detach once the run is complete", func() {
			done, _ := update(shared.EngineEventMsg{Event: dupengine.RunComplete{Result: &dupengine.Result{
				View: dupengine.AggregateView{completed(0, destinations[0]), completed(1, destinations[1])},
			}}})

			next, _ := done.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
			Expect(next.(Model).Detached()).To(BeFalse())
		})

		It("ignores other keys", func() {
			next, cmd := update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

			Expect(next.Detached()).To(BeFalse())
			Expect(cmd).To(BeNil())
		})
	})

	Describe("window size", func() {
		It("fits the bar to the terminal", func() {
			next, _ := update(tea.WindowSizeMsg{Width: 100, Height: 30})

			Expect(next.bar.Width).To(Equal(shared.BarWidth(100)))
		})

		It("truncates long destinations on narrow terminals", func() {
			long := "/media/very/long/mount/point/for/a/usb/stick/disk.img"
			model = NewModel("/images/disk.img", []string{long}, bridge)

			next, _ := update(tea.WindowSizeMsg{Width: 60, Height: 30})

			Expect(next.View()).NotTo(ContainSubstring(long))
			Expect(next.View()).To(ContainSubstring("disk.img"))
		})
	})
})

func running(index int, destination string, percent int) dupengine.DestinationStatus {
	return dupengine.DestinationStatus{
		Index:       index,
		Destination: destination,
		WorkerStatus: dupengine.WorkerStatus{
			State:        dupengine.StateRunning,
			Percent:      percent,
			BytesWritten: int64(percent) * 1024,
			TotalBytes:   100 * 1024,
		},
	}
}

func completed(index int, destination string) dupengine.DestinationStatus {
	return dupengine.DestinationStatus{
		Index:       index,
		Destination: destination,
		WorkerStatus: dupengine.WorkerStatus{
			State:        dupengine.StateCompleted,
			Percent:      100,
			BytesWritten: 100 * 1024,
			TotalBytes:   100 * 1024,
		},
	}
}

func failed(index int, destination string, errno syscall.Errno) dupengine.DestinationStatus {
	return dupengine.DestinationStatus{
		Index:       index,
		Destination: destination,
		WorkerStatus: dupengine.WorkerStatus{
			State: dupengine.StateFailed,
			Err: &dupengine.WorkerError{
				Kind:  dupengine.IOError,
				Path:  destination,
				Errno: errno,
				Err:   &os.PathError{Op: "write", Path: destination, Err: errno},
			},
		},
	}
}
