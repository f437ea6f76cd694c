package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Fault describes failures and timing the MockFileSystem injects for one path.
type Fault struct {
	Open  error // returned by Open and OpenFile
	Stat  error // returned by File.Stat on an open handle
	Read  error // returned by Read once FailAfter bytes have been read
	Write error // returned by Write once FailAfter bytes have been written
	Close error // returned by Close (the handle is still released)

	// FailAfter is the number of bytes transferred before Read or Write fails.
	FailAfter int64
	// MaxWrite caps how many bytes a single Write accepts, without an error.
	MaxWrite int
	// Gate, when set, blocks the first Read or Write until it is closed.
	Gate <-chan struct{}
}

// MockFileSystem is an in-memory filesystem implementation for testing.
// It records open handles and flush calls and can inject per-path faults.
type MockFileSystem struct {
	mu          sync.RWMutex
	files       map[string]*mockFile
	faults      map[string]Fault
	openHandles int
	flushes     [][]string
	flushErr    error
}

// mockFile represents a file in the mock filesystem.
type mockFile struct {
	data    []byte
	modTime time.Time
	perm    os.FileMode
}

// mockFileInfo implements os.FileInfo for mock files.
type mockFileInfo struct {
	name    string
	size    int64
	modTime time.Time
	perm    os.FileMode
}

func (fi *mockFileInfo) Name() string       { return fi.name }
func (fi *mockFileInfo) Size() int64        { return fi.size }
func (fi *mockFileInfo) Mode() os.FileMode  { return fi.perm }
func (fi *mockFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *mockFileInfo) IsDir() bool        { return false }
func (fi *mockFileInfo) Sys() interface{}   { return nil }

// mockFileHandle implements the File interface for reading/writing.
type mockFileHandle struct {
	fs       *MockFileSystem
	path     string
	fault    Fault
	writable bool
	offset   int64
	gated    bool
	closed   bool
}

// NewMockFileSystem creates a new in-memory filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:  make(map[string]*mockFile),
		faults: make(map[string]Fault),
	}
}

// Flush records the flush request.
func (fs *MockFileSystem) Flush(paths []string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.flushes = append(fs.flushes, append([]string(nil), paths...))

	return fs.flushErr
}

// Open opens a file for reading.
func (fs *MockFileSystem) Open(path string) (File, error) {
	return fs.OpenFile(path, os.O_RDONLY, 0)
}

// OpenFile opens a file, honoring os.O_CREATE and os.O_TRUNC. Like the real
// backends, a create always leaves the file with perm.
func (fs *MockFileSystem) OpenFile(path string, flag int, perm os.FileMode) (File, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fault := fs.faults[path]
	if fault.Open != nil {
		return nil, fault.Open
	}

	file, exists := fs.files[path]

	switch {
	case !exists && flag&os.O_CREATE == 0:
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	case !exists:
		file = &mockFile{modTime: time.Now(), perm: perm.Perm()}
		fs.files[path] = file
	case flag&os.O_CREATE != 0:
		file.perm = perm.Perm()
	}

	if flag&os.O_TRUNC != 0 {
		file.data = nil
	}

	fs.openHandles++

	return &mockFileHandle{
		fs:       fs,
		path:     path,
		fault:    fault,
		writable: flag&(os.O_WRONLY|os.O_RDWR) != 0,
	}, nil
}

// Stat returns file information.
func (fs *MockFileSystem) Stat(path string) (os.FileInfo, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	file, exists := fs.files[path]
	if !exists {
		return nil, &os.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
	}

	return file.info(path), nil
}

func (f *mockFile) info(path string) *mockFileInfo {
	return &mockFileInfo{
		name:    filepath.Base(path),
		size:    int64(len(f.data)),
		modTime: f.modTime,
		perm:    f.perm,
	}
}

func (f *mockFileHandle) Close() error {
	if f.closed {
		return os.ErrClosed
	}

	f.closed = true

	f.fs.mu.Lock()
	f.fs.openHandles--
	f.fs.mu.Unlock()

	return f.fault.Close
}

func (f *mockFileHandle) Read(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}

	f.waitGate()

	if f.fault.Read != nil && f.offset >= f.fault.FailAfter {
		return 0, f.fault.Read
	}

	f.fs.mu.RLock()
	defer f.fs.mu.RUnlock()

	data := f.fs.files[f.path].data
	if f.offset >= int64(len(data)) {
		return 0, io.EOF
	}

	n := copy(p, data[f.offset:])
	f.offset += int64(n)

	return n, nil
}

func (f *mockFileHandle) Stat() (os.FileInfo, error) {
	if f.closed {
		return nil, os.ErrClosed
	}

	if f.fault.Stat != nil {
		return nil, f.fault.Stat
	}

	return f.fs.Stat(f.path)
}

func (f *mockFileHandle) Write(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}

	if !f.writable {
		return 0, &os.PathError{Op: "write", Path: f.path, Err: os.ErrPermission}
	}

	f.waitGate()

	if f.fault.Write != nil && f.offset >= f.fault.FailAfter {
		return 0, f.fault.Write
	}

	chunk := p
	if f.fault.MaxWrite > 0 && len(chunk) > f.fault.MaxWrite {
		chunk = chunk[:f.fault.MaxWrite]
	}

	f.fs.mu.Lock()
	file := f.fs.files[f.path]

	end := f.offset + int64(len(chunk))
	if end > int64(len(file.data)) {
		file.data = append(file.data, make([]byte, end-int64(len(file.data)))...)
	}

	copy(file.data[f.offset:end], chunk)
	f.fs.mu.Unlock()

	f.offset += int64(len(chunk))

	return len(chunk), nil
}

func (f *mockFileHandle) waitGate() {
	if f.fault.Gate != nil && !f.gated {
		<-f.fault.Gate
		f.gated = true
	}
}

// Helper methods for testing

// AddFile adds a file to the mock filesystem with the given content and permissions.
func (fs *MockFileSystem) AddFile(path string, content []byte, perm os.FileMode) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.files[path] = &mockFile{
		data:    append([]byte(nil), content...),
		modTime: time.Now(),
		perm:    perm,
	}
}

// Exists checks if a path exists in the mock filesystem.
func (fs *MockFileSystem) Exists(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	_, exists := fs.files[path]

	return exists
}

// Flushes returns the path lists passed to Flush, in call order.
func (fs *MockFileSystem) Flushes() [][]string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return append([][]string(nil), fs.flushes...)
}

// GetFile retrieves a file's content and permissions from the mock filesystem.
func (fs *MockFileSystem) GetFile(path string) ([]byte, os.FileMode, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	file, exists := fs.files[path]
	if !exists {
		return nil, 0, fmt.Errorf("get %s: %w", path, os.ErrNotExist)
	}

	return append([]byte(nil), file.data...), file.perm, nil
}

// InjectFault registers a fault for path, replacing any earlier one.
func (fs *MockFileSystem) InjectFault(path string, fault Fault) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.faults[path] = fault
}

// ListFiles returns all file paths in the mock filesystem.
func (fs *MockFileSystem) ListFiles() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	paths := make([]string, 0, len(fs.files))
	for p := range fs.files {
		paths = append(paths, p)
	}

	sort.Strings(paths)

	return paths
}

// OpenHandles returns the number of handles opened and not yet closed.
func (fs *MockFileSystem) OpenHandles() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.openHandles
}

// SetFlushError makes every later Flush call return err.
func (fs *MockFileSystem) SetFlushError(err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.flushErr = err
}
