package dupengine

import (
	"errors"
	"fmt"
	"syscall"
)

// ErrNoDestinations is returned when a run is planned with nothing to copy to.
var ErrNoDestinations = errors.New("at least one destination is required")

// ErrorKind says which step of a copy failed.
type ErrorKind int

// Error kinds.
const (
	// OpenError means the source or destination could not be opened.
	OpenError ErrorKind = iota + 1
	// StatError means the source size and permissions could not be read.
	StatError
	// IOError means a read, write or close failed mid-copy.
	IOError
)

// String returns the kind name used in error messages.
func (k ErrorKind) String() string {
	switch k {
	case OpenError:
		return "open error"
	case StatError:
		return "stat error"
	case IOError:
		return "i/o error"
	default:
		return "unknown error"
	}
}

// WorkerError records why a destination failed. It is immutable once attached to a status.
type WorkerError struct {
	Kind ErrorKind
	// Path is the path that failed, source or destination as given by the user.
	Path string
	// Errno is the OS error number when one is available, zero otherwise.
	Errno syscall.Errno
	Err   error
}

func newWorkerError(kind ErrorKind, path string, err error) *WorkerError {
	workerErr := &WorkerError{Kind: kind, Path: path, Err: err}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		workerErr.Errno = errno
	}

	return workerErr
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Message is the human-readable cause without the kind prefix.
func (e *WorkerError) Message() string {
	if e.Err == nil {
		return e.Kind.String()
	}

	return e.Err.Error()
}

func (e *WorkerError) Unwrap() error {
	return e.Err
}
