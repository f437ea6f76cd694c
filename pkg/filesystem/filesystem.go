// Package filesystem provides an abstraction layer over the storage a copy reads from
// and writes to, so local disks and SFTP servers can be driven by the same workers.
package filesystem

import (
	"fmt"
	"io"
	"os"
)

// File is an interface that abstracts file operations.
// This allows us to work with both real files and mock files.
type File interface {
	io.Reader
	io.Writer
	io.Closer
	Stat() (os.FileInfo, error)
}

// FileSystem is an interface that abstracts filesystem operations.
type FileSystem interface {
	// Open opens a file for reading.
	Open(path string) (File, error)
	// OpenFile opens a file with the given flags, creating it with perm when
	// os.O_CREATE is set.
	OpenFile(path string, flag int, perm os.FileMode) (File, error)
	Stat(path string) (os.FileInfo, error)
	// Flush asks the backing storage to commit the given files to stable storage.
	// It is called once per filesystem after every writer has finished.
	Flush(paths []string) error
}

// RealFileSystem implements FileSystem using the local disk.
type RealFileSystem struct{}

// NewRealFileSystem creates a new RealFileSystem instance.
func NewRealFileSystem() *RealFileSystem {
	return &RealFileSystem{}
}

// Flush commits written data to disk.
func (fs *RealFileSystem) Flush(paths []string) error {
	err := flushLocal(paths)
	if err != nil {
		return fmt.Errorf("failed to flush local storage: %w", err)
	}

	return nil
}

// Open opens a file for reading.
func (fs *RealFileSystem) Open(path string) (File, error) {
	file, err := os.Open(path) // #nosec G304 - file path is controlled by caller
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	return file, nil
}

// OpenFile opens or creates a file with the given flags. With os.O_CREATE the file
// ends up with exactly perm, whatever the umask or the mode of an existing file.
func (fs *RealFileSystem) OpenFile(path string, flag int, perm os.FileMode) (File, error) {
	file, err := os.OpenFile(path, flag, perm) // #nosec G304 - file path is controlled by caller
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	if flag&os.O_CREATE == 0 {
		return file, nil
	}

	err = setPerm(file, perm.Perm())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}

	return file, nil
}

// setPerm changes the mode of an open file only when it differs from perm.
func setPerm(file *os.File, perm os.FileMode) error {
	info, err := file.Stat()
	if err != nil {
		return err //nolint:wrapcheck // Caller adds path context
	}

	if info.Mode().Perm() == perm {
		return nil
	}

	return file.Chmod(perm) //nolint:wrapcheck // Caller adds path context
}

// Stat returns file information.
func (fs *RealFileSystem) Stat(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return info, nil
}
