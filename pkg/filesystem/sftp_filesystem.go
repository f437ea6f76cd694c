package filesystem

import (
	"errors"
	"fmt"
	"os"

	"github.com/pkg/sftp"
)

// fsyncExtension is the OpenSSH extension that backs sftp.File.Sync.
const fsyncExtension = "fsync@openssh.com"

// SFTPFileSystem implements FileSystem on top of one SFTP client.
// The client is safe for concurrent use, so every worker writing to the same
// server shares it.
type SFTPFileSystem struct {
	client *sftp.Client
}

// NewSFTPFileSystem wraps an established SFTP client.
func NewSFTPFileSystem(client *sftp.Client) *SFTPFileSystem {
	return &SFTPFileSystem{client: client}
}

// Flush fsyncs each remote file when the server supports it. Servers without the
// fsync extension commit on close, so there is nothing more to ask for.
func (fs *SFTPFileSystem) Flush(paths []string) error {
	if _, ok := fs.client.HasExtension(fsyncExtension); !ok {
		return nil
	}

	var errs []error

	for _, path := range paths {
		err := fs.syncFile(path)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Open opens a remote file for reading.
func (fs *SFTPFileSystem) Open(path string) (File, error) {
	file, err := fs.client.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open remote file %s: %w", path, err)
	}

	return file, nil
}

// OpenFile opens a remote file with the given flags. When the file is created,
// its permissions are set to perm explicitly since SFTP servers apply their own
// defaults on create.
func (fs *SFTPFileSystem) OpenFile(path string, flag int, perm os.FileMode) (File, error) {
	file, err := fs.client.OpenFile(path, flag)
	if err != nil {
		return nil, fmt.Errorf("failed to open remote file %s: %w", path, err)
	}

	if flag&os.O_CREATE != 0 {
		err = file.Chmod(perm.Perm())
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("failed to set permissions on remote file %s: %w", path, err)
		}
	}

	return file, nil
}

// Stat returns file information for a remote file.
func (fs *SFTPFileSystem) Stat(path string) (os.FileInfo, error) {
	info, err := fs.client.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat remote file %s: %w", path, err)
	}

	return info, nil
}

func (fs *SFTPFileSystem) syncFile(path string) error {
	file, err := fs.client.OpenFile(path, os.O_WRONLY)
	if err != nil {
		return fmt.Errorf("failed to open remote file %s for flush: %w", path, err)
	}

	defer func() {
		_ = file.Close()
	}()

	err = file.Sync()
	if err != nil {
		return fmt.Errorf("failed to flush remote file %s: %w", path, err)
	}

	return nil
}
