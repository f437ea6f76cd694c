//go:build !unix

package filesystem

import (
	"errors"
	"fmt"
	"os"
)

// flushLocal fsyncs each file individually where no global sync call exists.
func flushLocal(paths []string) error {
	var errs []error

	for _, path := range paths {
		file, err := os.OpenFile(path, os.O_WRONLY, 0) // #nosec G304 - file path is controlled by caller
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to open %s for flush: %w", path, err))
			continue
		}

		err = file.Sync()
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to flush %s: %w", path, err))
		}

		_ = file.Close()
	}

	return errors.Join(errs...)
}
