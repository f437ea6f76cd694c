package errors_test

import (
	stderrors "errors"
	"fmt"
	"os"
	"syscall"
	"testing"

	"github.com/joe/multidup/pkg/errors"
)

func TestMatcher_MatchesByErrno(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		expected errors.ErrorCategory
	}{
		{
			name:     "access denied on create",
			err:      &os.PathError{Op: "open", Path: "/media/usb1/disk.img", Err: syscall.EACCES},
			expected: errors.CategoryPermission,
		},
		{
			name:     "read-only filesystem",
			err:      &os.PathError{Op: "open", Path: "/media/cdrom/disk.img", Err: syscall.EROFS},
			expected: errors.CategoryPermission,
		},
		{
			name:     "device full",
			err:      &os.PathError{Op: "write", Path: "/media/usb1/disk.img", Err: syscall.ENOSPC},
			expected: errors.CategoryDiskSpace,
		},
		{
			name:     "missing directory",
			err:      &os.PathError{Op: "open", Path: "/nope/disk.img", Err: syscall.ENOENT},
			expected: errors.CategoryPath,
		},
		{
			name:     "wrapped I/O error",
			err:      fmt.Errorf("copy: %w", &os.PathError{Op: "read", Path: "src", Err: syscall.EIO}),
			expected: errors.CategoryCopy,
		},
	}

	matcher := errors.NewMatcher()

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			category := matcher.Match(testCase.err)
			if category != testCase.expected {
				t.Errorf("expected category %q, got %q for error: %v",
					testCase.expected, category, testCase.err)
			}
		})
	}
}

func TestMatcher_FallsBackToMessage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		errorMsg string
		expected errors.ErrorCategory
	}{
		{"uppercase permission denied", "PERMISSION DENIED", errors.CategoryPermission},
		{"mixed case no space left", "No Space Left On Device", errors.CategoryDiskSpace},
		{"sftp missing file", "sftp: \"file does not exist\" (SSH_FX_NO_SUCH_FILE)", errors.CategoryPath},
		{"ssh dial failure", "SSH connection failed: dial tcp: connection refused", errors.CategoryNetwork},
		{"short write", "short write", errors.CategoryCopy},
		{"nothing recognizable", "something odd happened", errors.CategoryUnknown},
	}

	matcher := errors.NewMatcher()

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			category := matcher.Match(stderrors.New(testCase.errorMsg))
			if category != testCase.expected {
				t.Errorf("expected category %q, got %q for message: %q",
					testCase.expected, category, testCase.errorMsg)
			}
		})
	}
}

func TestMatcher_NilIsUnknown(t *testing.T) {
	t.Parallel()

	if got := errors.NewMatcher().Match(nil); got != errors.CategoryUnknown {
		t.Errorf("expected %q for nil error, got %q", errors.CategoryUnknown, got)
	}
}
