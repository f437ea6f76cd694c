package errors

import (
	"errors"
	"strings"
	"syscall"
)

// Matcher maps an error to a category.
type Matcher interface {
	Match(err error) ErrorCategory
}

// NewMatcher creates a Matcher that checks the OS error number first and falls
// back to message patterns, which is what remote (SFTP) errors carry.
func NewMatcher() Matcher {
	return &matcher{
		errnos: map[syscall.Errno]ErrorCategory{
			syscall.EACCES:       CategoryPermission,
			syscall.EPERM:        CategoryPermission,
			syscall.EROFS:        CategoryPermission,
			syscall.ENOSPC:       CategoryDiskSpace,
			syscall.EDQUOT:       CategoryDiskSpace,
			syscall.EFBIG:        CategoryDiskSpace,
			syscall.ENOENT:       CategoryPath,
			syscall.ENOTDIR:      CategoryPath,
			syscall.EISDIR:       CategoryPath,
			syscall.ENAMETOOLONG: CategoryPath,
			syscall.EIO:          CategoryCopy,
			syscall.ECONNREFUSED: CategoryNetwork,
			syscall.ECONNRESET:   CategoryNetwork,
			syscall.ETIMEDOUT:    CategoryNetwork,
		},
		patterns: []categoryPatterns{
			{CategoryPermission, []string{"permission denied", "access denied", "operation not permitted", "read-only file system"}},
			{CategoryDiskSpace, []string{"no space left on device", "disk full", "quota exceeded", "file too large"}},
			{CategoryPath, []string{"no such file or directory", "file does not exist", "not a directory", "is a directory"}},
			{CategoryNetwork, []string{"connection refused", "connection reset", "ssh connection failed", "no route to host", "i/o timeout"}},
			{CategoryCopy, []string{"short write", "input/output error", "i/o error", "unexpected eof"}},
		},
	}
}

// categoryPatterns pairs a category with the message fragments that identify it.
// Patterns are checked in order so overlapping messages resolve predictably.
type categoryPatterns struct {
	category ErrorCategory
	patterns []string
}

type matcher struct {
	errnos   map[syscall.Errno]ErrorCategory
	patterns []categoryPatterns
}

// Match returns the category for err, or CategoryUnknown.
func (m *matcher) Match(err error) ErrorCategory {
	if err == nil {
		return CategoryUnknown
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if category, ok := m.errnos[errno]; ok {
			return category
		}
	}

	return m.matchMessage(err.Error())
}

// matchMessage returns the category whose patterns appear in msg.
func (m *matcher) matchMessage(msg string) ErrorCategory {
	lowerMsg := strings.ToLower(msg)

	for _, group := range m.patterns {
		for _, pattern := range group.patterns {
			if strings.Contains(lowerMsg, pattern) {
				return group.category
			}
		}
	}

	return CategoryUnknown
}
