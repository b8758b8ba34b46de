package domain

import (
	"errors"
	"fmt"
	"os"
)

// Domain errors represent error conditions in the envclean domain.
// These errors can be checked with errors.Is.
var (
	// ErrNeedsNormalization is returned in check mode when the document
	// would change.
	ErrNeedsNormalization = errors.New("envclean: file needs normalization")

	// ErrLockTimeout is returned when the advisory lock could not be acquired
	// in time.
	ErrLockTimeout = errors.New("envclean: lock timeout")
)

// Error codes for file access failures.
const (
	ErrCodeFileNotFound     = "FILE_NOT_FOUND"
	ErrCodePermissionDenied = "PERMISSION_DENIED"
	ErrCodeReadError        = "READ_ERROR"
	ErrCodeWriteError       = "WRITE_ERROR"
)

// File operations reported by FileAccessError.
const (
	OpRead  = "read"
	OpWrite = "write"
)

// FileAccessError reports a failure to read or write the document.
type FileAccessError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// Code classifies the underlying error.
func (e *FileAccessError) Code() string {
	switch {
	case errors.Is(e.Err, os.ErrNotExist):
		return ErrCodeFileNotFound
	case errors.Is(e.Err, os.ErrPermission):
		return ErrCodePermissionDenied
	case e.Op == OpWrite:
		return ErrCodeWriteError
	default:
		return ErrCodeReadError
	}
}

// NewFileAccessError wraps err, or returns nil when err is nil.
func NewFileAccessError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &FileAccessError{Op: op, Path: path, Err: err}
}

// IsFileAccess reports whether err is, or wraps, a FileAccessError.
func IsFileAccess(err error) bool {
	var fae *FileAccessError
	return errors.As(err, &fae)
}
