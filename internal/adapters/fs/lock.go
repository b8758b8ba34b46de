package fs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"

	"github.com/bft-labs/envclean/internal/domain"
)

const lockRetryDelay = 50 * time.Millisecond

// FileLock implements ports.Locker with an advisory flock on "<path>.lock".
// The lock file is left in place after Unlock.
type FileLock struct {
	flock   *flock.Flock
	timeout time.Duration
}

// NewFileLock creates a lock guarding the document at path. A timeout <= 0
// waits until the context is done.
func NewFileLock(path string, timeout time.Duration) *FileLock {
	return &FileLock{
		flock:   flock.New(LockPath(path)),
		timeout: timeout,
	}
}

// LockPath returns the lock file used for the document at path.
func LockPath(path string) string {
	return path + ".lock"
}

// Lock blocks until the lock is held, the timeout elapses or ctx is done.
func (l *FileLock) Lock(ctx context.Context) error {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	locked, err := l.flock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", domain.ErrLockTimeout, l.flock.Path())
		}
		return fmt.Errorf("lock %s: %w", l.flock.Path(), err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", domain.ErrLockTimeout, l.flock.Path())
	}
	return nil
}

// Unlock releases the lock. It is safe to call when the lock is not held.
func (l *FileLock) Unlock() error {
	if !l.flock.Locked() {
		return nil
	}
	return l.flock.Unlock()
}
