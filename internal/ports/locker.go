package ports

import "context"

// Locker serializes runs against the same document.
type Locker interface {
	// Lock blocks until the lock is held or ctx is done.
	Lock(ctx context.Context) error

	// Unlock releases a held lock.
	Unlock() error
}
