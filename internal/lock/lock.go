package lock

import (
	"context"
	"sync/atomic"
	"time"
)

// releaseTimeout bounds the release call made after the guarded work returns.
const releaseTimeout = 2 * time.Second

// Locker grants one exclusive holder per key. Acquire blocks until the key is
// free or the backend's wait bound elapses, in which case it fails with
// apperr.LockUnavailable. Release is idempotent.
type Locker interface {
	Acquire(ctx context.Context, key string) (*Handle, error)
	Release(ctx context.Context, h *Handle) error
}

// Handle represents ownership of a key.
type Handle struct {
	key      string
	token    string
	released atomic.Bool
}

// Key returns the locked key.
func (h *Handle) Key() string { return h.key }

// markReleased reports true only for the first caller.
func (h *Handle) markReleased() bool {
	return h.released.CompareAndSwap(false, true)
}

// Do runs fn while holding the lock for key. The lock is released on every
// exit path of fn, including panics, and fn's result and error are returned
// unchanged. Release uses a context detached from ctx so a cancelled caller
// cannot leave the key held.
func Do[T any](ctx context.Context, l Locker, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	h, err := l.Acquire(ctx, key)
	if err != nil {
		var zero T
		return zero, err
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()
		_ = l.Release(releaseCtx, h) // backends log their own release failures
	}()

	return fn(ctx)
}
