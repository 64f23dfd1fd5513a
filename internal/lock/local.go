package lock

import (
	"context"
	"sync"
	"time"

	"github.com/congo-pay/accounts/internal/apperr"
)

type localEntry struct {
	slot chan struct{}
	refs int
}

// LocalLocker is an in-process mutex table keyed by string. Entries are
// dropped once no holder or waiter references them.
type LocalLocker struct {
	mu      sync.Mutex
	entries map[string]*localEntry
	wait    time.Duration
}

// NewLocalLocker builds a process-local locker whose Acquire waits at most wait.
// A non-positive wait relies on the caller's context alone.
func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{entries: make(map[string]*localEntry), wait: wait}
}

func (l *LocalLocker) Acquire(ctx context.Context, key string) (*Handle, error) {
	if l.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	e := l.ref(key)
	select {
	case e.slot <- struct{}{}:
		return &Handle{key: key}, nil
	case <-ctx.Done():
		l.unref(key)
		return nil, apperr.Wrap(apperr.LockUnavailable, ctx.Err())
	}
}

func (l *LocalLocker) Release(_ context.Context, h *Handle) error {
	if h == nil || !h.markReleased() {
		return nil
	}

	l.mu.Lock()
	e, ok := l.entries[h.key]
	l.mu.Unlock()
	if !ok {
		return nil
	}

	<-e.slot
	l.unref(h.key)
	return nil
}

func (l *LocalLocker) ref(key string) *localEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[key]
	if !ok {
		e = &localEntry{slot: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *LocalLocker) unref(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}
