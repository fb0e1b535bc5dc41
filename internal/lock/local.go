package lock

import (
	"context"
	"sync"
	"time"
)

// LocalLocker is an in-process Locker. One buffered channel per key acts as
// the mutex so waiting can be abandoned on ctx or timeout.
type LocalLocker struct {
	mu   sync.Mutex
	keys map[string]*localEntry
	wait time.Duration
}

type localEntry struct {
	sem  chan struct{}
	refs int
}

var _ Locker = (*LocalLocker)(nil)

// NewLocalLocker returns a locker that gives up after wait; wait <= 0 waits
// until ctx is done.
func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{
		keys: make(map[string]*localEntry),
		wait: wait,
	}
}

func (l *LocalLocker) acquire(key string) *localEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.keys[key]
	if !ok {
		e = &localEntry{sem: make(chan struct{}, 1)}
		l.keys[key] = e
	}
	e.refs++
	return e
}

func (l *LocalLocker) release(key string, e *localEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.keys, key)
	}
}

func (l *LocalLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	e := l.acquire(key)
	defer l.release(key, e)

	var timeout <-chan time.Time
	if l.wait > 0 {
		t := time.NewTimer(l.wait)
		defer t.Stop()
		timeout = t.C
	}

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	case <-timeout:
		return errBusy(key)
	}
	defer func() { <-e.sem }()

	return fn(ctx)
}
