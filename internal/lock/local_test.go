package lock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
)

func TestLocalLocker_SerialisesSameKey(t *testing.T) {
	l := NewLocalLocker(0)

	var active, maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.WithLock(context.Background(), ScheduleKey("2025-05-10"), func(ctx context.Context) error {
				n := atomic.AddInt32(&active, 1)
				for {
					m := atomic.LoadInt32(&maxActive)
					if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive)
	assert.Empty(t, l.keys)
}

func TestLocalLocker_DifferentKeysDoNotBlock(t *testing.T) {
	l := NewLocalLocker(50 * time.Millisecond)

	err := l.WithLock(context.Background(), "a", func(ctx context.Context) error {
		return l.WithLock(ctx, "b", func(context.Context) error { return nil })
	})
	require.NoError(t, err)
}

func TestLocalLocker_BusyAfterWait(t *testing.T) {
	l := NewLocalLocker(20 * time.Millisecond)

	err := l.WithLock(context.Background(), "a", func(ctx context.Context) error {
		return l.WithLock(ctx, "a", func(context.Context) error { return nil })
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.KindLockBusy))
}

func TestLocalLocker_ContextCancelled(t *testing.T) {
	l := NewLocalLocker(0)

	err := l.WithLock(context.Background(), "a", func(context.Context) error {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return l.WithLock(ctx, "a", func(context.Context) error { return nil })
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalLocker_PropagatesError(t *testing.T) {
	l := NewLocalLocker(0)
	boom := errors.New("boom")

	err := l.WithLock(context.Background(), "a", func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)

	// released after an error
	err = l.WithLock(context.Background(), "a", func(context.Context) error { return nil })
	assert.NoError(t, err)
}
