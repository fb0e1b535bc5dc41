package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
)

func newRedisLocker(t *testing.T, wait time.Duration) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLocker(client, 5*time.Second, wait, nil), mr
}

func TestRedisLocker_AcquireAndRelease(t *testing.T) {
	l, mr := newRedisLocker(t, 50*time.Millisecond)

	err := l.WithLock(context.Background(), "schedule:2025-05-10", func(context.Context) error {
		assert.True(t, mr.Exists(keyPrefix+"schedule:2025-05-10"))
		return nil
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists(keyPrefix+"schedule:2025-05-10"))
}

func TestRedisLocker_BusyWhenHeldElsewhere(t *testing.T) {
	l, mr := newRedisLocker(t, 60*time.Millisecond)
	require.NoError(t, mr.Set(keyPrefix+"appointment:1", "other-process"))

	called := false
	err := l.WithLock(context.Background(), AppointmentKey(1), func(context.Context) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.KindLockBusy))
	assert.False(t, called)

	// a foreign token is never released by us
	v, err := mr.Get(keyPrefix + "appointment:1")
	require.NoError(t, err)
	assert.Equal(t, "other-process", v)
}

func TestRedisLocker_WaitsForRelease(t *testing.T) {
	l, mr := newRedisLocker(t, time.Second)
	require.NoError(t, mr.Set(keyPrefix+"k", "other"))

	go func() {
		time.Sleep(50 * time.Millisecond)
		mr.Del(keyPrefix + "k")
	}()

	err := l.WithLock(context.Background(), "k", func(context.Context) error { return nil })
	assert.NoError(t, err)
}

func TestRedisLocker_LeaseHasTTL(t *testing.T) {
	l, mr := newRedisLocker(t, 0)

	err := l.WithLock(context.Background(), "k", func(context.Context) error {
		assert.Equal(t, 5*time.Second, mr.TTL(keyPrefix+"k"))
		return nil
	})
	require.NoError(t, err)
}
