package lock

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	keyPrefix     = "autoservice:lock:"
	retryInterval = 25 * time.Millisecond
)

// unlockScript deletes the key only while it still holds our token, so an
// expired lease taken over by another process is left alone.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker shares locks between processes through SET NX with a lease.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	log    *zap.Logger
}

var _ Locker = (*RedisLocker)(nil)

func NewRedisLocker(client *redis.Client, ttl, wait time.Duration, log *zap.Logger) *RedisLocker {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisLocker{client: client, ttl: ttl, wait: wait, log: log}
}

func (l *RedisLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	token := uuid.NewString()
	full := keyPrefix + key

	if err := l.obtain(ctx, full, token); err != nil {
		if errors.Is(err, errNotObtained) {
			return errBusy(key)
		}
		return err
	}

	defer func() {
		// a cancelled request context must not leave the key held until the lease expires
		if err := unlockScript.Run(context.Background(), l.client, []string{full}, token).Err(); err != nil {
			l.log.Warn("redis unlock failed", zap.String("key", full), zap.Error(err))
		}
	}()

	return fn(ctx)
}

var errNotObtained = errors.New("lock not obtained")

func (l *RedisLocker) obtain(ctx context.Context, key, token string) error {
	deadline := time.Now().Add(l.wait)
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if !time.Now().Before(deadline) {
			return errNotObtained
		}

		t := time.NewTimer(retryInterval)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}
