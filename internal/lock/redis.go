package lock

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/congo-pay/accounts/internal/apperr"
)

const defaultKeyPrefix = "lock:account:"

// releaseScript deletes the key only while it still carries the caller's token,
// so an expired holder never removes a lock granted to someone else.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisOptions tunes the Redis lock backend.
type RedisOptions struct {
	Prefix        string
	Wait          time.Duration
	Lease         time.Duration
	RetryInterval time.Duration
}

// RedisLocker implements Locker with SET NX PX and a token-checked release,
// which serializes holders across process instances.
type RedisLocker struct {
	client *redis.Client
	opts   RedisOptions
	logger *slog.Logger
}

// NewRedisLocker builds a Redis-backed locker. Zero options fall back to a 1s
// wait, a 15s lease and a 50ms retry interval.
func NewRedisLocker(client *redis.Client, opts RedisOptions, logger *slog.Logger) *RedisLocker {
	if opts.Prefix == "" {
		opts.Prefix = defaultKeyPrefix
	}
	if opts.Wait <= 0 {
		opts.Wait = time.Second
	}
	if opts.Lease <= 0 {
		opts.Lease = 15 * time.Second
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = 50 * time.Millisecond
	}
	return &RedisLocker{client: client, opts: opts, logger: logger}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (*Handle, error) {
	ctx, cancel := context.WithTimeout(ctx, l.opts.Wait)
	defer cancel()

	token := uuid.NewString()
	redisKey := l.opts.Prefix + key

	ticker := time.NewTicker(l.opts.RetryInterval)
	defer ticker.Stop()

	var lastErr error
	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.opts.Lease).Result()
		switch {
		case err == nil && ok:
			return &Handle{key: key, token: token}, nil
		case err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled):
			lastErr = err
		}

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return nil, apperr.Wrap(apperr.LockUnavailable, lastErr)
			}
			return nil, apperr.Newf(apperr.LockUnavailable, "account %s is in use by another transaction", key)
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) Release(ctx context.Context, h *Handle) error {
	if h == nil || !h.markReleased() {
		return nil
	}

	deleted, err := releaseScript.Run(ctx, l.client, []string{l.opts.Prefix + h.key}, h.token).Int()
	if err != nil {
		if l.logger != nil {
			l.logger.Error("lock release failed", slog.String("key", h.key), slog.Any("error", err))
		}
		return err
	}
	if deleted == 0 && l.logger != nil {
		l.logger.Warn("lock already expired before release", slog.String("key", h.key))
	}
	return nil
}
