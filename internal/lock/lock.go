// Package lock serializes attempt starts for the same (test, user) pair.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MaxKochergin/NNGP-sub002/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

// ErrNotAcquired is returned when the lock could not be taken before the context ended.
var ErrNotAcquired = errors.New("lock not acquired")

const retryInterval = 25 * time.Millisecond

// Locker hands out short-lived exclusive locks by key.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

// AttemptStartKey is the lock key guarding attempt creation.
func AttemptStartKey(testID, userID uint) string {
	return fmt.Sprintf("attempt-start:%d:%d", testID, userID)
}

// NewLocker picks the Redis locker when REDIS_ADDR is configured and the in-process one otherwise.
func NewLocker(lc fx.Lifecycle, cfg *config.Config) (Locker, error) {
	if cfg.Redis.Addr == "" {
		log.Warn().Msg("REDIS_ADDR is not set. Attempt start locks are local to this instance.")
		return NewLocalLocker(), nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("could not connect to redis: %w", err)
			}
			log.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return rdb.Close()
		},
	})
	return NewRedisLocker(rdb), nil
}

type redisLocker struct {
	rdb *redis.Client
}

func NewRedisLocker(rdb *redis.Client) Locker {
	return &redisLocker{rdb: rdb}
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
else
    return 0
end
`)

func (l *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	value := uuid.NewString()
	for {
		ok, err := l.rdb.SetNX(ctx, key, value, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrNotAcquired, key)
		case <-time.After(retryInterval):
		}
	}

	release := func() {
		// Released with a fresh context so a cancelled request still frees the key.
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		deleted, err := releaseScript.Run(releaseCtx, l.rdb, []string{key}, value).Int64()
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("Failed to release lock")
		} else if deleted == 0 {
			log.Warn().Str("key", key).Msg("Lock expired before release")
		}
	}
	return release, nil
}

// localLocker is a keyed mutex for single-instance deployments and tests.
type localLocker struct {
	mu   sync.Mutex
	held map[string]chan struct{}
}

func NewLocalLocker() Locker {
	return &localLocker{held: make(map[string]chan struct{})}
}

func (l *localLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	for {
		l.mu.Lock()
		wait, busy := l.held[key]
		if !busy {
			done := make(chan struct{})
			l.held[key] = done
			l.mu.Unlock()

			var once sync.Once
			return func() {
				once.Do(func() {
					l.mu.Lock()
					delete(l.held, key)
					l.mu.Unlock()
					close(done)
				})
			}, nil
		}
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrNotAcquired, key)
		case <-wait:
		}
	}
}
