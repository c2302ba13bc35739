package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	lockKeyPrefix = "lock:"

	defaultTTL         = 5 * time.Second
	defaultWaitTimeout = 3 * time.Second
	defaultRetryDelay  = 10 * time.Millisecond
)

// releaseScript deletes the lock only if the caller still owns it
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`)

// Config holds configuration for the Redis locker
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// TTL is the default lock lifetime
	TTL time.Duration

	// WaitTimeout is the default time Acquire keeps retrying
	WaitTimeout time.Duration

	// RetryDelay is the pause between attempts
	RetryDelay time.Duration
}

// redisLocker implements Locker with SET NX PX and a compare-and-delete release
type redisLocker struct {
	client      *redis.Client
	ttl         time.Duration
	waitTimeout time.Duration
	retryDelay  time.Duration
}

// NewRedis creates a new Redis-backed locker
func NewRedis(cfg *Config) (*redisLocker, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	l := &redisLocker{
		client:      cfg.RedisClient,
		ttl:         cfg.TTL,
		waitTimeout: cfg.WaitTimeout,
		retryDelay:  cfg.RetryDelay,
	}

	if l.ttl <= 0 {
		l.ttl = defaultTTL
	}
	if l.waitTimeout <= 0 {
		l.waitTimeout = defaultWaitTimeout
	}
	if l.retryDelay <= 0 {
		l.retryDelay = defaultRetryDelay
	}

	return l, nil
}

// Acquire takes the lock, retrying until the wait timeout
func (l *redisLocker) Acquire(ctx context.Context, input *AcquireInput) (*AcquireOutput, error) {
	if input == nil || input.Key == "" {
		return nil, errors.New("input and key cannot be empty")
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = l.ttl
	}

	wait := input.WaitTimeout
	if wait <= 0 {
		wait = l.waitTimeout
	}

	key := lockKeyPrefix + input.Key
	token := uuid.New().String()
	deadline := time.Now().Add(wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", input.Key, err)
		}

		if ok {
			return &AcquireOutput{Token: token}, nil
		}

		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryDelay):
		}
	}
}

// Release frees the lock held by the token
func (l *redisLocker) Release(ctx context.Context, input *ReleaseInput) error {
	if input == nil || input.Key == "" || input.Token == "" {
		return errors.New("input, key and token cannot be empty")
	}

	n, err := releaseScript.Run(ctx, l.client, []string{lockKeyPrefix + input.Key}, input.Token).Int64()
	if err != nil {
		return fmt.Errorf("failed to release lock %s: %w", input.Key, err)
	}

	if n == 0 {
		return ErrLockNotHeld
	}

	return nil
}
