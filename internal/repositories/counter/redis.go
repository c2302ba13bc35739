package counter

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Config holds configuration for the Redis counter repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Prefix namespaces every key
	Prefix string
}

// redisRepository implements the Repository interface over sorted sets
type redisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a new Redis-backed counter repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
		prefix: cfg.Prefix,
	}, nil
}

func (r *redisRepository) key(k string) string {
	return r.prefix + k
}

// Increment bumps a member with ZINCRBY
func (r *redisRepository) Increment(ctx context.Context, input *IncrementInput) (int64, error) {
	if input == nil || input.Key == "" || input.Member == "" {
		return 0, errors.New("input, key and member cannot be empty")
	}

	key := r.key(input.Key)

	pipe := r.client.TxPipeline()
	incr := pipe.ZIncrBy(ctx, key, float64(input.By), input.Member)
	if input.TTL > 0 {
		pipe.Expire(ctx, key, input.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to increment %s: %w", input.Key, err)
	}

	return int64(incr.Val()), nil
}

// Get reads a member's score
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (int64, error) {
	if input == nil || input.Key == "" || input.Member == "" {
		return 0, errors.New("input, key and member cannot be empty")
	}

	score, err := r.client.ZScore(ctx, r.key(input.Key), input.Member).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get %s: %w", input.Key, err)
	}

	return int64(score), nil
}

// Expire sets the key TTL
func (r *redisRepository) Expire(ctx context.Context, input *ExpireInput) error {
	if input == nil || input.Key == "" {
		return errors.New("input and key cannot be empty")
	}

	if err := r.client.Expire(ctx, r.key(input.Key), input.TTL).Err(); err != nil {
		return fmt.Errorf("failed to expire %s: %w", input.Key, err)
	}

	return nil
}

// Top reads the highest scores, a missing key yields no entries
func (r *redisRepository) Top(ctx context.Context, input *TopInput) (*TopOutput, error) {
	if input == nil || input.Key == "" {
		return nil, errors.New("input and key cannot be empty")
	}

	stop := int64(-1)
	if input.Limit > 0 {
		stop = int64(input.Limit) - 1
	}

	zs, err := r.client.ZRevRangeWithScores(ctx, r.key(input.Key), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read top of %s: %w", input.Key, err)
	}

	entries := make([]Entry, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Member: member, Score: int64(z.Score)})
	}

	return &TopOutput{Entries: entries}, nil
}
