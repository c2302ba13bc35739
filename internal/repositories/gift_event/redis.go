package gift_event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/redis/go-redis/v9"
)

// ErrGiftNotFound is returned when a gift event is not found
var ErrGiftNotFound = errors.New("gift event not found")

// Config holds configuration for the Redis gift event repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed gift event repository
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
	}, nil
}

// GetGift retrieves a gift event by ID from Redis
func (r *redisRepository) GetGift(ctx context.Context, input *GetGiftInput) (*models.GiftEvent, error) {
	if input == nil || input.GiftID == "" {
		return nil, errors.New("input and gift ID cannot be empty")
	}

	eventJSON, err := r.client.Get(ctx, GiftKey(input.GiftID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrGiftNotFound
		}
		return nil, fmt.Errorf("failed to get gift event: %w", err)
	}

	var event models.GiftEvent
	if err := json.Unmarshal([]byte(eventJSON), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gift event: %w", err)
	}

	return &event, nil
}

// ListByStreams reads each stream's index for the window and loads the documents in one round trip.
// Events come back ordered by creation time.
func (r *redisRepository) ListByStreams(ctx context.Context, input *ListByStreamsInput) (*ListByStreamsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if len(input.StreamIDs) == 0 {
		return &ListByStreamsOutput{Events: []*models.GiftEvent{}}, nil
	}

	rangeBy := &redis.ZRangeBy{
		Min: strconv.FormatInt(input.From.UnixMilli(), 10),
		Max: strconv.FormatInt(input.To.UnixMilli(), 10),
	}
	if input.From.IsZero() {
		rangeBy.Min = "-inf"
	}
	if input.To.IsZero() {
		rangeBy.Max = "+inf"
	}

	pipe := r.client.Pipeline()
	idCmds := make([]*redis.StringSliceCmd, 0, len(input.StreamIDs))
	for _, streamID := range input.StreamIDs {
		idCmds = append(idCmds, pipe.ZRangeByScore(ctx, StreamIndexKey(streamID), rangeBy))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to read stream gift indexes: %w", err)
	}

	seen := make(map[string]bool)
	keys := make([]string, 0)
	for _, cmd := range idCmds {
		for _, id := range cmd.Val() {
			if seen[id] {
				continue
			}
			seen[id] = true
			keys = append(keys, GiftKey(id))
		}
	}

	if len(keys) == 0 {
		return &ListByStreamsOutput{Events: []*models.GiftEvent{}}, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load gift events: %w", err)
	}

	events := make([]*models.GiftEvent, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Indexed but missing document
			continue
		}

		var event models.GiftEvent
		if err := json.Unmarshal([]byte(raw), &event); err != nil {
			return nil, fmt.Errorf("failed to unmarshal gift event %s: %w", keys[i], err)
		}
		events = append(events, &event)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})

	return &ListByStreamsOutput{
		Events: events,
	}, nil
}
