package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	streamKeyPrefix   = "stream:"
	userLiveKeyPrefix = "user_live_stream:"
)

// releaseLiveScript clears the user's live pointer only if it still names the stream
const releaseLiveScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// ErrStreamNotFound is returned when a stream is not found
var ErrStreamNotFound = errors.New("stream not found")

// Config holds configuration for the Redis stream registry
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed stream registry
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

// SaveStream stores the stream and keeps the owner's live pointer in step with its status
func (r *redisRepository) SaveStream(ctx context.Context, input *SaveStreamInput) error {
	if input == nil || input.Stream == nil {
		return errors.New("input and stream cannot be nil")
	}

	st := input.Stream
	if st.ID == "" || st.UserID == "" {
		return errors.New("stream ID and user ID cannot be empty")
	}

	streamJSON, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal stream: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, streamKeyPrefix+st.ID, streamJSON, 0)

	liveKey := userLiveKeyPrefix + st.UserID
	if st.IsLive() {
		pipe.Set(ctx, liveKey, st.ID, 0)
	} else {
		pipe.Eval(ctx, releaseLiveScript, []string{liveKey}, st.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save stream: %w", err)
	}

	return nil
}

// GetStream retrieves a stream by ID from Redis
func (r *redisRepository) GetStream(ctx context.Context, input *GetStreamInput) (*models.Stream, error) {
	if input == nil || input.StreamID == "" {
		return nil, errors.New("input and stream ID cannot be empty")
	}

	streamJSON, err := r.client.Get(ctx, streamKeyPrefix+input.StreamID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrStreamNotFound
		}
		return nil, fmt.Errorf("failed to get stream: %w", err)
	}

	var st models.Stream
	if err := json.Unmarshal([]byte(streamJSON), &st); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stream: %w", err)
	}

	return &st, nil
}

// GetLiveStreamByUser follows the user's live pointer
func (r *redisRepository) GetLiveStreamByUser(ctx context.Context, input *GetLiveStreamByUserInput) (*models.Stream, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	streamID, err := r.client.Get(ctx, userLiveKeyPrefix+input.UserID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrStreamNotFound
		}
		return nil, fmt.Errorf("failed to get live stream for user: %w", err)
	}

	st, err := r.GetStream(ctx, &GetStreamInput{StreamID: streamID})
	if err != nil {
		return nil, err
	}

	if !st.IsLive() {
		return nil, ErrStreamNotFound
	}

	return st, nil
}
