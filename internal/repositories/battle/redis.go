package battle

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
	battleKeyPrefix       = "battle:"
	streamBattleKeyPrefix = "battle_stream:"
	activeBattlesKey      = "active_battles"
)

// releaseStreamScript drops a stream index entry only if it still points at the battle
const releaseStreamScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// ErrBattleNotFound is returned when a battle is not found
var ErrBattleNotFound = errors.New("battle not found")

// Config holds configuration for the Redis battle repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed battle repository
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

// SaveBattle persists a battle to Redis.
// Every stream of a live battle points at it; a finished battle releases its streams.
func (r *redisRepository) SaveBattle(ctx context.Context, input *SaveBattleInput) error {
	if input == nil || input.Battle == nil {
		return errors.New("input and battle cannot be nil")
	}

	b := input.Battle
	if b.ID == "" {
		return errors.New("battle ID cannot be empty")
	}

	battleJSON, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal battle: %w", err)
	}

	pipe := r.client.Pipeline()

	pipe.Set(ctx, battleKeyPrefix+b.ID, battleJSON, 0)

	for _, streamID := range b.StreamIDs() {
		streamKey := streamBattleKeyPrefix + streamID
		if b.IsFinished() {
			pipe.Eval(ctx, releaseStreamScript, []string{streamKey}, b.ID)
		} else {
			pipe.Set(ctx, streamKey, b.ID, 0)
		}
	}

	if b.IsFinished() {
		pipe.SRem(ctx, activeBattlesKey, b.ID)
	} else {
		pipe.SAdd(ctx, activeBattlesKey, b.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save battle: %w", err)
	}

	return nil
}

// GetBattle retrieves a battle by ID from Redis
func (r *redisRepository) GetBattle(ctx context.Context, input *GetBattleInput) (*models.Battle, error) {
	if input == nil || input.BattleID == "" {
		return nil, errors.New("input and battle ID cannot be empty")
	}

	battleJSON, err := r.client.Get(ctx, battleKeyPrefix+input.BattleID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrBattleNotFound
		}
		return nil, fmt.Errorf("failed to get battle: %w", err)
	}

	var b models.Battle
	if err := json.Unmarshal([]byte(battleJSON), &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal battle: %w", err)
	}

	return &b, nil
}

// GetActiveBattleByStream retrieves the live battle a stream belongs to
func (r *redisRepository) GetActiveBattleByStream(ctx context.Context, input *GetActiveBattleByStreamInput) (*models.Battle, error) {
	if input == nil || input.StreamID == "" {
		return nil, errors.New("input and stream ID cannot be empty")
	}

	battleID, err := r.client.Get(ctx, streamBattleKeyPrefix+input.StreamID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrBattleNotFound
		}
		return nil, fmt.Errorf("failed to get battle ID for stream: %w", err)
	}

	b, err := r.GetBattle(ctx, &GetBattleInput{
		BattleID: battleID,
	})
	if err != nil {
		return nil, err
	}

	// A stale index entry never resolves to a finished battle
	if b.IsFinished() {
		return nil, ErrBattleNotFound
	}

	return b, nil
}

// GetActiveBattles retrieves all battles that have not finished
func (r *redisRepository) GetActiveBattles(ctx context.Context, input *GetActiveBattlesInput) (*GetActiveBattlesOutput, error) {
	battleIDs, err := r.client.SMembers(ctx, activeBattlesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get active battle IDs: %w", err)
	}

	if len(battleIDs) == 0 {
		return &GetActiveBattlesOutput{
			Battles: []*models.Battle{},
		}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make(map[string]*redis.StringCmd, len(battleIDs))
	for _, id := range battleIDs {
		cmds[id] = pipe.Get(ctx, battleKeyPrefix+id)
	}

	// redis.Nil on a single key is handled per command below
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get active battles: %w", err)
	}

	battles := make([]*models.Battle, 0, len(battleIDs))
	for id, cmd := range cmds {
		battleJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get battle %s: %w", id, err)
		}

		var b models.Battle
		if err := json.Unmarshal([]byte(battleJSON), &b); err != nil {
			return nil, fmt.Errorf("failed to unmarshal battle %s: %w", id, err)
		}

		if b.IsFinished() {
			continue
		}

		battles = append(battles, &b)
	}

	return &GetActiveBattlesOutput{
		Battles: battles,
	}, nil
}
