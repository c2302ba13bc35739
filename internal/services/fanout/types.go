package fanout

import (
	"github.com/KirkDiggler/pkbattle/internal/observability"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Config holds configuration for the broadcaster
type Config struct {
	Transport Transport

	// Workers is the number of shards; a battle always lands on the same one
	Workers int

	// QueueSize is the buffer per shard
	QueueSize int

	// Prefix is prepended to stream IDs to name channels
	Prefix string

	Logger  *zerolog.Logger
	Metrics *observability.Metrics
}

// RedisConfig holds configuration for the Redis pub/sub transport
type RedisConfig struct {
	RedisClient redis.UniversalClient

	// Buffer is the per-subscriber message buffer
	Buffer int
}

type PublishInput struct {
	Channel string
	Payload []byte
}

type SubscribeInput struct {
	Channel string
}

type SubscribeOutput struct {
	// Messages closes when the subscription ends
	Messages <-chan []byte
}

// delivery is one snapshot headed for one set of channels
type delivery struct {
	battleID  string
	eventType string
	sequence  int64
	channels  []string
	payload   []byte
}

// FanoutError is a custom error type for fanout errors
type FanoutError string

// Error implements the error interface
func (e FanoutError) Error() string {
	return string(e)
}

const (
	ErrNilConfig      FanoutError = "config cannot be nil"
	ErrNilTransport   FanoutError = "transport cannot be nil"
	ErrNilRedisClient FanoutError = "redis client cannot be nil"
	ErrNilEvent       FanoutError = "event must carry a battle"
	ErrQueueFull      FanoutError = "fanout queue is full"
	ErrStopped        FanoutError = "broadcaster is stopped"
	ErrMissingChannel FanoutError = "channel is required"
)
