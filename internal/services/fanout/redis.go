package fanout

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultSubscriberBuffer = 64

type redisTransport struct {
	client redis.UniversalClient
	buffer int
}

// NewRedis creates a pub/sub transport on Redis
func NewRedis(cfg *RedisConfig) (*redisTransport, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RedisClient == nil {
		return nil, ErrNilRedisClient
	}

	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}

	return &redisTransport{
		client: cfg.RedisClient,
		buffer: buffer,
	}, nil
}

func (t *redisTransport) Publish(ctx context.Context, input *PublishInput) error {
	if input == nil || input.Channel == "" {
		return ErrMissingChannel
	}

	if err := t.client.Publish(ctx, input.Channel, input.Payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", input.Channel, err)
	}

	return nil
}

func (t *redisTransport) Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error) {
	if input == nil || input.Channel == "" {
		return nil, ErrMissingChannel
	}

	pubsub := t.client.Subscribe(ctx, input.Channel)

	// Wait for the subscription confirmation so no publish after return is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", input.Channel, err)
	}

	out := make(chan []byte, t.buffer)
	go func() {
		defer close(out)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return &SubscribeOutput{Messages: out}, nil
}
