package fanout

//go:generate mockgen -package=mocks -destination=mocks/mock_fanout.go github.com/KirkDiggler/pkbattle/internal/services/fanout Broadcaster,Transport

import (
	"context"

	"github.com/KirkDiggler/pkbattle/internal/models"
)

// Broadcaster delivers battle events to every stream channel a battle covers
type Broadcaster interface {
	// Enqueue snapshots the event and queues it without blocking
	Enqueue(ctx context.Context, event *models.BattleEvent) error

	// ChannelFor names the realtime channel of a stream
	ChannelFor(streamID string) string
}

// Transport is the realtime pub/sub the broadcaster publishes on
type Transport interface {
	Publish(ctx context.Context, input *PublishInput) error

	// Subscribe relays a channel until the context ends
	Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error)
}
