package events

//go:generate mockgen -package=mocks -destination=mocks/mock_publisher.go github.com/KirkDiggler/pkbattle/internal/events Publisher

import (
	"context"
)

// Publisher hands committed gift events to downstream consumers
type Publisher interface {
	// PublishGift writes one gift.sent message keyed by recipient
	PublishGift(ctx context.Context, input *PublishGiftInput) error

	// Close flushes pending writes
	Close() error
}
