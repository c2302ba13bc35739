package gift_event

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/pkbattle/internal/repositories/gift_event Repository

import (
	"context"

	"github.com/KirkDiggler/pkbattle/internal/models"
)

// Repository serves back the immutable gift events the coin ledger writes with each transfer
type Repository interface {
	// GetGift retrieves a gift event by ID
	GetGift(ctx context.Context, input *GetGiftInput) (*models.GiftEvent, error)

	// ListByStreams retrieves the gift events sent on any of the streams within [From, To]
	ListByStreams(ctx context.Context, input *ListByStreamsInput) (*ListByStreamsOutput, error)
}
