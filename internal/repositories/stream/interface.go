package stream

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/pkbattle/internal/repositories/stream Repository

import (
	"context"

	"github.com/KirkDiggler/pkbattle/internal/models"
)

// Repository is the stream registry: which streams exist, who owns them, who is live
type Repository interface {
	// SaveStream registers or updates a stream
	SaveStream(ctx context.Context, input *SaveStreamInput) error

	// GetStream retrieves a stream by ID
	GetStream(ctx context.Context, input *GetStreamInput) (*models.Stream, error)

	// GetLiveStreamByUser retrieves the stream a user is currently live on
	GetLiveStreamByUser(ctx context.Context, input *GetLiveStreamByUserInput) (*models.Stream, error)
}
