package leaderboard

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/pkbattle/internal/services/leaderboard Service

import (
	"context"

	"github.com/KirkDiggler/pkbattle/internal/models"
)

// Service maintains the advisory top-sender rankings
type Service interface {
	// RecordGift adds a committed gift to every ranking it belongs to
	RecordGift(ctx context.Context, event *models.GiftEvent) error

	// GetTopSenders ranks senders to a recipient on a stream
	GetTopSenders(ctx context.Context, input *GetTopSendersInput) (*GetTopSendersOutput, error)

	// GetBattleTopSenders ranks senders to a recipient within a battle
	GetBattleTopSenders(ctx context.Context, input *GetBattleTopSendersInput) (*GetTopSendersOutput, error)

	// GetRoundTotals returns the coin value a recipient received per battle round
	GetRoundTotals(ctx context.Context, input *GetRoundTotalsInput) (*GetRoundTotalsOutput, error)
}
