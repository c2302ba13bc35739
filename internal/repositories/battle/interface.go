package battle

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/pkbattle/internal/repositories/battle Repository

import (
	"context"

	"github.com/KirkDiggler/pkbattle/internal/models"
)

// Repository defines the interface for battle persistence
type Repository interface {
	// SaveBattle persists a battle and maintains the stream and active indexes
	SaveBattle(ctx context.Context, input *SaveBattleInput) error

	// GetBattle retrieves a battle by ID
	GetBattle(ctx context.Context, input *GetBattleInput) (*models.Battle, error)

	// GetActiveBattleByStream retrieves the pending or active battle covering a stream
	GetActiveBattleByStream(ctx context.Context, input *GetActiveBattleByStreamInput) (*models.Battle, error)

	// GetActiveBattles retrieves all battles that have not finished
	GetActiveBattles(ctx context.Context, input *GetActiveBattlesInput) (*GetActiveBattlesOutput, error)
}
