package scoring

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/pkbattle/internal/services/scoring Service

import "context"

// Service computes battle score snapshots from recorded gift events
type Service interface {
	// Score recomputes both sides for a time window of a battle
	Score(ctx context.Context, input *ScoreInput) (*ScoreOutput, error)
}
