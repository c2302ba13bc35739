package battle

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/pkbattle/internal/services/battle Service

import (
	"context"

	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/KirkDiggler/pkbattle/internal/services/gift"
)

// Service is the battle state machine
type Service interface {
	// StartBattle invites an opponent to battle the host stream
	StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error)

	// AcceptBattle starts the countdown for a pending battle
	AcceptBattle(ctx context.Context, input *AcceptBattleInput) (*AcceptBattleOutput, error)

	// SendGift commits a gift to a battle participant and rescores the open round
	SendGift(ctx context.Context, input *SendGiftInput) (*SendGiftOutput, error)

	// EndRound closes the open round early. Forced, it also skips a round still waiting on its countdown or intermission
	EndRound(ctx context.Context, input *EndRoundInput) (*EndRoundOutput, error)

	// EndBattle finishes a battle from any state; ending a finished battle returns it unchanged
	EndBattle(ctx context.Context, input *EndBattleInput) (*EndBattleOutput, error)

	GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error)

	// GetBattleStats returns scores, round totals and top senders per side
	GetBattleStats(ctx context.Context, input *GetBattleStatsInput) (*GetBattleStatsOutput, error)

	// UpdateStreamLiveness records a participant stream's connection state
	UpdateStreamLiveness(ctx context.Context, input *UpdateStreamLivenessInput) (*UpdateStreamLivenessOutput, error)

	// HandleTimer applies a fired deadline, ignoring stale ones
	HandleTimer(ctx context.Context, timer *models.BattleTimer) error

	// RecoverTimers re-arms deadlines for every unfinished battle
	RecoverTimers(ctx context.Context) (*RecoverTimersOutput, error)

	// ScoreGift rescores the battle a committed plain gift was tagged with
	ScoreGift(ctx context.Context, input *gift.EffectInput) error

	// LocateBattle finds the active battle a gift on a stream counts toward
	LocateBattle(ctx context.Context, input *gift.LocateBattleInput) (*gift.LocateBattleOutput, error)
}
