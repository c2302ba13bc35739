package battle

import (
	"time"

	"github.com/KirkDiggler/pkbattle/internal/common/clock"
	"github.com/KirkDiggler/pkbattle/internal/common/uuid"
	"github.com/KirkDiggler/pkbattle/internal/lock"
	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/KirkDiggler/pkbattle/internal/notifications"
	"github.com/KirkDiggler/pkbattle/internal/observability"
	battleRepo "github.com/KirkDiggler/pkbattle/internal/repositories/battle"
	streamRepo "github.com/KirkDiggler/pkbattle/internal/repositories/stream"
	"github.com/KirkDiggler/pkbattle/internal/services/fanout"
	"github.com/KirkDiggler/pkbattle/internal/services/gift"
	"github.com/KirkDiggler/pkbattle/internal/services/leaderboard"
	"github.com/KirkDiggler/pkbattle/internal/services/scheduler"
	"github.com/KirkDiggler/pkbattle/internal/services/scoring"
	"github.com/rs/zerolog"
)

// Config holds configuration for the battle service
type Config struct {
	BattleRepo  battleRepo.Repository
	StreamRepo  streamRepo.Repository
	GiftService gift.Service
	Scoring     scoring.Service

	// Leaderboard backs the stats top senders, nil leaves them empty
	Leaderboard leaderboard.Service

	Locker      lock.Locker
	Scheduler   scheduler.Scheduler
	Broadcaster fanout.Broadcaster

	// Notifier is optional
	Notifier notifications.Notifier

	// Defaults fills any battle rule the inviter leaves unset
	Defaults models.BattleConfig

	// LockTTL and LockWait tune the per-battle lock, zero uses the locker's defaults
	LockTTL  time.Duration
	LockWait time.Duration

	// NotifyTimeout bounds each notification
	NotifyTimeout time.Duration

	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Logger        *zerolog.Logger
	Metrics       *observability.Metrics
}

// BattleConfigInput overrides battle rules; zero fields use the defaults
type BattleConfigInput struct {
	Rounds               int
	RoundDuration        time.Duration
	CountdownDuration    *time.Duration
	IntermissionDuration *time.Duration
}

type StartBattleInput struct {
	// HostStreamID is the challenger's live stream
	HostStreamID string

	// ChallengerID is the caller; it must own the host stream
	ChallengerID string

	OpponentID string

	Config *BattleConfigInput
}

type StartBattleOutput struct {
	Battle *models.Battle
}

type AcceptBattleInput struct {
	BattleID string
	UserID   string
}

type AcceptBattleOutput struct {
	Battle *models.Battle
}

type SendGiftInput struct {
	BattleID    string
	SenderID    string
	RecipientID string

	// StreamID is where the viewer is watching, defaults to the recipient's stream
	StreamID string

	GiftID         string
	UnitValue      int64
	Quantity       int64
	IdempotencyKey string
}

// ScoreUpdate is the battle state a gift sender sees after the gift
type ScoreUpdate struct {
	BattleID    string `json:"battle_id"`
	GiftEventID string `json:"gift_event_id"`
	Round       int    `json:"round"`

	// Counted is false when the gift landed outside an open round
	Counted bool `json:"counted"`

	// Replayed is true when the idempotency key returned an earlier gift
	Replayed bool `json:"replayed"`

	Phase           models.BattlePhase `json:"phase"`
	ChallengerRound models.SideScore   `json:"challenger_round"`
	OpponentRound   models.SideScore   `json:"opponent_round"`
	ChallengerTotal models.SideScore   `json:"challenger_total"`
	OpponentTotal   models.SideScore   `json:"opponent_total"`
	Sequence        int64              `json:"sequence"`
	SenderBalance   int64              `json:"sender_balance"`
}

type SendGiftOutput struct {
	Update *ScoreUpdate
}

type EndRoundInput struct {
	BattleID string

	// UserID must be a participant unless Force is set
	UserID string

	// Force marks the round as administratively closed
	Force bool
}

type EndRoundOutput struct {
	Battle *models.Battle
	Round  *models.RoundSummary
}

type EndBattleInput struct {
	BattleID string

	// UserID must be a participant when set; empty is an administrative end
	UserID string

	Reason string
}

type EndBattleOutput struct {
	Battle *models.Battle
}

type GetBattleInput struct {
	BattleID string
}

type GetBattleOutput struct {
	Battle *models.Battle
}

type GetBattleStatsInput struct {
	BattleID string

	// TopLimit caps the top senders per side
	TopLimit int
}

// SideStats is one side's view of a battle
type SideStats struct {
	UserID      string                     `json:"user_id"`
	Round       models.SideScore           `json:"round"`
	Total       models.SideScore           `json:"total"`
	RoundWins   int                        `json:"round_wins"`
	RoundTotals map[int]int64              `json:"round_totals"`
	TopSenders  []*models.LeaderboardEntry `json:"top_senders"`
}

// BattleStats is the read model for the stats endpoint
type BattleStats struct {
	BattleID       string                 `json:"battle_id"`
	Token          string                 `json:"token"`
	Phase          models.BattlePhase     `json:"phase"`
	Status         models.BattleStatus    `json:"status"`
	CurrentRound   int                    `json:"current_round"`
	Rounds         []*models.RoundSummary `json:"rounds"`
	Challenger     SideStats              `json:"challenger"`
	Opponent       SideStats              `json:"opponent"`
	TotalGiftValue int64                  `json:"total_gift_value"`
	WinnerID       string                 `json:"winner_id,omitempty"`
	Sequence       int64                  `json:"sequence"`
	CreatedAt      time.Time              `json:"created_at"`
	StartedAt      *time.Time             `json:"started_at,omitempty"`
	RoundEndsAt    *time.Time             `json:"round_ends_at,omitempty"`
	EndedAt        *time.Time             `json:"ended_at,omitempty"`
}

type GetBattleStatsOutput struct {
	Stats *BattleStats
}

type UpdateStreamLivenessInput struct {
	StreamID string
	Liveness models.StreamLiveness
}

type UpdateStreamLivenessOutput struct {
	// Battle is the affected battle, nil when the stream is in none
	Battle *models.Battle
}

type RecoverTimersOutput struct {
	// Armed is the number of timers scheduled
	Armed int
}
