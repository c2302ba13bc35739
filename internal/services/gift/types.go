package gift

import (
	"context"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/common/clock"
	"github.com/KirkDiggler/pkbattle/internal/common/uuid"
	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/KirkDiggler/pkbattle/internal/observability"
	ledgerRepo "github.com/KirkDiggler/pkbattle/internal/repositories/coin_ledger"
	"github.com/KirkDiggler/pkbattle/internal/services/ratelimit"
	"github.com/rs/zerolog"
)

// Config holds configuration for the gift service
type Config struct {
	// LedgerRepo commits transfers and gift events atomically
	LedgerRepo ledgerRepo.Repository

	// Limiter throttles senders, nil disables limiting
	Limiter ratelimit.Limiter

	// EffectTimeout bounds each post-commit effect
	EffectTimeout time.Duration

	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Logger        *zerolog.Logger
	Metrics       *observability.Metrics
}

// SendGiftInput contains parameters for sending a gift
type SendGiftInput struct {
	// StreamID is the stream the viewer is watching
	StreamID string

	// SenderID is the viewer paying for the gift
	SenderID string

	// RecipientID is the streamer receiving the gift
	RecipientID string

	// GiftID identifies the catalog gift
	GiftID string

	// UnitValue is the coin price of one gift
	UnitValue int64

	// Quantity is how many gifts are sent at once
	Quantity int64

	// BattleID tags the gift with a known battle; empty lets the battle locator decide
	BattleID string

	// BattleRound is the round the gift counts toward, zero when it counts toward none
	BattleRound int

	// BattleScored tells the effects the battle recomputes the score itself
	BattleScored bool

	// IdempotencyKey makes client retries return the original gift
	IdempotencyKey string

	// CreatedAt pins the event time, zero stamps it with the service clock
	CreatedAt time.Time

	// DeferEffects skips the post-commit effects; the caller runs them with RunEffects
	DeferEffects bool
}

// SendGiftOutput contains the committed gift
type SendGiftOutput struct {
	Event *models.GiftEvent

	// Replayed is true when an earlier send with the same idempotency key was returned
	Replayed bool

	// SenderBalance is the sender's spendable balance after the gift
	SenderBalance int64
}

type CreditCoinsInput struct {
	UserID    string
	Amount    int64
	Reference string
}

type CreditCoinsOutput struct {
	Wallet      *models.Wallet
	Transaction *models.CoinTransaction
}

type GetWalletInput struct {
	UserID string

	// TransactionLimit caps the recent entries returned, zero returns none
	TransactionLimit int
}

type GetWalletOutput struct {
	Wallet       *models.Wallet
	Transactions []*models.CoinTransaction
}

// EffectInput is what each post-commit effect receives
type EffectInput struct {
	Event *models.GiftEvent

	// BattleScored is true when the caller already scored the gift for its battle
	BattleScored bool
}

type LocateBattleInput struct {
	StreamID    string
	RecipientID string
}

// LocateBattleOutput names the battle and open round, empty BattleID when none
type LocateBattleOutput struct {
	BattleID string
	Round    int
}

type effectFunc struct {
	name string
	fn   func(ctx context.Context, input *EffectInput) error
}

// NewEffect adapts a function into an Effect
func NewEffect(name string, fn func(ctx context.Context, input *EffectInput) error) Effect {
	return &effectFunc{name: name, fn: fn}
}

func (e *effectFunc) Name() string {
	return e.name
}

func (e *effectFunc) Apply(ctx context.Context, input *EffectInput) error {
	return e.fn(ctx, input)
}
