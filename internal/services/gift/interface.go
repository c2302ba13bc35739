package gift

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/pkbattle/internal/services/gift Service,Effect,BattleLocator

import (
	"context"
)

// Service sends gifts and manages the wallets that pay for them
type Service interface {
	// SendGift commits a gift on the coin ledger and then runs the post-commit effects
	SendGift(ctx context.Context, input *SendGiftInput) (*SendGiftOutput, error)

	// RunEffects runs the post-commit effects for a gift committed with DeferEffects
	RunEffects(ctx context.Context, input *EffectInput)

	// CreditCoins tops up a user's spendable coins
	CreditCoins(ctx context.Context, input *CreditCoinsInput) (*CreditCoinsOutput, error)

	// GetWallet returns balances and recent ledger entries
	GetWallet(ctx context.Context, input *GetWalletInput) (*GetWalletOutput, error)
}

// Effect is a post-commit side effect of a gift. A failing effect never undoes the gift.
type Effect interface {
	Name() string
	Apply(ctx context.Context, input *EffectInput) error
}

// BattleLocator finds the battle a plain gift counts toward
type BattleLocator interface {
	LocateBattle(ctx context.Context, input *LocateBattleInput) (*LocateBattleOutput, error)
}
