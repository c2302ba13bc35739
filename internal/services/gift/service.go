package gift

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/common/clock"
	"github.com/KirkDiggler/pkbattle/internal/common/uuid"
	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/KirkDiggler/pkbattle/internal/observability"
	ledgerRepo "github.com/KirkDiggler/pkbattle/internal/repositories/coin_ledger"
	"github.com/KirkDiggler/pkbattle/internal/services/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const defaultEffectTimeout = 2 * time.Second

type service struct {
	ledgerRepo    ledgerRepo.Repository
	limiter       ratelimit.Limiter
	effectTimeout time.Duration
	clock         clock.Clock
	uuidGenerator uuid.UUID
	logger        *zerolog.Logger
	metrics       *observability.Metrics

	mu      sync.RWMutex
	effects []Effect
	locator BattleLocator
}

// New creates a new gift service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.LedgerRepo == nil {
		return nil, ErrNilLedgerRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	logger := cfg.Logger
	if logger == nil {
		logger = observability.NopLogger()
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
	}

	timeout := cfg.EffectTimeout
	if timeout <= 0 {
		timeout = defaultEffectTimeout
	}

	return &service{
		ledgerRepo:    cfg.LedgerRepo,
		limiter:       cfg.Limiter,
		effectTimeout: timeout,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        logger,
		metrics:       metrics,
	}, nil
}

// RegisterEffect appends a post-commit effect; effects run in registration order
func (s *service) RegisterEffect(effect Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.effects = append(s.effects, effect)
}

// SetBattleLocator sets how plain gifts find their battle
func (s *service) SetBattleLocator(locator BattleLocator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locator = locator
}

// SendGift validates, throttles, commits and then fans the gift out to the effects.
// UnitValue times Quantity must fit in an int64.
func (s *service) SendGift(ctx context.Context, input *SendGiftInput) (*SendGiftOutput, error) {
	if input == nil || input.StreamID == "" || input.SenderID == "" || input.RecipientID == "" {
		return nil, ErrMissingParty
	}

	if input.UnitValue <= 0 || input.Quantity <= 0 || input.UnitValue > math.MaxInt64/input.Quantity {
		s.metrics.GiftsRejected.WithLabelValues("invalid").Inc()
		return nil, ErrInvalidGift
	}

	if input.SenderID == input.RecipientID {
		s.metrics.GiftsRejected.WithLabelValues("self").Inc()
		return nil, ErrSelfGift
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, &ratelimit.AllowInput{Key: "gift:" + input.SenderID})
		if err != nil {
			// The limiter protects the ledger, it must not take gifting down with it
			s.logger.Warn().Err(err).Str("sender_id", input.SenderID).Msg("rate limiter unavailable")
		} else if !allowed.Allowed {
			s.metrics.GiftsRejected.WithLabelValues("rate_limited").Inc()
			return nil, ErrRateLimited
		}
	}

	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.clock.Now()
	}

	event := &models.GiftEvent{
		ID:             s.uuidGenerator.NewUUID(),
		StreamID:       input.StreamID,
		SenderID:       input.SenderID,
		RecipientID:    input.RecipientID,
		GiftID:         input.GiftID,
		UnitValue:      input.UnitValue,
		Quantity:       input.Quantity,
		TotalValue:     input.UnitValue * input.Quantity,
		BattleID:       input.BattleID,
		BattleRound:    input.BattleRound,
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      createdAt,
	}

	if event.BattleID == "" {
		s.tagBattle(ctx, event)
	}

	out, err := s.ledgerRepo.Transfer(ctx, &ledgerRepo.TransferInput{Event: event})
	if err != nil {
		if errors.Is(err, ledgerRepo.ErrInsufficientFunds) {
			s.metrics.GiftsRejected.WithLabelValues("insufficient_funds").Inc()
			return nil, ErrInsufficientFunds
		}
		return nil, fmt.Errorf("failed to transfer coins: %w", err)
	}

	if out.Replayed {
		s.metrics.IdempotentReplays.Inc()
		s.logger.Info().
			Str("gift_event_id", out.Event.ID).
			Str("idempotency_key", input.IdempotencyKey).
			Msg("gift replayed from idempotency key")

		return &SendGiftOutput{
			Event:         out.Event,
			Replayed:      true,
			SenderBalance: out.SenderBalance,
		}, nil
	}

	origin := "stream"
	if event.BattleID != "" {
		origin = "battle"
	}
	s.metrics.GiftsSent.WithLabelValues(origin).Inc()
	s.metrics.CoinsTransferred.Add(float64(event.TotalValue))

	s.logger.Info().
		Str("gift_event_id", event.ID).
		Str("stream_id", event.StreamID).
		Str("sender_id", event.SenderID).
		Str("recipient_id", event.RecipientID).
		Int64("total_value", event.TotalValue).
		Str("battle_id", event.BattleID).
		Msg("gift committed")

	if !input.DeferEffects {
		s.RunEffects(ctx, &EffectInput{Event: event, BattleScored: input.BattleScored})
	}

	return &SendGiftOutput{
		Event:         event,
		SenderBalance: out.SenderBalance,
	}, nil
}

// tagBattle records the covering battle on a plain gift; failures leave it untagged
func (s *service) tagBattle(ctx context.Context, event *models.GiftEvent) {
	s.mu.RLock()
	locator := s.locator
	s.mu.RUnlock()

	if locator == nil {
		return
	}

	located, err := locator.LocateBattle(ctx, &LocateBattleInput{
		StreamID:    event.StreamID,
		RecipientID: event.RecipientID,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("stream_id", event.StreamID).Msg("failed to locate battle for gift")
		return
	}

	if located != nil && located.BattleID != "" {
		event.BattleID = located.BattleID
		event.BattleRound = located.Round
	}
}

// RunEffects applies each effect in order, each with its own deadline detached from the caller
func (s *service) RunEffects(ctx context.Context, input *EffectInput) {
	s.mu.RLock()
	effects := append([]Effect(nil), s.effects...)
	s.mu.RUnlock()

	base := context.WithoutCancel(ctx)
	for _, effect := range effects {
		effectCtx, cancel := context.WithTimeout(base, s.effectTimeout)
		err := effect.Apply(effectCtx, input)
		cancel()

		if err != nil {
			s.metrics.EffectFailures.WithLabelValues(effect.Name()).Inc()
			s.logger.Error().
				Err(err).
				Str("effect", effect.Name()).
				Str("gift_event_id", input.Event.ID).
				Msg("gift effect failed")
		}
	}
}

// CreditCoins tops up the spendable compartment
func (s *service) CreditCoins(ctx context.Context, input *CreditCoinsInput) (*CreditCoinsOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrMissingParty
	}

	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	out, err := s.ledgerRepo.Credit(ctx, &ledgerRepo.CreditInput{
		UserID:    input.UserID,
		Amount:    input.Amount,
		Reference: input.Reference,
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to credit coins: %w", err)
	}

	s.logger.Info().
		Str("user_id", input.UserID).
		Int64("amount", input.Amount).
		Str("reference", input.Reference).
		Msg("coins credited")

	return &CreditCoinsOutput{
		Wallet:      out.Wallet,
		Transaction: out.Transaction,
	}, nil
}

// GetWallet returns balances and optionally the newest entries
func (s *service) GetWallet(ctx context.Context, input *GetWalletInput) (*GetWalletOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrMissingParty
	}

	wallet, err := s.ledgerRepo.GetWallet(ctx, &ledgerRepo.GetWalletInput{UserID: input.UserID})
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	out := &GetWalletOutput{
		Wallet:       wallet,
		Transactions: []*models.CoinTransaction{},
	}

	if input.TransactionLimit > 0 {
		txns, err := s.ledgerRepo.ListTransactions(ctx, &ledgerRepo.ListTransactionsInput{
			UserID: input.UserID,
			Limit:  input.TransactionLimit,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list transactions: %w", err)
		}
		out.Transactions = txns.Transactions
	}

	return out, nil
}
