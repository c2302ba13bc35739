package battle

import (
	"context"
	"errors"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
	battleRepo "github.com/KirkDiggler/pkbattle/internal/repositories/battle"
	"github.com/KirkDiggler/pkbattle/internal/services/gift"
)

// SendGift re-checks the battle, commits the transfer and rescores in one hold of the battle lock,
// so no round can close between the gift's timestamp and its score.
// The post-commit effects and notifications run after the lock is released.
func (s *service) SendGift(ctx context.Context, input *SendGiftInput) (*SendGiftOutput, error) {
	if input == nil || input.BattleID == "" {
		return nil, ErrBattleNotFound
	}

	var (
		sent    *gift.SendGiftOutput
		current *models.Battle
		counted bool
	)

	scored, _, err := s.mutate(ctx, input.BattleID, func(ctx context.Context, b *models.Battle, now time.Time) (*change, error) {
		if !b.Status.IsActive() {
			return nil, ErrBattleNotActive
		}

		side, ok := b.SideOf(input.RecipientID)
		if !ok {
			return nil, ErrInvalidRecipient
		}

		streamID := input.StreamID
		if streamID == "" || !b.CoversStream(streamID) {
			streamID = b.StreamFor(side)
		}

		at := giftTime(b, now)
		counted = b.RoundOpen() && roundWindow(b, time.Time{}).Contains(at)

		round := 0
		if counted {
			round = b.CurrentRound
		}

		out, err := s.giftService.SendGift(ctx, &gift.SendGiftInput{
			StreamID:       streamID,
			SenderID:       input.SenderID,
			RecipientID:    input.RecipientID,
			GiftID:         input.GiftID,
			UnitValue:      input.UnitValue,
			Quantity:       input.Quantity,
			BattleID:       b.ID,
			BattleRound:    round,
			BattleScored:   true,
			IdempotencyKey: input.IdempotencyKey,
			CreatedAt:      at,
			DeferEffects:   true,
		})
		if err != nil {
			return nil, err
		}

		sent = out
		current = b
		if out.Replayed {
			counted = out.Event.BattleID == b.ID && out.Event.BattleRound > 0
		}

		return s.rescoreChange(ctx, b, now)
	})
	if err != nil {
		if sent == nil {
			return nil, err
		}
		// The gift is committed; the next rescore or round close picks it up
		s.logger.Error().Err(err).Str("battle_id", input.BattleID).Str("gift_event_id", sent.Event.ID).Msg("failed to rescore after gift")
		scored = current
		counted = false
	}

	if !sent.Replayed {
		s.giftService.RunEffects(ctx, &gift.EffectInput{Event: sent.Event, BattleScored: true})
	}

	update := &ScoreUpdate{
		BattleID:        scored.ID,
		GiftEventID:     sent.Event.ID,
		Round:           scored.CurrentRound,
		Counted:         counted,
		Replayed:        sent.Replayed,
		Phase:           scored.Phase,
		ChallengerRound: scored.ChallengerRound,
		OpponentRound:   scored.OpponentRound,
		ChallengerTotal: scored.ChallengerTotal,
		OpponentTotal:   scored.OpponentTotal,
		Sequence:        scored.EventSequence,
		SenderBalance:   sent.SenderBalance,
	}

	return &SendGiftOutput{Update: update}, nil
}

// giftTime stamps a gift no earlier than the start of the window it could fall in,
// so a gift committed after a round closed never lands inside that round's window.
func giftTime(b *models.Battle, now time.Time) time.Time {
	var floor time.Time
	switch {
	case b.RoundOpen():
		floor = roundWindow(b, time.Time{}).From
	case len(b.Rounds) > 0:
		floor = b.Rounds[len(b.Rounds)-1].ClosedAt.Add(time.Nanosecond)
	}

	if now.Before(floor) {
		return floor
	}
	return now
}

// rescoreChange rescores an open round and emits a score update only when something moved
func (s *service) rescoreChange(ctx context.Context, b *models.Battle, now time.Time) (*change, error) {
	if !b.RoundOpen() {
		return &change{noop: true}, nil
	}

	changed, err := s.rescore(ctx, b, time.Time{})
	if err != nil {
		return nil, err
	}

	if !changed {
		return &change{noop: true}, nil
	}

	b.LastActivityAt = &now
	ch := &change{}
	ch.emit(models.BattleEventScoreUpdated, nil)
	return ch, nil
}

// ScoreGift is the post-commit effect for gifts sent outside the battle endpoint
func (s *service) ScoreGift(ctx context.Context, input *gift.EffectInput) error {
	if input == nil || input.Event == nil || input.BattleScored || input.Event.BattleID == "" {
		return nil
	}

	_, _, err := s.mutate(ctx, input.Event.BattleID, func(ctx context.Context, b *models.Battle, now time.Time) (*change, error) {
		return s.rescoreChange(ctx, b, now)
	})
	if errors.Is(err, ErrBattleNotFound) {
		return nil
	}

	return err
}

// LocateBattle returns the active battle on a stream when the recipient is one of its sides
func (s *service) LocateBattle(ctx context.Context, input *gift.LocateBattleInput) (*gift.LocateBattleOutput, error) {
	if input == nil || input.StreamID == "" {
		return &gift.LocateBattleOutput{}, nil
	}

	b, err := s.battleRepo.GetActiveBattleByStream(ctx, &battleRepo.GetActiveBattleByStreamInput{StreamID: input.StreamID})
	if err != nil {
		if errors.Is(err, battleRepo.ErrBattleNotFound) {
			return &gift.LocateBattleOutput{}, nil
		}
		return nil, err
	}

	if !b.Status.IsActive() {
		return &gift.LocateBattleOutput{}, nil
	}

	if _, ok := b.SideOf(input.RecipientID); !ok {
		return &gift.LocateBattleOutput{}, nil
	}

	out := &gift.LocateBattleOutput{BattleID: b.ID}
	if b.RoundOpen() {
		out.Round = b.CurrentRound
	}
	return out, nil
}
