package scoring

import (
	"context"
	"fmt"

	giftRepo "github.com/KirkDiggler/pkbattle/internal/repositories/gift_event"
)

type service struct {
	giftRepo giftRepo.Repository
}

// New creates a new scoring service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.GiftRepo == nil {
		return nil, ErrNilGiftRepo
	}

	return &service{
		giftRepo: cfg.GiftRepo,
	}, nil
}

// Score reads the battle's gift events for the window and computes both sides
func (s *service) Score(ctx context.Context, input *ScoreInput) (*ScoreOutput, error) {
	if input == nil || input.Battle == nil {
		return nil, ErrNilBattle
	}

	out, err := s.giftRepo.ListByStreams(ctx, &giftRepo.ListByStreamsInput{
		StreamIDs: input.Battle.StreamIDs(),
		From:      input.Window.From,
		To:        input.Window.To,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list gift events: %w", err)
	}

	return &ScoreOutput{
		Result: Compute(input.Battle, out.Events, input.Window),
		Events: len(out.Events),
	}, nil
}
