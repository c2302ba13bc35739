package battle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
	battleRepo "github.com/KirkDiggler/pkbattle/internal/repositories/battle"
)

// UpdateStreamLiveness records the connection state of a participant's stream.
// Liveness is informational; a disconnect never ends the battle by itself.
func (s *service) UpdateStreamLiveness(ctx context.Context, input *UpdateStreamLivenessInput) (*UpdateStreamLivenessOutput, error) {
	if input == nil || input.StreamID == "" {
		return &UpdateStreamLivenessOutput{}, nil
	}

	found, err := s.battleRepo.GetActiveBattleByStream(ctx, &battleRepo.GetActiveBattleByStreamInput{StreamID: input.StreamID})
	if err != nil {
		if errors.Is(err, battleRepo.ErrBattleNotFound) {
			return &UpdateStreamLivenessOutput{}, nil
		}
		return nil, fmt.Errorf("failed to find battle for stream: %w", err)
	}

	b, _, err := s.mutate(ctx, found.ID, func(ctx context.Context, b *models.Battle, now time.Time) (*change, error) {
		if b.IsFinished() {
			return &change{noop: true}, nil
		}

		var userID string
		switch input.StreamID {
		case b.HostStreamID:
			userID = b.ChallengerID
		case b.OpponentStreamID:
			userID = b.OpponentID
		default:
			return &change{noop: true}, nil
		}

		if b.Liveness == nil {
			b.Liveness = make(map[string]models.StreamLiveness)
		}

		if b.Liveness[userID] == input.Liveness {
			return &change{noop: true}, nil
		}

		b.Liveness[userID] = input.Liveness
		b.AppendLog(now, fmt.Sprintf("stream %s of %s is %s", input.StreamID, userID, input.Liveness))

		ch := &change{}
		ch.emit(models.BattleEventLiveness, nil)
		return ch, nil
	})
	if err != nil {
		return nil, err
	}

	return &UpdateStreamLivenessOutput{Battle: b}, nil
}
