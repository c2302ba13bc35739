package battle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/KirkDiggler/pkbattle/internal/notifications"
	battleRepo "github.com/KirkDiggler/pkbattle/internal/repositories/battle"
	streamRepo "github.com/KirkDiggler/pkbattle/internal/repositories/stream"
	"github.com/gosimple/slug"
)

// StartBattle creates a pending battle. The host and opponent stream locks
// make the existing-battle check and the save one step.
func (s *service) StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error) {
	if input == nil || input.HostStreamID == "" {
		return nil, ErrStreamNotLive
	}

	cfg, err := s.resolveConfig(input.Config)
	if err != nil {
		return nil, err
	}

	host, err := s.streamRepo.GetStream(ctx, &streamRepo.GetStreamInput{StreamID: input.HostStreamID})
	if err != nil {
		if errors.Is(err, streamRepo.ErrStreamNotFound) {
			return nil, ErrStreamNotLive
		}
		return nil, fmt.Errorf("failed to get host stream: %w", err)
	}

	if !host.IsLive() {
		return nil, ErrStreamNotLive
	}

	challengerID := input.ChallengerID
	if challengerID == "" {
		challengerID = host.UserID
	}

	if challengerID != host.UserID {
		return nil, ErrNotStreamOwner
	}

	if input.OpponentID == "" || input.OpponentID == challengerID {
		return nil, ErrInvalidOpponent
	}

	opponentStreamID := ""
	opponentStream, err := s.streamRepo.GetLiveStreamByUser(ctx, &streamRepo.GetLiveStreamByUserInput{UserID: input.OpponentID})
	switch {
	case err == nil:
		opponentStreamID = opponentStream.ID
	case !errors.Is(err, streamRepo.ErrStreamNotFound):
		return nil, fmt.Errorf("failed to resolve opponent stream: %w", err)
	}

	lockKeys := []string{streamLockPrefix + host.ID}
	if opponentStreamID != "" && opponentStreamID != host.ID {
		lockKeys = append(lockKeys, streamLockPrefix+opponentStreamID)
	}

	release, err := s.acquire(ctx, lockKeys...)
	if err != nil {
		return nil, err
	}

	b, err := s.createBattle(ctx, host, challengerID, input.OpponentID, opponentStreamID, cfg)
	release()
	if err != nil {
		return nil, err
	}

	s.sendNotifications(ctx, &change{notifications: []*notifications.NotifyInput{
		{Kind: notifications.KindInvitation, Battle: b},
	}})

	return &StartBattleOutput{Battle: b}, nil
}

// createBattle must run with the stream locks held
func (s *service) createBattle(ctx context.Context, host *models.Stream, challengerID, opponentID, opponentStreamID string, cfg models.BattleConfig) (*models.Battle, error) {
	for _, streamID := range []string{host.ID, opponentStreamID} {
		if streamID == "" {
			continue
		}

		_, err := s.battleRepo.GetActiveBattleByStream(ctx, &battleRepo.GetActiveBattleByStreamInput{StreamID: streamID})
		if err == nil {
			return nil, ErrBattleAlreadyActive
		}
		if !errors.Is(err, battleRepo.ErrBattleNotFound) {
			return nil, fmt.Errorf("failed to check active battle: %w", err)
		}
	}

	now := s.clock.Now()
	id := s.uuidGenerator.NewUUID()

	b := &models.Battle{
		ID:               id,
		Token:            battleToken(id, challengerID, opponentID),
		ChallengerID:     challengerID,
		OpponentID:       opponentID,
		HostStreamID:     host.ID,
		OpponentStreamID: opponentStreamID,
		CoHostStreamIDs:  append([]string{}, host.CoHostStreamIDs...),
		Phase:            models.BattlePhaseInvitation,
		Status:           models.BattleStatusPending,
		Config:           cfg,
		Rounds:           []*models.RoundSummary{},
		Liveness: map[string]models.StreamLiveness{
			challengerID: models.StreamLivenessConnected,
		},
		CreatedAt:      now,
		LastActivityAt: &now,
	}

	if opponentStreamID != "" {
		b.Liveness[opponentID] = models.StreamLivenessConnected
	}

	ch := &change{}
	ch.emit(models.BattleEventInvited, nil)

	if err := s.commit(ctx, b, now, ch); err != nil {
		return nil, err
	}

	s.metrics.BattleTransitions.WithLabelValues(string(b.Phase)).Inc()
	s.logger.Info().
		Str("battle_id", b.ID).
		Str("token", b.Token).
		Str("challenger_id", challengerID).
		Str("opponent_id", opponentID).
		Strs("streams", b.StreamIDs()).
		Msg("battle invited")

	return b, nil
}

func battleToken(id, challengerID, opponentID string) string {
	suffix := id
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return slug.Make(fmt.Sprintf("%s vs %s %s", challengerID, opponentID, suffix))
}

func (s *service) resolveConfig(input *BattleConfigInput) (models.BattleConfig, error) {
	cfg := s.defaults
	if input == nil {
		return cfg, nil
	}

	if input.Rounds != 0 {
		cfg.Rounds = input.Rounds
	}

	if input.RoundDuration != 0 {
		cfg.RoundDuration = input.RoundDuration
	}

	if input.CountdownDuration != nil {
		cfg.CountdownDuration = *input.CountdownDuration
	}

	if input.IntermissionDuration != nil {
		cfg.IntermissionDuration = *input.IntermissionDuration
	}

	if err := validateBattleConfig(cfg); err != nil {
		return models.BattleConfig{}, err
	}

	return cfg, nil
}

// AcceptBattle moves a pending battle into its countdown, or straight into round one without one
func (s *service) AcceptBattle(ctx context.Context, input *AcceptBattleInput) (*AcceptBattleOutput, error) {
	if input == nil {
		return nil, ErrBattleNotFound
	}

	b, _, err := s.mutate(ctx, input.BattleID, func(ctx context.Context, b *models.Battle, now time.Time) (*change, error) {
		if input.UserID != b.OpponentID {
			return nil, ErrNotOpponent
		}

		if !b.Status.IsPending() {
			return nil, ErrInvalidState
		}

		b.Status = models.BattleStatusActive
		b.StartedAt = &now
		b.CountdownStartedAt = &now
		b.LastActivityAt = &now
		b.Phase = models.BattlePhaseCountdown

		ch := &change{}
		ch.emit(models.BattleEventStarted, nil)

		if b.Config.CountdownDuration > 0 {
			ch.arm = &models.BattleTimer{
				BattleID: b.ID,
				Round:    1,
				Kind:     models.BattleTimerCountdown,
				FireAt:   now.Add(b.Config.CountdownDuration),
			}
			return ch, nil
		}

		openRound(b, now, 1, ch)
		return ch, nil
	})
	if err != nil {
		return nil, err
	}

	return &AcceptBattleOutput{Battle: b}, nil
}

// EndRound closes the open round early and advances the battle
func (s *service) EndRound(ctx context.Context, input *EndRoundInput) (*EndRoundOutput, error) {
	if input == nil {
		return nil, ErrBattleNotFound
	}

	var summary *models.RoundSummary
	b, _, err := s.mutate(ctx, input.BattleID, func(ctx context.Context, b *models.Battle, now time.Time) (*change, error) {
		if !input.Force {
			if _, ok := b.SideOf(input.UserID); !ok {
				return nil, ErrNotParticipant
			}
		}

		if !b.Status.IsActive() || (!b.RoundOpen() && !input.Force) {
			return nil, ErrInvalidState
		}

		ch := &change{}
		if b.RoundOpen() {
			closed, err := s.closeRound(ctx, b, now, input.Force, ch)
			if err != nil {
				return nil, err
			}
			summary = closed
		} else {
			summary = skipRound(b, now, ch)
		}

		advance(b, now, ch)
		return ch, nil
	})
	if err != nil {
		return nil, err
	}

	return &EndRoundOutput{Battle: b, Round: summary}, nil
}

// EndBattle is terminal from any state. An open round is closed and counted first.
func (s *service) EndBattle(ctx context.Context, input *EndBattleInput) (*EndBattleOutput, error) {
	if input == nil {
		return nil, ErrBattleNotFound
	}

	b, _, err := s.mutate(ctx, input.BattleID, func(ctx context.Context, b *models.Battle, now time.Time) (*change, error) {
		if input.UserID != "" {
			if _, ok := b.SideOf(input.UserID); !ok {
				return nil, ErrNotParticipant
			}
		}

		if b.IsFinished() {
			return &change{noop: true}, nil
		}

		ch := &change{}
		if b.RoundOpen() {
			if _, err := s.closeRound(ctx, b, now, true, ch); err != nil {
				return nil, err
			}
		}

		reason := input.Reason
		if reason == "" {
			reason = "ended early"
		}
		b.AppendLog(now, reason)

		finish(b, now, ch)
		return ch, nil
	})
	if err != nil {
		return nil, err
	}

	return &EndBattleOutput{Battle: b}, nil
}
