package battle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
	battleRepo "github.com/KirkDiggler/pkbattle/internal/repositories/battle"
	"github.com/KirkDiggler/pkbattle/internal/services/scheduler"
)

// HandleTimer applies a fired deadline. A timer whose round and phase no longer
// match the battle is stale and does nothing.
func (s *service) HandleTimer(ctx context.Context, timer *models.BattleTimer) error {
	if timer == nil {
		return nil
	}

	_, _, err := s.mutate(ctx, timer.BattleID, func(ctx context.Context, b *models.Battle, now time.Time) (*change, error) {
		ch := &change{}

		switch {
		case timer.Kind == models.BattleTimerCountdown &&
			b.Phase == models.BattlePhaseCountdown && b.CurrentRound == timer.Round-1:
			openRound(b, now, timer.Round, ch)

		case timer.Kind == models.BattleTimerRoundEnd &&
			b.RoundOpen() && b.CurrentRound == timer.Round:
			if _, err := s.closeRound(ctx, b, now, true, ch); err != nil {
				return nil, err
			}
			advance(b, now, ch)

		case timer.Kind == models.BattleTimerIntermission &&
			b.Phase == models.BattlePhaseRoundEnded && b.CurrentRound == timer.Round-1:
			openRound(b, now, timer.Round, ch)

		default:
			s.metrics.StaleTimers.WithLabelValues(string(timer.Kind)).Inc()
			s.logger.Debug().
				Str("timer", timer.Key()).
				Str("phase", string(b.Phase)).
				Int("current_round", b.CurrentRound).
				Msg("stale timer ignored")
			return &change{noop: true}, nil
		}

		return ch, nil
	})
	if errors.Is(err, ErrBattleNotFound) {
		s.metrics.StaleTimers.WithLabelValues(string(timer.Kind)).Inc()
		s.logger.Warn().Str("timer", timer.Key()).Msg("timer fired for unknown battle")
		return nil
	}

	return err
}

// RecoverTimers re-arms the pending deadline of every unfinished battle, e.g. after a restart.
// Deadlines already passed fire immediately.
func (s *service) RecoverTimers(ctx context.Context) (*RecoverTimersOutput, error) {
	out, err := s.battleRepo.GetActiveBattles(ctx, &battleRepo.GetActiveBattlesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list active battles: %w", err)
	}

	armed := 0
	for _, b := range out.Battles {
		timer := dueTimer(b)
		if timer == nil {
			continue
		}

		if err := s.scheduler.Schedule(ctx, &scheduler.ScheduleInput{Timer: timer}); err != nil {
			s.metrics.TimerFailures.Inc()
			s.logger.Error().Err(err).Str("timer", timer.Key()).Msg("failed to recover battle timer")
			continue
		}
		armed++
	}

	s.logger.Info().Int("battles", len(out.Battles)).Int("armed", armed).Msg("battle timers recovered")
	return &RecoverTimersOutput{Armed: armed}, nil
}

// dueTimer derives the deadline a battle is waiting on from its persisted state
func dueTimer(b *models.Battle) *models.BattleTimer {
	switch {
	case b.IsFinished():
		return nil

	case b.Phase == models.BattlePhaseCountdown && b.CountdownStartedAt != nil:
		return &models.BattleTimer{
			BattleID: b.ID,
			Round:    b.CurrentRound + 1,
			Kind:     models.BattleTimerCountdown,
			FireAt:   b.CountdownStartedAt.Add(b.Config.CountdownDuration),
		}

	case b.RoundOpen():
		return &models.BattleTimer{
			BattleID: b.ID,
			Round:    b.CurrentRound,
			Kind:     models.BattleTimerRoundEnd,
			FireAt:   *b.RoundEndsAt,
		}

	case b.Phase == models.BattlePhaseRoundEnded && len(b.Rounds) > 0:
		return &models.BattleTimer{
			BattleID: b.ID,
			Round:    b.CurrentRound + 1,
			Kind:     models.BattleTimerIntermission,
			FireAt:   b.Rounds[len(b.Rounds)-1].ClosedAt.Add(b.Config.IntermissionDuration),
		}
	}

	return nil
}
