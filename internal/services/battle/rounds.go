package battle

import (
	"context"
	"fmt"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/KirkDiggler/pkbattle/internal/notifications"
	"github.com/KirkDiggler/pkbattle/internal/services/scoring"
)

// openRound starts round n and arms its deadline
func openRound(b *models.Battle, now time.Time, n int, ch *change) {
	endsAt := now.Add(b.Config.RoundDuration)

	b.CurrentRound = n
	b.Phase = models.BattlePhaseActive
	b.RoundStartedAt = &now
	b.RoundEndsAt = &endsAt
	b.ChallengerRound = models.SideScore{}
	b.OpponentRound = models.SideScore{}
	b.LastActivityAt = &now

	ch.emit(models.BattleEventRoundStarted, nil)
	ch.arm = &models.BattleTimer{
		BattleID: b.ID,
		Round:    n,
		Kind:     models.BattleTimerRoundEnd,
		FireAt:   endsAt,
	}
}

// roundWindow is the open round's counting window, cut short at upTo when it is earlier.
// A gift at the exact instant the previous round closed belongs to that round.
func roundWindow(b *models.Battle, upTo time.Time) scoring.Window {
	w := scoring.Window{From: *b.RoundStartedAt, To: *b.RoundEndsAt}
	if n := len(b.Rounds); n > 0 && n < b.CurrentRound && !b.Rounds[n-1].ClosedAt.Before(w.From) {
		w.From = b.Rounds[n-1].ClosedAt.Add(time.Nanosecond)
	}
	if !upTo.IsZero() && upTo.Before(w.To) {
		w.To = upTo
	}
	return w
}

// rescore overwrites the open round's scores from the recorded gifts and reports whether they moved
func (s *service) rescore(ctx context.Context, b *models.Battle, upTo time.Time) (bool, error) {
	out, err := s.scoring.Score(ctx, &scoring.ScoreInput{
		Battle: b,
		Window: roundWindow(b, upTo),
	})
	if err != nil {
		return false, fmt.Errorf("failed to score round %d: %w", b.CurrentRound, err)
	}

	changed := out.Result.Challenger != b.ChallengerRound || out.Result.Opponent != b.OpponentRound

	b.ChallengerRound = out.Result.Challenger
	b.OpponentRound = out.Result.Opponent
	refreshTotals(b)

	return changed, nil
}

// refreshTotals sums the closed rounds plus the round still open
func refreshTotals(b *models.Battle) {
	var challenger, opponent models.SideScore
	for _, r := range b.Rounds {
		challenger = addScore(challenger, r.Challenger)
		opponent = addScore(opponent, r.Opponent)
	}

	if b.CurrentRound > len(b.Rounds) {
		challenger = addScore(challenger, b.ChallengerRound)
		opponent = addScore(opponent, b.OpponentRound)
	}

	b.ChallengerTotal = challenger
	b.OpponentTotal = opponent
	b.TotalGiftValue = challenger.GiftValue + opponent.GiftValue
}

func addScore(a, b models.SideScore) models.SideScore {
	return models.SideScore{
		Score:     a.Score + b.Score,
		GiftCount: a.GiftCount + b.GiftCount,
		GiftValue: a.GiftValue + b.GiftValue,
	}
}

// skipRound records the round still waiting on its countdown or intermission as forced and scoreless
func skipRound(b *models.Battle, now time.Time, ch *change) *models.RoundSummary {
	b.CurrentRound = len(b.Rounds) + 1
	b.ChallengerRound = models.SideScore{}
	b.OpponentRound = models.SideScore{}

	summary := &models.RoundSummary{
		Round:    b.CurrentRound,
		Forced:   true,
		ClosedAt: now,
	}

	b.Rounds = append(b.Rounds, summary)
	b.Phase = models.BattlePhaseRoundEnded
	b.LastActivityAt = &now
	refreshTotals(b)

	ch.cancelTimer = true
	ch.emit(models.BattleEventRoundEnded, summary)
	return summary
}

// closeRound does a final rescore and records the round; the strictly higher score wins it
func (s *service) closeRound(ctx context.Context, b *models.Battle, now time.Time, forced bool, ch *change) (*models.RoundSummary, error) {
	if _, err := s.rescore(ctx, b, now); err != nil {
		return nil, err
	}

	summary := &models.RoundSummary{
		Round:      b.CurrentRound,
		Challenger: b.ChallengerRound,
		Opponent:   b.OpponentRound,
		Forced:     forced,
		ClosedAt:   now,
	}

	switch {
	case b.ChallengerRound.Score > b.OpponentRound.Score:
		summary.WinnerID = b.ChallengerID
		b.ChallengerRoundWins++
	case b.OpponentRound.Score > b.ChallengerRound.Score:
		summary.WinnerID = b.OpponentID
		b.OpponentRoundWins++
	}

	b.Rounds = append(b.Rounds, summary)
	b.Phase = models.BattlePhaseRoundEnded
	b.LastActivityAt = &now
	refreshTotals(b)

	ch.emit(models.BattleEventRoundEnded, summary)
	return summary, nil
}

// decided reports whether a side holds a majority or every round has been played
func decided(b *models.Battle) bool {
	majority := b.Config.MajorityRounds()
	if b.ChallengerRoundWins >= majority || b.OpponentRoundWins >= majority {
		return true
	}
	return len(b.Rounds) >= b.Config.Rounds
}

// advance runs after a round closes: finish, wait out the intermission, or open the next round
func advance(b *models.Battle, now time.Time, ch *change) {
	if decided(b) {
		finish(b, now, ch)
		return
	}

	last := b.Rounds[len(b.Rounds)-1]
	ch.notify(notifications.KindRoundResult, b, last)

	if b.Config.IntermissionDuration > 0 {
		ch.arm = &models.BattleTimer{
			BattleID: b.ID,
			Round:    b.CurrentRound + 1,
			Kind:     models.BattleTimerIntermission,
			FireAt:   now.Add(b.Config.IntermissionDuration),
		}
		return
	}

	openRound(b, now, b.CurrentRound+1, ch)
}

// finish is terminal. The winner holds a majority, else more round wins, else nobody.
func finish(b *models.Battle, now time.Time, ch *change) {
	b.Status = models.BattleStatusFinished
	b.Phase = models.BattlePhaseFinished
	b.EndedAt = &now
	b.LastActivityAt = &now

	switch {
	case b.ChallengerRoundWins > b.OpponentRoundWins:
		b.WinnerID = b.ChallengerID
	case b.OpponentRoundWins > b.ChallengerRoundWins:
		b.WinnerID = b.OpponentID
	default:
		b.WinnerID = ""
	}

	ch.arm = nil
	ch.cancelTimer = true
	ch.emit(models.BattleEventEnded, nil)
	ch.notify(notifications.KindBattleResult, b, nil)
}
