package battle

import (
	"context"

	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/KirkDiggler/pkbattle/internal/services/leaderboard"
)

const defaultTopLimit = 10

// GetBattleStats builds the stats read model. Leaderboard data is advisory,
// so its failures leave the lists empty instead of failing the request.
func (s *service) GetBattleStats(ctx context.Context, input *GetBattleStatsInput) (*GetBattleStatsOutput, error) {
	if input == nil {
		return nil, ErrBattleNotFound
	}

	b, err := s.getBattle(ctx, input.BattleID)
	if err != nil {
		return nil, err
	}

	limit := input.TopLimit
	if limit <= 0 {
		limit = defaultTopLimit
	}

	stats := &BattleStats{
		BattleID:       b.ID,
		Token:          b.Token,
		Phase:          b.Phase,
		Status:         b.Status,
		CurrentRound:   b.CurrentRound,
		Rounds:         b.Rounds,
		Challenger:     s.sideStats(ctx, b, b.ChallengerID, b.ChallengerRound, b.ChallengerTotal, b.ChallengerRoundWins, limit),
		Opponent:       s.sideStats(ctx, b, b.OpponentID, b.OpponentRound, b.OpponentTotal, b.OpponentRoundWins, limit),
		TotalGiftValue: b.TotalGiftValue,
		WinnerID:       b.WinnerID,
		Sequence:       b.EventSequence,
		CreatedAt:      b.CreatedAt,
		StartedAt:      b.StartedAt,
		RoundEndsAt:    b.RoundEndsAt,
		EndedAt:        b.EndedAt,
	}

	return &GetBattleStatsOutput{Stats: stats}, nil
}

func (s *service) sideStats(ctx context.Context, b *models.Battle, userID string, round, total models.SideScore, wins, limit int) SideStats {
	side := SideStats{
		UserID:      userID,
		Round:       round,
		Total:       total,
		RoundWins:   wins,
		RoundTotals: map[int]int64{},
		TopSenders:  []*models.LeaderboardEntry{},
	}

	if s.leaderboard == nil {
		return side
	}

	top, err := s.leaderboard.GetBattleTopSenders(ctx, &leaderboard.GetBattleTopSendersInput{
		BattleID:    b.ID,
		RecipientID: userID,
		Limit:       limit,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("battle_id", b.ID).Str("user_id", userID).Msg("failed to load battle top senders")
	} else {
		side.TopSenders = top.Entries
	}

	totals, err := s.leaderboard.GetRoundTotals(ctx, &leaderboard.GetRoundTotalsInput{
		BattleID:    b.ID,
		RecipientID: userID,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("battle_id", b.ID).Str("user_id", userID).Msg("failed to load round totals")
	} else {
		side.RoundTotals = totals.Totals
	}

	return side
}
