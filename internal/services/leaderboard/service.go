package leaderboard

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/KirkDiggler/pkbattle/internal/observability"
	counterRepo "github.com/KirkDiggler/pkbattle/internal/repositories/counter"
	profileRepo "github.com/KirkDiggler/pkbattle/internal/repositories/profile"
	"github.com/rs/zerolog"
)

type service struct {
	counter     counterRepo.Repository
	profileRepo profileRepo.Repository
	battleTTL   time.Duration
	logger      *zerolog.Logger
}

// New creates a new leaderboard service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Counter == nil {
		return nil, ErrNilCounter
	}

	if cfg.ProfileRepo == nil {
		return nil, ErrNilProfileRepo
	}

	logger := cfg.Logger
	if logger == nil {
		logger = observability.NopLogger()
	}

	return &service{
		counter:     cfg.Counter,
		profileRepo: cfg.ProfileRepo,
		battleTTL:   cfg.BattleTTL,
		logger:      logger,
	}, nil
}

func streamKey(streamID, recipientID string) string {
	return fmt.Sprintf("stream:%s:%s", streamID, recipientID)
}

func battleKey(battleID, recipientID string) string {
	return fmt.Sprintf("battle:%s:%s", battleID, recipientID)
}

func roundsKey(battleID, recipientID string) string {
	return fmt.Sprintf("battle_rounds:%s:%s", battleID, recipientID)
}

// RecordGift increments the stream ranking and, for battle gifts, the battle ranking.
// Round totals only take gifts tagged with the round that counted them; round zero counts toward none.
func (s *service) RecordGift(ctx context.Context, event *models.GiftEvent) error {
	if event == nil || event.StreamID == "" || event.RecipientID == "" {
		return ErrMissingKey
	}

	if _, err := s.counter.Increment(ctx, &counterRepo.IncrementInput{
		Key:    streamKey(event.StreamID, event.RecipientID),
		Member: event.SenderID,
		By:     event.TotalValue,
	}); err != nil {
		return fmt.Errorf("failed to update stream ranking: %w", err)
	}

	if event.BattleID == "" {
		return nil
	}

	if _, err := s.counter.Increment(ctx, &counterRepo.IncrementInput{
		Key:    battleKey(event.BattleID, event.RecipientID),
		Member: event.SenderID,
		By:     event.TotalValue,
		TTL:    s.battleTTL,
	}); err != nil {
		return fmt.Errorf("failed to update battle ranking: %w", err)
	}

	if event.BattleRound > 0 {
		if _, err := s.counter.Increment(ctx, &counterRepo.IncrementInput{
			Key:    roundsKey(event.BattleID, event.RecipientID),
			Member: strconv.Itoa(event.BattleRound),
			By:     event.TotalValue,
			TTL:    s.battleTTL,
		}); err != nil {
			return fmt.Errorf("failed to update round totals: %w", err)
		}
	}

	return nil
}

func (s *service) GetTopSenders(ctx context.Context, input *GetTopSendersInput) (*GetTopSendersOutput, error) {
	if input == nil || input.StreamID == "" || input.RecipientID == "" {
		return nil, ErrMissingKey
	}

	return s.top(ctx, streamKey(input.StreamID, input.RecipientID), input.Limit)
}

func (s *service) GetBattleTopSenders(ctx context.Context, input *GetBattleTopSendersInput) (*GetTopSendersOutput, error) {
	if input == nil || input.BattleID == "" || input.RecipientID == "" {
		return nil, ErrMissingKey
	}

	return s.top(ctx, battleKey(input.BattleID, input.RecipientID), input.Limit)
}

func (s *service) GetRoundTotals(ctx context.Context, input *GetRoundTotalsInput) (*GetRoundTotalsOutput, error) {
	if input == nil || input.BattleID == "" || input.RecipientID == "" {
		return nil, ErrMissingKey
	}

	out, err := s.counter.Top(ctx, &counterRepo.TopInput{Key: roundsKey(input.BattleID, input.RecipientID)})
	if err != nil {
		return nil, fmt.Errorf("failed to read round totals: %w", err)
	}

	totals := make(map[int]int64, len(out.Entries))
	for _, e := range out.Entries {
		round, err := strconv.Atoi(e.Member)
		if err != nil {
			continue
		}
		totals[round] = e.Score
	}

	return &GetRoundTotalsOutput{Totals: totals}, nil
}

// top ranks a key and decorates it with display data; a missing key is an empty ranking
func (s *service) top(ctx context.Context, key string, limit int) (*GetTopSendersOutput, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	out, err := s.counter.Top(ctx, &counterRepo.TopInput{Key: key, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to read ranking: %w", err)
	}

	entries := make([]*models.LeaderboardEntry, 0, len(out.Entries))
	userIDs := make([]string, 0, len(out.Entries))
	for i, e := range out.Entries {
		entries = append(entries, &models.LeaderboardEntry{
			Rank:   i + 1,
			UserID: e.Member,
			Amount: e.Score,
		})
		userIDs = append(userIDs, e.Member)
	}

	if len(userIDs) == 0 {
		return &GetTopSendersOutput{Entries: entries}, nil
	}

	profiles, err := s.profileRepo.GetProfiles(ctx, &profileRepo.GetProfilesInput{UserIDs: userIDs})
	if err != nil {
		// Rankings are still useful without names
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to load leaderboard profiles")
		return &GetTopSendersOutput{Entries: entries}, nil
	}

	for _, entry := range entries {
		if p, ok := profiles.Profiles[entry.UserID]; ok {
			entry.DisplayName = p.DisplayName
			entry.AvatarURL = p.AvatarURL
		}
	}

	return &GetTopSendersOutput{Entries: entries}, nil
}
