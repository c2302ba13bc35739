package leaderboard

import (
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
	counterRepo "github.com/KirkDiggler/pkbattle/internal/repositories/counter"
	profileRepo "github.com/KirkDiggler/pkbattle/internal/repositories/profile"
	"github.com/rs/zerolog"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Config holds configuration for the leaderboard service
type Config struct {
	// Counter backs every ranking
	Counter counterRepo.Repository

	// ProfileRepo supplies display data
	ProfileRepo profileRepo.Repository

	// BattleTTL bounds how long battle scoped rankings outlive their last gift, zero keeps them
	BattleTTL time.Duration

	Logger *zerolog.Logger
}

type GetTopSendersInput struct {
	StreamID    string
	RecipientID string

	// Limit defaults to 10 and is capped at 100
	Limit int
}

type GetTopSendersOutput struct {
	Entries []*models.LeaderboardEntry
}

type GetBattleTopSendersInput struct {
	BattleID    string
	RecipientID string
	Limit       int
}

type GetRoundTotalsInput struct {
	BattleID    string
	RecipientID string
}

type GetRoundTotalsOutput struct {
	// Totals maps round number to coin value
	Totals map[int]int64
}
