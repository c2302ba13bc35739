package messaging

import (
	"math/rand"
	"time"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	ToneNeutral     MessageTone = "neutral"
	ToneHype        MessageTone = "hype"
	ToneEncouraging MessageTone = "encouraging"
	ToneCelebration MessageTone = "celebration"
)

// Config contains configuration for the messaging service
type Config struct {
	// Rand picks between message variants, defaults to a time seeded source
	Rand *rand.Rand
}

type GetInvitationMessageInput struct {
	ChallengerName string
	Rounds         int
	RoundDuration  time.Duration
}

type GetInvitationMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}

type GetRoundResultMessageInput struct {
	Round int

	// WinnerName is empty on a tied round
	WinnerName string

	ChallengerName  string
	OpponentName    string
	ChallengerScore int64
	OpponentScore   int64
}

type GetRoundResultMessageOutput struct {
	Title   string
	Message string
}

type GetBattleResultMessageInput struct {
	// ReaderName is who the notice is for
	ReaderName string

	// WinnerName is empty on a draw
	WinnerName string

	ChallengerName string
	OpponentName   string
	ChallengerWins int
	OpponentWins   int
	TotalCoins     int64
}

type GetBattleResultMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}

type GetErrorMessageInput struct {
	// ErrorType is the stable API error code
	ErrorType string

	PreferredTone MessageTone
}

type GetErrorMessageOutput struct {
	Message string
	Tone    MessageTone
}
