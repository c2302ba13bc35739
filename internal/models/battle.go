package models

import (
	"time"
)

// BattlePhase is the fine-grained lifecycle position of a battle
type BattlePhase string

const (
	// BattlePhaseInvitation indicates the opponent has not answered yet
	BattlePhaseInvitation BattlePhase = "invitation"

	// BattlePhaseCountdown indicates the battle was accepted and round one is about to open
	BattlePhaseCountdown BattlePhase = "countdown"

	// BattlePhaseActive indicates a round is open and gifts are scored
	BattlePhaseActive BattlePhase = "active"

	// BattlePhaseRoundEnded indicates a round closed and the next one has not opened yet
	BattlePhaseRoundEnded BattlePhase = "round_ended"

	// BattlePhaseFinished indicates the battle is over
	BattlePhaseFinished BattlePhase = "finished"
)

// BattleStatus is the coarse lifecycle state of a battle
type BattleStatus string

const (
	// BattleStatusPending indicates an invitation waiting for the opponent
	BattleStatusPending BattleStatus = "pending"

	// BattleStatusActive covers countdown, open rounds and intermissions
	BattleStatusActive BattleStatus = "active"

	// BattleStatusFinished is terminal
	BattleStatusFinished BattleStatus = "finished"
)

// IsPending returns true if the battle is waiting for the opponent
func (s BattleStatus) IsPending() bool {
	return s == BattleStatusPending
}

// IsActive returns true if the battle was accepted and has not finished
func (s BattleStatus) IsActive() bool {
	return s == BattleStatusActive
}

// IsFinished returns true if the battle is over
func (s BattleStatus) IsFinished() bool {
	return s == BattleStatusFinished
}

// BattleSide identifies one of the two scored participants
type BattleSide string

const (
	BattleSideChallenger BattleSide = "challenger"
	BattleSideOpponent   BattleSide = "opponent"
)

// StreamLiveness is the last known connection state of a participant's stream
type StreamLiveness string

const (
	StreamLivenessConnected    StreamLiveness = "connected"
	StreamLivenessReconnecting StreamLiveness = "reconnecting"
	StreamLivenessDisconnected StreamLiveness = "disconnected"
)

// BattleConfig holds the per-battle rules snapshotted at invitation time
type BattleConfig struct {
	// Rounds is the number of configured rounds
	Rounds int `json:"rounds"`

	// RoundDuration is how long each round stays open
	RoundDuration time.Duration `json:"round_duration"`

	// CountdownDuration is the delay between acceptance and round one
	CountdownDuration time.Duration `json:"countdown_duration"`

	// IntermissionDuration is the pause between rounds, zero opens the next round immediately
	IntermissionDuration time.Duration `json:"intermission_duration"`

	// ScoreRatio converts gift coin value into battle points
	ScoreRatio float64 `json:"score_ratio"`
}

// MajorityRounds returns the number of round wins that decides the battle
func (c BattleConfig) MajorityRounds() int {
	return c.Rounds/2 + 1
}

// SideScore is a score snapshot for one side
type SideScore struct {
	// Score is the number of battle points
	Score int64 `json:"score"`

	// GiftCount is the number of gift events counted
	GiftCount int `json:"gift_count"`

	// GiftValue is the total coin value of the counted gifts
	GiftValue int64 `json:"gift_value"`
}

// RoundSummary is the record of a closed round
type RoundSummary struct {
	// Round is the 1-based round number
	Round int `json:"round"`

	// Challenger is the challenger's final score for the round
	Challenger SideScore `json:"challenger"`

	// Opponent is the opponent's final score for the round
	Opponent SideScore `json:"opponent"`

	// WinnerID is the user who won the round, empty on a tie
	WinnerID string `json:"winner_id,omitempty"`

	// Forced indicates the round was closed by a timer or an administrative end
	Forced bool `json:"forced"`

	// ClosedAt is when the round closed
	ClosedAt time.Time `json:"closed_at"`
}

// BattleLogEntry is an append-only diagnostic entry
type BattleLogEntry struct {
	At      time.Time `json:"at"`
	Message string    `json:"message"`
}

// Battle is one scored competition between two broadcasters
type Battle struct {
	// ID is the unique identifier for the battle
	ID string `json:"id"`

	// Token is a human readable identifier
	Token string `json:"token"`

	// ChallengerID is the user who sent the invitation (the host)
	ChallengerID string `json:"challenger_id"`

	// OpponentID is the invited user
	OpponentID string `json:"opponent_id"`

	// HostStreamID is the challenger's live stream
	HostStreamID string `json:"host_stream_id"`

	// OpponentStreamID is the opponent's live stream at invitation time, empty if none
	OpponentStreamID string `json:"opponent_stream_id,omitempty"`

	// CoHostStreamIDs are the host's co-host streams snapshotted at invitation time
	CoHostStreamIDs []string `json:"co_host_stream_ids"`

	// Phase is the fine-grained lifecycle position
	Phase BattlePhase `json:"phase"`

	// Status is the coarse lifecycle state
	Status BattleStatus `json:"status"`

	// Config holds the battle rules
	Config BattleConfig `json:"config"`

	// CurrentRound is the 1-based index of the open or last round, zero before round one
	CurrentRound int `json:"current_round"`

	// ChallengerRound is the challenger's score in the current round
	ChallengerRound SideScore `json:"challenger_round"`

	// OpponentRound is the opponent's score in the current round
	OpponentRound SideScore `json:"opponent_round"`

	// ChallengerTotal is the challenger's cumulative score across rounds
	ChallengerTotal SideScore `json:"challenger_total"`

	// OpponentTotal is the opponent's cumulative score across rounds
	OpponentTotal SideScore `json:"opponent_total"`

	// TotalGiftValue is the coin value of all counted gifts on both sides
	TotalGiftValue int64 `json:"total_gift_value"`

	// ChallengerRoundWins is the number of rounds won by the challenger
	ChallengerRoundWins int `json:"challenger_round_wins"`

	// OpponentRoundWins is the number of rounds won by the opponent
	OpponentRoundWins int `json:"opponent_round_wins"`

	// Rounds holds the closed round summaries in order
	Rounds []*RoundSummary `json:"rounds"`

	// WinnerID is set only once the battle is finished, empty on a draw
	WinnerID string `json:"winner_id,omitempty"`

	// ErrorLog holds diagnostic entries
	ErrorLog []BattleLogEntry `json:"error_log,omitempty"`

	// Liveness is the last known stream state per participant user ID
	Liveness map[string]StreamLiveness `json:"liveness,omitempty"`

	// EventSequence is the sequence number of the last event fanned out for this battle
	EventSequence int64 `json:"event_sequence"`

	CreatedAt          time.Time  `json:"created_at"`
	CountdownStartedAt *time.Time `json:"countdown_started_at,omitempty"`
	RoundStartedAt     *time.Time `json:"round_started_at,omitempty"`
	RoundEndsAt        *time.Time `json:"round_ends_at,omitempty"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	EndedAt            *time.Time `json:"ended_at,omitempty"`
	LastActivityAt     *time.Time `json:"last_activity_at,omitempty"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// IsFinished returns true once the battle can no longer change
func (b *Battle) IsFinished() bool {
	return b.Status.IsFinished()
}

// RoundOpen returns true if a round is currently accepting scored gifts
func (b *Battle) RoundOpen() bool {
	return b.Phase == BattlePhaseActive && b.RoundStartedAt != nil && b.RoundEndsAt != nil
}

// SideOf returns the side a user scores for
func (b *Battle) SideOf(userID string) (BattleSide, bool) {
	switch userID {
	case "":
		return "", false
	case b.ChallengerID:
		return BattleSideChallenger, true
	case b.OpponentID:
		return BattleSideOpponent, true
	}
	return "", false
}

// StreamFor returns the stream a side broadcasts on, falling back to the host stream
func (b *Battle) StreamFor(side BattleSide) string {
	if side == BattleSideOpponent && b.OpponentStreamID != "" {
		return b.OpponentStreamID
	}
	return b.HostStreamID
}

// StreamIDs returns the resolved stream set: host, opponent and co-hosts, de-duplicated, empty IDs dropped
func (b *Battle) StreamIDs() []string {
	seen := make(map[string]bool, 2+len(b.CoHostStreamIDs))
	ids := make([]string, 0, 2+len(b.CoHostStreamIDs))

	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}

	add(b.HostStreamID)
	add(b.OpponentStreamID)
	for _, id := range b.CoHostStreamIDs {
		add(id)
	}

	return ids
}

// CoversStream returns true if the stream belongs to the battle's resolved set
func (b *Battle) CoversStream(streamID string) bool {
	for _, id := range b.StreamIDs() {
		if id == streamID {
			return true
		}
	}
	return false
}

// AppendLog adds a diagnostic entry
func (b *Battle) AppendLog(at time.Time, message string) {
	b.ErrorLog = append(b.ErrorLog, BattleLogEntry{At: at, Message: message})
}
