package models

import (
	"time"
)

// BattleEventType is the kind of realtime battle event
type BattleEventType string

const (
	BattleEventInvited      BattleEventType = "battle_invited"
	BattleEventStarted      BattleEventType = "battle_started"
	BattleEventRoundStarted BattleEventType = "round_started"
	BattleEventScoreUpdated BattleEventType = "score_updated"
	BattleEventRoundEnded   BattleEventType = "round_ended"
	BattleEventEnded        BattleEventType = "battle_ended"
	BattleEventLiveness     BattleEventType = "liveness_changed"
)

// BattleEvent is the payload fanned out to every channel of a battle
type BattleEvent struct {
	// Type is the kind of event
	Type BattleEventType `json:"type"`

	// BattleID is the battle the event belongs to
	BattleID string `json:"battle_id"`

	// Sequence orders events of one battle; viewers discard anything older than what they saw
	Sequence int64 `json:"sequence"`

	// Battle is the full battle state after the change
	Battle *Battle `json:"battle"`

	// Round is the closed round for round_ended events
	Round *RoundSummary `json:"round,omitempty"`

	// OccurredAt is when the change happened
	OccurredAt time.Time `json:"occurred_at"`
}
