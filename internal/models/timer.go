package models

import (
	"fmt"
	"time"
)

// BattleTimerKind is what a battle timer does when it fires
type BattleTimerKind string

const (
	// BattleTimerCountdown opens round one
	BattleTimerCountdown BattleTimerKind = "countdown"

	// BattleTimerRoundEnd force-ends the open round
	BattleTimerRoundEnd BattleTimerKind = "round_end"

	// BattleTimerIntermission opens the next round
	BattleTimerIntermission BattleTimerKind = "intermission"
)

// BattleTimer is a deferred transition keyed by battle and round
type BattleTimer struct {
	BattleID string          `json:"battle_id"`
	Round    int             `json:"round"`
	Kind     BattleTimerKind `json:"kind"`
	FireAt   time.Time       `json:"fire_at"`
}

// Key identifies the timer
func (t BattleTimer) Key() string {
	return fmt.Sprintf("%s:%d:%s", t.BattleID, t.Round, t.Kind)
}
