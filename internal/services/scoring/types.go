package scoring

import (
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
	giftRepo "github.com/KirkDiggler/pkbattle/internal/repositories/gift_event"
)

// Config holds configuration for the scoring service
type Config struct {
	// GiftRepo is the source of truth for gift events
	GiftRepo giftRepo.Repository
}

// Window is an inclusive time range; a zero bound is open
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window
func (w Window) Contains(t time.Time) bool {
	if !w.From.IsZero() && t.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && t.After(w.To) {
		return false
	}
	return true
}

// Result is a score snapshot for both sides
type Result struct {
	Challenger models.SideScore
	Opponent   models.SideScore
}

// TotalValue is the coin value counted on both sides
func (r Result) TotalValue() int64 {
	return r.Challenger.GiftValue + r.Opponent.GiftValue
}

// ScoreInput contains parameters for recomputing a battle window
type ScoreInput struct {
	// Battle supplies the participants, resolved streams and score ratio
	Battle *models.Battle

	// Window bounds the gift creation times counted
	Window Window
}

// ScoreOutput contains the recomputed snapshot
type ScoreOutput struct {
	Result Result

	// Events is the number of gift events read, counted or not
	Events int
}
