package notifications

import (
	"github.com/KirkDiggler/pkbattle/internal/models"
)

// Kind is what a notification is about
type Kind string

const (
	// KindInvitation goes to the invited opponent
	KindInvitation Kind = "invitation"

	// KindRoundResult goes to both participants when a round closes
	KindRoundResult Kind = "round_result"

	// KindBattleResult goes to both participants when the battle finishes
	KindBattleResult Kind = "battle_result"
)

type NotifyInput struct {
	Kind   Kind
	Battle *models.Battle

	// Round is the closed round for round results
	Round *models.RoundSummary
}
