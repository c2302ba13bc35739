package scoring

import (
	"math"

	"github.com/KirkDiggler/pkbattle/internal/models"
)

// epsilon absorbs float error so 100 x 0.29 floors to 29, not 28
const epsilon = 1e-9

// Points converts a gift's coin value into battle points.
// A value whose total overflows an int64 never reached the ledger and scores nothing.
func Points(unitValue, quantity int64, ratio float64) int64 {
	if unitValue <= 0 || quantity <= 0 || ratio <= 0 || unitValue > math.MaxInt64/quantity {
		return 0
	}
	return int64(math.Floor(float64(unitValue*quantity)*ratio + epsilon))
}

// Compute sums the events that count for each side of the battle.
// An event counts when its stream belongs to the battle, its recipient is a participant
// and it was created inside the window. The result does not depend on event order.
func Compute(b *models.Battle, events []*models.GiftEvent, w Window) Result {
	var res Result
	if b == nil {
		return res
	}

	streams := make(map[string]bool)
	for _, id := range b.StreamIDs() {
		streams[id] = true
	}

	seen := make(map[string]bool, len(events))
	for _, e := range events {
		if e == nil || seen[e.ID] {
			continue
		}
		seen[e.ID] = true

		if !streams[e.StreamID] || !w.Contains(e.CreatedAt) {
			continue
		}

		side, ok := b.SideOf(e.RecipientID)
		if !ok || e.UnitValue <= 0 || e.Quantity <= 0 || e.UnitValue > math.MaxInt64/e.Quantity {
			continue
		}

		target := &res.Challenger
		if side == models.BattleSideOpponent {
			target = &res.Opponent
		}

		target.Score += Points(e.UnitValue, e.Quantity, b.Config.ScoreRatio)
		target.GiftCount++
		target.GiftValue += e.UnitValue * e.Quantity
	}

	return res
}
