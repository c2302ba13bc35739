package battle

import "github.com/KirkDiggler/pkbattle/internal/models"

type SaveBattleInput struct {
	Battle *models.Battle
}

type GetBattleInput struct {
	BattleID string
}

type GetActiveBattleByStreamInput struct {
	StreamID string
}

type GetActiveBattlesInput struct {
}

type GetActiveBattlesOutput struct {
	Battles []*models.Battle
}
