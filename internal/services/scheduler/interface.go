package scheduler

//go:generate mockgen -package=mocks -destination=mocks/mock_scheduler.go github.com/KirkDiggler/pkbattle/internal/services/scheduler Scheduler

import (
	"context"

	"github.com/KirkDiggler/pkbattle/internal/models"
)

// Handler is called when a battle timer fires
type Handler func(ctx context.Context, timer *models.BattleTimer) error

// Scheduler arms one deadline per battle
type Scheduler interface {
	// Schedule arms a timer, superseding any timer already armed for the battle
	Schedule(ctx context.Context, input *ScheduleInput) error

	// Cancel disarms the battle's timer; cancelling nothing is not an error
	Cancel(ctx context.Context, input *CancelInput) error

	// SetHandler sets the callback for fired timers
	SetHandler(handler Handler)
}
