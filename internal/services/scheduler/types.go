package scheduler

import (
	"time"

	"github.com/KirkDiggler/pkbattle/internal/common/clock"
	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/KirkDiggler/pkbattle/internal/observability"
	"github.com/rs/zerolog"
)

// Config holds configuration for the gocron scheduler
type Config struct {
	Clock   clock.Clock
	Logger  *zerolog.Logger
	Metrics *observability.Metrics

	// HandlerTimeout bounds each handler call
	HandlerTimeout time.Duration
}

type ScheduleInput struct {
	Timer *models.BattleTimer
}

type CancelInput struct {
	BattleID string
}

// SchedulerError is a custom error type for scheduler errors
type SchedulerError string

// Error implements the error interface
func (e SchedulerError) Error() string {
	return string(e)
}

const (
	ErrNilConfig  SchedulerError = "config cannot be nil"
	ErrNilClock   SchedulerError = "clock cannot be nil"
	ErrNilTimer   SchedulerError = "timer cannot be nil"
	ErrMissingID  SchedulerError = "battle ID is required"
	ErrNotRunning SchedulerError = "scheduler is shut down"
)
