package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/common/clock"
	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/KirkDiggler/pkbattle/internal/observability"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const defaultHandlerTimeout = 10 * time.Second

type armedTimer struct {
	jobID uuid.UUID
	timer *models.BattleTimer
}

type gocronScheduler struct {
	scheduler      gocron.Scheduler
	clock          clock.Clock
	logger         *zerolog.Logger
	metrics        *observability.Metrics
	handlerTimeout time.Duration

	mu      sync.Mutex
	armed   map[string]armedTimer
	handler Handler
	stopped bool
}

// New creates a scheduler backed by gocron one-time jobs
func New(cfg *Config) (*gocronScheduler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	sched, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = observability.NopLogger()
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
	}

	timeout := cfg.HandlerTimeout
	if timeout <= 0 {
		timeout = defaultHandlerTimeout
	}

	return &gocronScheduler{
		scheduler:      sched,
		clock:          cfg.Clock,
		logger:         logger,
		metrics:        metrics,
		handlerTimeout: timeout,
		armed:          make(map[string]armedTimer),
	}, nil
}

func (s *gocronScheduler) SetHandler(handler Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = handler
}

// Start begins running jobs
func (s *gocronScheduler) Start() {
	s.scheduler.Start()
}

// Shutdown stops the scheduler and waits for running handlers
func (s *gocronScheduler) Shutdown() error {
	s.mu.Lock()
	s.stopped = true
	s.armed = make(map[string]armedTimer)
	s.mu.Unlock()

	return s.scheduler.Shutdown()
}

// Pending returns the timer currently armed for a battle
func (s *gocronScheduler) Pending(battleID string) (*models.BattleTimer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	armed, ok := s.armed[battleID]
	if !ok {
		return nil, false
	}
	return armed.timer, true
}

func (s *gocronScheduler) Schedule(ctx context.Context, input *ScheduleInput) error {
	if input == nil || input.Timer == nil {
		return ErrNilTimer
	}

	if input.Timer.BattleID == "" {
		return ErrMissingID
	}

	timer := *input.Timer

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrNotRunning
	}

	if previous, ok := s.armed[timer.BattleID]; ok {
		s.removeJob(previous)
		delete(s.armed, timer.BattleID)
	}

	job, err := s.newJob(&timer)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", timer.Key(), err)
	}

	s.armed[timer.BattleID] = armedTimer{jobID: job.ID(), timer: &timer}

	s.logger.Debug().
		Str("battle_id", timer.BattleID).
		Int("round", timer.Round).
		Str("kind", string(timer.Kind)).
		Time("fire_at", timer.FireAt).
		Msg("timer armed")

	return nil
}

// newJob registers the one-time job; deadlines already passed fire immediately
func (s *gocronScheduler) newJob(timer *models.BattleTimer) (gocron.Job, error) {
	task := gocron.NewTask(s.fire, timer)
	name := gocron.WithName(timer.Key())

	if timer.FireAt.After(s.clock.Now()) {
		job, err := s.scheduler.NewJob(
			gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(timer.FireAt)),
			task,
			name,
		)
		if err == nil || !errors.Is(err, gocron.ErrOneTimeJobStartDateTimePast) {
			return job, err
		}
	}

	return s.scheduler.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartImmediately()),
		task,
		name,
	)
}

func (s *gocronScheduler) Cancel(ctx context.Context, input *CancelInput) error {
	if input == nil || input.BattleID == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	armed, ok := s.armed[input.BattleID]
	if !ok {
		return nil
	}

	s.removeJob(armed)
	delete(s.armed, input.BattleID)

	s.logger.Debug().Str("battle_id", input.BattleID).Str("timer", armed.timer.Key()).Msg("timer cancelled")
	return nil
}

// removeJob must be called with mu held
func (s *gocronScheduler) removeJob(armed armedTimer) {
	if err := s.scheduler.RemoveJob(armed.jobID); err != nil && !errors.Is(err, gocron.ErrJobNotFound) {
		s.logger.Warn().Err(err).Str("timer", armed.timer.Key()).Msg("failed to remove job")
	}
}

func (s *gocronScheduler) fire(timer *models.BattleTimer) {
	s.mu.Lock()
	armed, ok := s.armed[timer.BattleID]
	if ok && armed.timer.Key() == timer.Key() {
		delete(s.armed, timer.BattleID)
	}
	handler := s.handler
	s.mu.Unlock()

	if handler == nil {
		s.logger.Warn().Str("timer", timer.Key()).Msg("timer fired with no handler")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.handlerTimeout)
	defer cancel()

	if err := handler(ctx, timer); err != nil {
		s.metrics.TimerFailures.Inc()
		s.logger.Error().Err(err).Str("timer", timer.Key()).Msg("timer handler failed")
	}
}
