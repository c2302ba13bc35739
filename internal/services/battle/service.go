package battle

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/common/clock"
	"github.com/KirkDiggler/pkbattle/internal/common/uuid"
	"github.com/KirkDiggler/pkbattle/internal/lock"
	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/KirkDiggler/pkbattle/internal/notifications"
	"github.com/KirkDiggler/pkbattle/internal/observability"
	battleRepo "github.com/KirkDiggler/pkbattle/internal/repositories/battle"
	streamRepo "github.com/KirkDiggler/pkbattle/internal/repositories/stream"
	"github.com/KirkDiggler/pkbattle/internal/services/fanout"
	"github.com/KirkDiggler/pkbattle/internal/services/gift"
	"github.com/KirkDiggler/pkbattle/internal/services/leaderboard"
	"github.com/KirkDiggler/pkbattle/internal/services/scheduler"
	"github.com/KirkDiggler/pkbattle/internal/services/scoring"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const (
	battleLockPrefix     = "battle:"
	streamLockPrefix     = "stream:"
	defaultNotifyTimeout = 5 * time.Second
)

type service struct {
	battleRepo    battleRepo.Repository
	streamRepo    streamRepo.Repository
	giftService   gift.Service
	scoring       scoring.Service
	leaderboard   leaderboard.Service
	locker        lock.Locker
	scheduler     scheduler.Scheduler
	broadcaster   fanout.Broadcaster
	notifier      notifications.Notifier
	defaults      models.BattleConfig
	lockTTL       time.Duration
	lockWait      time.Duration
	notifyTimeout time.Duration
	clock         clock.Clock
	uuidGenerator uuid.UUID
	logger        *zerolog.Logger
	metrics       *observability.Metrics
}

// New creates a new battle service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.BattleRepo == nil {
		return nil, ErrNilBattleRepo
	}

	if cfg.StreamRepo == nil {
		return nil, ErrNilStreamRepo
	}

	if cfg.GiftService == nil {
		return nil, ErrNilGiftService
	}

	if cfg.Scoring == nil {
		return nil, ErrNilScoring
	}

	if cfg.Locker == nil {
		return nil, ErrNilLocker
	}

	if cfg.Scheduler == nil {
		return nil, ErrNilScheduler
	}

	if cfg.Broadcaster == nil {
		return nil, ErrNilBroadcaster
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	if err := validateBattleConfig(cfg.Defaults); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = observability.NopLogger()
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
	}

	notifyTimeout := cfg.NotifyTimeout
	if notifyTimeout <= 0 {
		notifyTimeout = defaultNotifyTimeout
	}

	return &service{
		battleRepo:    cfg.BattleRepo,
		streamRepo:    cfg.StreamRepo,
		giftService:   cfg.GiftService,
		scoring:       cfg.Scoring,
		leaderboard:   cfg.Leaderboard,
		locker:        cfg.Locker,
		scheduler:     cfg.Scheduler,
		broadcaster:   cfg.Broadcaster,
		notifier:      cfg.Notifier,
		defaults:      cfg.Defaults,
		lockTTL:       cfg.LockTTL,
		lockWait:      cfg.LockWait,
		notifyTimeout: notifyTimeout,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        logger,
		metrics:       metrics,
	}, nil
}

func validateBattleConfig(c models.BattleConfig) error {
	if c.Rounds < 1 || c.RoundDuration <= 0 || c.ScoreRatio <= 0 {
		return ErrInvalidConfig
	}

	if c.CountdownDuration < 0 || c.IntermissionDuration < 0 {
		return ErrInvalidConfig
	}

	return nil
}

// pendingEvent is a battle event produced under the lock and enqueued once the save succeeds
type pendingEvent struct {
	eventType models.BattleEventType
	round     *models.RoundSummary
}

// change is what a mutation asks the service to do besides saving the battle
type change struct {
	// noop skips the save and everything below
	noop bool

	events        []pendingEvent
	arm           *models.BattleTimer
	cancelTimer   bool
	notifications []*notifications.NotifyInput
}

func (c *change) emit(eventType models.BattleEventType, round *models.RoundSummary) {
	c.events = append(c.events, pendingEvent{eventType: eventType, round: round})
}

func (c *change) notify(kind notifications.Kind, b *models.Battle, round *models.RoundSummary) {
	c.notifications = append(c.notifications, &notifications.NotifyInput{Kind: kind, Battle: b, Round: round})
}

type mutation func(ctx context.Context, b *models.Battle, now time.Time) (*change, error)

// acquire takes the locks for keys in sorted order and returns a release func
func (s *service) acquire(ctx context.Context, keys ...string) (func(), error) {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	type held struct {
		key   string
		token string
	}
	var locks []held

	release := func() {
		for i := len(locks) - 1; i >= 0; i-- {
			err := s.locker.Release(context.WithoutCancel(ctx), &lock.ReleaseInput{Key: locks[i].key, Token: locks[i].token})
			if err != nil {
				s.logger.Warn().Err(err).Str("key", locks[i].key).Msg("failed to release lock")
			}
		}
	}

	for _, key := range sorted {
		out, err := s.locker.Acquire(ctx, &lock.AcquireInput{Key: key, TTL: s.lockTTL, WaitTimeout: s.lockWait})
		if err != nil {
			release()
			if errors.Is(err, lock.ErrLockTimeout) {
				s.metrics.LockContention.Inc()
				return nil, ErrBattleBusy
			}
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		locks = append(locks, held{key: key, token: out.Token})
	}

	return release, nil
}

func (s *service) getBattle(ctx context.Context, battleID string) (*models.Battle, error) {
	if battleID == "" {
		return nil, ErrBattleNotFound
	}

	b, err := s.battleRepo.GetBattle(ctx, &battleRepo.GetBattleInput{BattleID: battleID})
	if err != nil {
		if errors.Is(err, battleRepo.ErrBattleNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, fmt.Errorf("failed to get battle: %w", err)
	}

	return b, nil
}

// mutate runs one read-check-write of a battle under its lock. Events are
// enqueued and timers armed while the lock is held; notifications go out after.
func (s *service) mutate(ctx context.Context, battleID string, fn mutation) (*models.Battle, *change, error) {
	release, err := s.acquire(ctx, battleLockPrefix+battleID)
	if err != nil {
		return nil, nil, err
	}

	b, ch, err := s.mutateLocked(ctx, battleID, fn)
	release()
	if err != nil {
		return nil, nil, err
	}

	s.sendNotifications(ctx, ch)
	return b, ch, nil
}

func (s *service) mutateLocked(ctx context.Context, battleID string, fn mutation) (*models.Battle, *change, error) {
	b, err := s.getBattle(ctx, battleID)
	if err != nil {
		return nil, nil, err
	}

	now := s.clock.Now()
	phase := b.Phase

	ch, err := fn(ctx, b, now)
	if err != nil {
		return nil, nil, err
	}

	if ch == nil || ch.noop {
		return b, &change{noop: true}, nil
	}

	if err := s.commit(ctx, b, now, ch); err != nil {
		return nil, nil, err
	}

	if b.Phase != phase {
		s.metrics.BattleTransitions.WithLabelValues(string(b.Phase)).Inc()
		s.logger.Info().
			Str("battle_id", b.ID).
			Str("from", string(phase)).
			Str("to", string(b.Phase)).
			Int("round", b.CurrentRound).
			Msg("battle transition")
	}

	return b, ch, nil
}

// commit saves the battle, then enqueues its events and applies timer changes
func (s *service) commit(ctx context.Context, b *models.Battle, now time.Time, ch *change) error {
	first := b.EventSequence + 1
	b.EventSequence += int64(len(ch.events))
	b.UpdatedAt = now

	if err := s.battleRepo.SaveBattle(ctx, &battleRepo.SaveBattleInput{Battle: b}); err != nil {
		return fmt.Errorf("failed to save battle: %w", err)
	}

	for i, pending := range ch.events {
		event := &models.BattleEvent{
			Type:       pending.eventType,
			BattleID:   b.ID,
			Sequence:   first + int64(i),
			Battle:     b,
			Round:      pending.round,
			OccurredAt: now,
		}
		if err := s.broadcaster.Enqueue(ctx, event); err != nil {
			s.logger.Warn().
				Err(err).
				Str("battle_id", b.ID).
				Str("type", string(pending.eventType)).
				Int64("sequence", event.Sequence).
				Msg("failed to enqueue battle event")
		}
	}

	if ch.cancelTimer {
		if err := s.scheduler.Cancel(ctx, &scheduler.CancelInput{BattleID: b.ID}); err != nil {
			s.logger.Warn().Err(err).Str("battle_id", b.ID).Msg("failed to cancel battle timer")
		}
	}

	if ch.arm != nil {
		if err := s.scheduler.Schedule(ctx, &scheduler.ScheduleInput{Timer: ch.arm}); err != nil {
			s.metrics.TimerFailures.Inc()
			s.logger.Error().Err(err).Str("timer", ch.arm.Key()).Msg("failed to arm battle timer")
		}
	}

	return nil
}

// sendNotifications runs outside every lock; failures are logged and counted only
func (s *service) sendNotifications(ctx context.Context, ch *change) {
	if s.notifier == nil || ch == nil {
		return
	}

	base := context.WithoutCancel(ctx)
	for _, n := range ch.notifications {
		notifyCtx, cancel := context.WithTimeout(base, s.notifyTimeout)
		err := s.notifier.Notify(notifyCtx, n)
		cancel()

		if err != nil {
			s.metrics.NotifyFailures.WithLabelValues(string(n.Kind)).Inc()
			s.logger.Warn().Err(err).Str("battle_id", n.Battle.ID).Str("kind", string(n.Kind)).Msg("notification failed")
		}
	}
}

func (s *service) GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error) {
	if input == nil {
		return nil, ErrBattleNotFound
	}

	b, err := s.getBattle(ctx, input.BattleID)
	if err != nil {
		return nil, err
	}

	return &GetBattleOutput{Battle: b}, nil
}
