package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/common/clock"
	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/KirkDiggler/pkbattle/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type SchedulerTestSuite struct {
	suite.Suite
	scheduler *gocronScheduler
	metrics   *observability.Metrics
	ctx       context.Context

	mu    sync.Mutex
	fired []string
}

func (s *SchedulerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.metrics = observability.NewMetrics(prometheus.NewRegistry())
	s.fired = nil

	// gocron runs on wall time, so these tests use short real deadlines
	sched, err := New(&Config{Clock: clock.New(), Metrics: s.metrics, HandlerTimeout: time.Second})
	s.Require().NoError(err)
	s.scheduler = sched

	s.scheduler.SetHandler(func(_ context.Context, timer *models.BattleTimer) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.fired = append(s.fired, timer.Key())
		return nil
	})
	s.scheduler.Start()
}

func (s *SchedulerTestSuite) TearDownTest() {
	s.Require().NoError(s.scheduler.Shutdown())
}

func TestSchedulerTestSuite(t *testing.T) {
	suite.Run(t, new(SchedulerTestSuite))
}

func (s *SchedulerTestSuite) firedKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.fired...)
}

func (s *SchedulerTestSuite) timer(battleID string, round int, kind models.BattleTimerKind, in time.Duration) *models.BattleTimer {
	return &models.BattleTimer{
		BattleID: battleID,
		Round:    round,
		Kind:     kind,
		FireAt:   time.Now().Add(in),
	}
}

func (s *SchedulerTestSuite) TestNew() {
	_, err := New(nil)
	s.Equal(ErrNilConfig, err)

	_, err = New(&Config{})
	s.Equal(ErrNilClock, err)
}

func (s *SchedulerTestSuite) TestFiresAtDeadline() {
	err := s.scheduler.Schedule(s.ctx, &ScheduleInput{Timer: s.timer("battle-1", 1, models.BattleTimerRoundEnd, 50*time.Millisecond)})
	s.Require().NoError(err)

	pending, ok := s.scheduler.Pending("battle-1")
	s.Require().True(ok)
	s.Equal("battle-1:1:round_end", pending.Key())

	s.Eventually(func() bool {
		return len(s.firedKeys()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	s.Equal([]string{"battle-1:1:round_end"}, s.firedKeys())
	_, ok = s.scheduler.Pending("battle-1")
	s.False(ok)
}

func (s *SchedulerTestSuite) TestPastDeadlineFiresImmediately() {
	err := s.scheduler.Schedule(s.ctx, &ScheduleInput{Timer: s.timer("battle-1", 2, models.BattleTimerRoundEnd, -time.Minute)})
	s.Require().NoError(err)

	s.Eventually(func() bool {
		return len(s.firedKeys()) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func (s *SchedulerTestSuite) TestNewTimerSupersedesPrevious() {
	s.Require().NoError(s.scheduler.Schedule(s.ctx, &ScheduleInput{Timer: s.timer("battle-1", 1, models.BattleTimerCountdown, 300*time.Millisecond)}))
	s.Require().NoError(s.scheduler.Schedule(s.ctx, &ScheduleInput{Timer: s.timer("battle-1", 1, models.BattleTimerRoundEnd, 50*time.Millisecond)}))

	s.Eventually(func() bool {
		return len(s.firedKeys()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// Past the superseded deadline nothing else fires
	time.Sleep(400 * time.Millisecond)
	s.Equal([]string{"battle-1:1:round_end"}, s.firedKeys())
}

func (s *SchedulerTestSuite) TestTimersForDifferentBattlesAreIndependent() {
	s.Require().NoError(s.scheduler.Schedule(s.ctx, &ScheduleInput{Timer: s.timer("battle-1", 1, models.BattleTimerRoundEnd, 50*time.Millisecond)}))
	s.Require().NoError(s.scheduler.Schedule(s.ctx, &ScheduleInput{Timer: s.timer("battle-2", 1, models.BattleTimerRoundEnd, 50*time.Millisecond)}))

	s.Eventually(func() bool {
		return len(s.firedKeys()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	s.ElementsMatch([]string{"battle-1:1:round_end", "battle-2:1:round_end"}, s.firedKeys())
}

func (s *SchedulerTestSuite) TestCancel() {
	s.Require().NoError(s.scheduler.Schedule(s.ctx, &ScheduleInput{Timer: s.timer("battle-1", 1, models.BattleTimerRoundEnd, 100*time.Millisecond)}))
	s.Require().NoError(s.scheduler.Cancel(s.ctx, &CancelInput{BattleID: "battle-1"}))

	time.Sleep(300 * time.Millisecond)
	s.Empty(s.firedKeys())

	// Nothing armed is fine
	s.NoError(s.scheduler.Cancel(s.ctx, &CancelInput{BattleID: "battle-1"}))
	s.Equal(ErrMissingID, s.scheduler.Cancel(s.ctx, &CancelInput{}))
}

func (s *SchedulerTestSuite) TestHandlerFailureIsCounted() {
	s.scheduler.SetHandler(func(context.Context, *models.BattleTimer) error {
		return errors.New("battle store down")
	})

	s.Require().NoError(s.scheduler.Schedule(s.ctx, &ScheduleInput{Timer: s.timer("battle-1", 1, models.BattleTimerRoundEnd, 10*time.Millisecond)}))

	s.Eventually(func() bool {
		return testutil.ToFloat64(s.metrics.TimerFailures) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func (s *SchedulerTestSuite) TestScheduleValidation() {
	s.Equal(ErrNilTimer, s.scheduler.Schedule(s.ctx, &ScheduleInput{}))
	s.Equal(ErrMissingID, s.scheduler.Schedule(s.ctx, &ScheduleInput{Timer: &models.BattleTimer{}}))
}
