package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/common/clock/mocks"
	counterRepo "github.com/KirkDiggler/pkbattle/internal/repositories/counter"
	counterMocks "github.com/KirkDiggler/pkbattle/internal/repositories/counter/mocks"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type LimiterTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *mocks.MockClock
	mr        *miniredis.Miniredis
	client    *redis.Client
	counter   counterRepo.Repository
	ctx       context.Context
	now       time.Time
}

func (s *LimiterTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	counter, err := counterRepo.NewRedis(&counterRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.counter = counter

	s.ctx = context.Background()
	s.now = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()
}

func (s *LimiterTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestLimiterTestSuite(t *testing.T) {
	suite.Run(t, new(LimiterTestSuite))
}

func (s *LimiterTestSuite) TestAllowsUpToLimitThenRejects() {
	limiter, err := New(&Config{Counter: s.counter, Clock: s.mockClock, Limit: 2, Window: time.Second})
	s.Require().NoError(err)

	for i := 0; i < 2; i++ {
		out, err := limiter.Allow(s.ctx, &AllowInput{Key: "gift:viewer"})
		s.Require().NoError(err)
		s.True(out.Allowed)
	}

	out, err := limiter.Allow(s.ctx, &AllowInput{Key: "gift:viewer"})
	s.Require().NoError(err)
	s.False(out.Allowed)
	s.Equal(int64(3), out.Count)
	s.Equal(s.now.Add(time.Second), out.ResetAt)

	// Other senders have their own window
	other, err := limiter.Allow(s.ctx, &AllowInput{Key: "gift:someone-else"})
	s.Require().NoError(err)
	s.True(other.Allowed)
}

func (s *LimiterTestSuite) TestNextWindowResets() {
	limiter, err := New(&Config{Counter: s.counter, Clock: s.mockClock, Limit: 1, Window: time.Second})
	s.Require().NoError(err)

	out, err := limiter.Allow(s.ctx, &AllowInput{Key: "gift:viewer"})
	s.Require().NoError(err)
	s.True(out.Allowed)

	out, err = limiter.Allow(s.ctx, &AllowInput{Key: "gift:viewer"})
	s.Require().NoError(err)
	s.False(out.Allowed)

	s.now = s.now.Add(time.Second)

	out, err = limiter.Allow(s.ctx, &AllowInput{Key: "gift:viewer"})
	s.Require().NoError(err)
	s.True(out.Allowed)
}

func (s *LimiterTestSuite) TestZeroLimitDisables() {
	mockCounter := counterMocks.NewMockRepository(s.mockCtrl)
	limiter, err := New(&Config{Counter: mockCounter, Clock: s.mockClock})
	s.Require().NoError(err)

	out, err := limiter.Allow(s.ctx, &AllowInput{Key: "gift:viewer"})
	s.Require().NoError(err)
	s.True(out.Allowed)
}

func (s *LimiterTestSuite) TestCounterErrorPropagates() {
	mockCounter := counterMocks.NewMockRepository(s.mockCtrl)
	mockCounter.EXPECT().Increment(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("boom"))

	limiter, err := New(&Config{Counter: mockCounter, Clock: s.mockClock, Limit: 1, Window: time.Second})
	s.Require().NoError(err)

	_, err = limiter.Allow(s.ctx, &AllowInput{Key: "gift:viewer"})
	s.ErrorContains(err, "boom")
}
