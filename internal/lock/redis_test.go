package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisLockerTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	locker Locker
}

func (s *RedisLockerTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	locker, err := NewRedis(&Config{
		RedisClient: s.client,
		TTL:         time.Second,
		WaitTimeout: 50 * time.Millisecond,
		RetryDelay:  time.Millisecond,
	})
	s.Require().NoError(err)
	s.locker = locker
}

func (s *RedisLockerTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisLockerTestSuite(t *testing.T) {
	suite.Run(t, new(RedisLockerTestSuite))
}

func (s *RedisLockerTestSuite) TestNewRedisValidation() {
	_, err := NewRedis(nil)
	s.Error(err)

	_, err = NewRedis(&Config{})
	s.Error(err)
}

func (s *RedisLockerTestSuite) TestAcquireAndRelease() {
	ctx := context.Background()

	out, err := s.locker.Acquire(ctx, &AcquireInput{Key: "battle:b1"})
	s.Require().NoError(err)
	s.NotEmpty(out.Token)
	s.True(s.mr.Exists("lock:battle:b1"))

	s.Require().NoError(s.locker.Release(ctx, &ReleaseInput{Key: "battle:b1", Token: out.Token}))
	s.False(s.mr.Exists("lock:battle:b1"))
}

func (s *RedisLockerTestSuite) TestSecondAcquireTimesOut() {
	ctx := context.Background()

	_, err := s.locker.Acquire(ctx, &AcquireInput{Key: "battle:b1"})
	s.Require().NoError(err)

	_, err = s.locker.Acquire(ctx, &AcquireInput{Key: "battle:b1"})
	s.ErrorIs(err, ErrLockTimeout)
}

func (s *RedisLockerTestSuite) TestReleaseWithForeignToken() {
	ctx := context.Background()

	_, err := s.locker.Acquire(ctx, &AcquireInput{Key: "battle:b1"})
	s.Require().NoError(err)

	err = s.locker.Release(ctx, &ReleaseInput{Key: "battle:b1", Token: "not-mine"})
	s.ErrorIs(err, ErrLockNotHeld)
	s.True(s.mr.Exists("lock:battle:b1"))
}

func (s *RedisLockerTestSuite) TestExpiredLockCanBeTaken() {
	ctx := context.Background()

	_, err := s.locker.Acquire(ctx, &AcquireInput{Key: "battle:b1"})
	s.Require().NoError(err)

	s.mr.FastForward(2 * time.Second)

	_, err = s.locker.Acquire(ctx, &AcquireInput{Key: "battle:b1"})
	s.NoError(err)
}

func (s *RedisLockerTestSuite) TestMutualExclusion() {
	ctx := context.Background()
	locker, err := NewRedis(&Config{
		RedisClient: s.client,
		WaitTimeout: 2 * time.Second,
		RetryDelay:  time.Millisecond,
	})
	s.Require().NoError(err)

	var (
		wg      sync.WaitGroup
		holders int32
		maxSeen int32
	)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := locker.Acquire(ctx, &AcquireInput{Key: "shared"})
			if err != nil {
				return
			}
			n := atomic.AddInt32(&holders, 1)
			for {
				m := atomic.LoadInt32(&maxSeen)
				if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&holders, -1)
			_ = locker.Release(ctx, &ReleaseInput{Key: "shared", Token: out.Token})
		}()
	}

	wg.Wait()
	s.Equal(int32(1), maxSeen)
}
