package battle

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newBattle(id string) *models.Battle {
	return &models.Battle{
		ID:               id,
		ChallengerID:     "host",
		OpponentID:       "rival",
		HostStreamID:     "stream-host",
		OpponentStreamID: "stream-rival",
		CoHostStreamIDs:  []string{"stream-cohost", "stream-host"},
		Phase:            models.BattlePhaseInvitation,
		Status:           models.BattleStatusPending,
		Config: models.BattleConfig{
			Rounds:        3,
			RoundDuration: time.Minute,
			ScoreRatio:    0.5,
		},
		CreatedAt: s.testNow,
		UpdatedAt: s.testNow,
	}
}

func (s *RedisRepositoryTestSuite) TestNewRedisValidation() {
	_, err := NewRedis(nil)
	s.Error(err)

	_, err = NewRedis(&Config{})
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetBattle() {
	ctx := context.Background()
	b := s.newBattle("battle-1")
	b.ChallengerRound = models.SideScore{Score: 50, GiftCount: 1, GiftValue: 100}

	s.Require().NoError(s.repo.SaveBattle(ctx, &SaveBattleInput{Battle: b}))

	got, err := s.repo.GetBattle(ctx, &GetBattleInput{BattleID: "battle-1"})
	s.Require().NoError(err)
	s.Equal("battle-1", got.ID)
	s.Equal(models.BattleStatusPending, got.Status)
	s.Equal(int64(50), got.ChallengerRound.Score)
	s.Equal(time.Minute, got.Config.RoundDuration)
	s.True(s.testNow.Equal(got.CreatedAt))
}

func (s *RedisRepositoryTestSuite) TestGetBattleNotFound() {
	_, err := s.repo.GetBattle(context.Background(), &GetBattleInput{BattleID: "missing"})
	s.ErrorIs(err, ErrBattleNotFound)
}

func (s *RedisRepositoryTestSuite) TestEveryStreamResolvesToBattle() {
	ctx := context.Background()
	s.Require().NoError(s.repo.SaveBattle(ctx, &SaveBattleInput{Battle: s.newBattle("battle-1")}))

	for _, streamID := range []string{"stream-host", "stream-rival", "stream-cohost"} {
		got, err := s.repo.GetActiveBattleByStream(ctx, &GetActiveBattleByStreamInput{StreamID: streamID})
		s.Require().NoError(err, streamID)
		s.Equal("battle-1", got.ID)
	}

	_, err := s.repo.GetActiveBattleByStream(ctx, &GetActiveBattleByStreamInput{StreamID: "stream-other"})
	s.ErrorIs(err, ErrBattleNotFound)
}

func (s *RedisRepositoryTestSuite) TestFinishedBattleReleasesStreams() {
	ctx := context.Background()
	b := s.newBattle("battle-1")
	s.Require().NoError(s.repo.SaveBattle(ctx, &SaveBattleInput{Battle: b}))

	b.Status = models.BattleStatusFinished
	b.Phase = models.BattlePhaseFinished
	s.Require().NoError(s.repo.SaveBattle(ctx, &SaveBattleInput{Battle: b}))

	_, err := s.repo.GetActiveBattleByStream(ctx, &GetActiveBattleByStreamInput{StreamID: "stream-host"})
	s.ErrorIs(err, ErrBattleNotFound)
	s.False(s.mr.Exists("battle_stream:stream-host"))

	active, err := s.repo.GetActiveBattles(ctx, &GetActiveBattlesInput{})
	s.Require().NoError(err)
	s.Empty(active.Battles)
}

func (s *RedisRepositoryTestSuite) TestFinishingOldBattleKeepsNewerIndex() {
	ctx := context.Background()
	old := s.newBattle("battle-old")
	s.Require().NoError(s.repo.SaveBattle(ctx, &SaveBattleInput{Battle: old}))

	newer := s.newBattle("battle-new")
	s.Require().NoError(s.repo.SaveBattle(ctx, &SaveBattleInput{Battle: newer}))

	old.Status = models.BattleStatusFinished
	s.Require().NoError(s.repo.SaveBattle(ctx, &SaveBattleInput{Battle: old}))

	got, err := s.repo.GetActiveBattleByStream(ctx, &GetActiveBattleByStreamInput{StreamID: "stream-host"})
	s.Require().NoError(err)
	s.Equal("battle-new", got.ID)
}

func (s *RedisRepositoryTestSuite) TestGetActiveBattles() {
	ctx := context.Background()
	s.Require().NoError(s.repo.SaveBattle(ctx, &SaveBattleInput{Battle: s.newBattle("battle-1")}))

	second := s.newBattle("battle-2")
	second.HostStreamID = "stream-2"
	second.OpponentStreamID = ""
	second.CoHostStreamIDs = nil
	s.Require().NoError(s.repo.SaveBattle(ctx, &SaveBattleInput{Battle: second}))

	out, err := s.repo.GetActiveBattles(ctx, &GetActiveBattlesInput{})
	s.Require().NoError(err)
	s.Len(out.Battles, 2)
}
