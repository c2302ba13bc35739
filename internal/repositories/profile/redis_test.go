package profile

import (
	"context"
	"testing"

	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
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
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetProfile() {
	ctx := context.Background()
	s.Require().NoError(s.repo.SaveProfile(ctx, &SaveProfileInput{Profile: &models.Profile{
		ID:            "viewer",
		DisplayName:   "Viewer One",
		AvatarURL:     "https://cdn.example/v.png",
		DiscordUserID: "1234",
	}}))

	got, err := s.repo.GetProfile(ctx, &GetProfileInput{UserID: "viewer"})
	s.Require().NoError(err)
	s.Equal("Viewer One", got.DisplayName)
	s.Equal("1234", got.DiscordUserID)
}

func (s *RedisRepositoryTestSuite) TestGetProfileNotFound() {
	_, err := s.repo.GetProfile(context.Background(), &GetProfileInput{UserID: "missing"})
	s.ErrorIs(err, ErrProfileNotFound)
}

func (s *RedisRepositoryTestSuite) TestGetProfilesSkipsUnknown() {
	ctx := context.Background()
	s.Require().NoError(s.repo.SaveProfile(ctx, &SaveProfileInput{Profile: &models.Profile{ID: "a", DisplayName: "A"}}))
	s.Require().NoError(s.repo.SaveProfile(ctx, &SaveProfileInput{Profile: &models.Profile{ID: "b", DisplayName: "B"}}))

	out, err := s.repo.GetProfiles(ctx, &GetProfilesInput{UserIDs: []string{"a", "b", "ghost"}})
	s.Require().NoError(err)
	s.Len(out.Profiles, 2)
	s.Equal("B", out.Profiles["b"].DisplayName)
	s.Nil(out.Profiles["ghost"])
}
