package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
	giftRepo "github.com/KirkDiggler/pkbattle/internal/repositories/gift_event"
	giftMocks "github.com/KirkDiggler/pkbattle/internal/repositories/gift_event/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ScoringServiceTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockGiftRepo *giftMocks.MockRepository
	service      Service
	ctx          context.Context
	testNow      time.Time
	battle       *models.Battle
}

func (s *ScoringServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockGiftRepo = giftMocks.NewMockRepository(s.mockCtrl)

	svc, err := New(&Config{GiftRepo: s.mockGiftRepo})
	s.Require().NoError(err)
	s.service = svc

	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.battle = &models.Battle{
		ID:               "battle-1",
		ChallengerID:     "host",
		OpponentID:       "rival",
		HostStreamID:     "stream-host",
		OpponentStreamID: "stream-rival",
		CoHostStreamIDs:  []string{"stream-cohost"},
		Config:           models.BattleConfig{Rounds: 1, ScoreRatio: 0.5},
	}
}

func (s *ScoringServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestScoringServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ScoringServiceTestSuite))
}

func (s *ScoringServiceTestSuite) TestNewValidation() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrNilGiftRepo)
}

func (s *ScoringServiceTestSuite) TestScoreReadsResolvedStreams() {
	window := Window{From: s.testNow, To: s.testNow.Add(time.Minute)}

	s.mockGiftRepo.EXPECT().
		ListByStreams(s.ctx, &giftRepo.ListByStreamsInput{
			StreamIDs: []string{"stream-host", "stream-rival", "stream-cohost"},
			From:      window.From,
			To:        window.To,
		}).
		Return(&giftRepo.ListByStreamsOutput{Events: []*models.GiftEvent{
			{ID: "g1", StreamID: "stream-cohost", RecipientID: "host", UnitValue: 100, Quantity: 1, CreatedAt: s.testNow.Add(time.Second)},
			{ID: "g2", StreamID: "stream-rival", RecipientID: "rival", UnitValue: 50, Quantity: 1, CreatedAt: s.testNow.Add(time.Second)},
		}}, nil)

	out, err := s.service.Score(s.ctx, &ScoreInput{Battle: s.battle, Window: window})
	s.Require().NoError(err)
	s.Equal(2, out.Events)
	s.Equal(int64(50), out.Result.Challenger.Score)
	s.Equal(int64(25), out.Result.Opponent.Score)
}

func (s *ScoringServiceTestSuite) TestScorePropagatesRepositoryError() {
	s.mockGiftRepo.EXPECT().
		ListByStreams(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("redis down"))

	_, err := s.service.Score(s.ctx, &ScoreInput{Battle: s.battle})
	s.ErrorContains(err, "redis down")
}

func (s *ScoringServiceTestSuite) TestScoreNilBattle() {
	_, err := s.service.Score(s.ctx, &ScoreInput{})
	s.ErrorIs(err, ErrNilBattle)
}
