package messaging

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type MessagingServiceTestSuite struct {
	suite.Suite
	service *service
	ctx     context.Context
}

func (s *MessagingServiceTestSuite) SetupTest() {
	svc, err := New(&Config{Rand: rand.New(rand.NewSource(42))})
	s.Require().NoError(err)
	s.service = svc
	s.ctx = context.Background()
}

func TestMessagingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MessagingServiceTestSuite))
}

func (s *MessagingServiceTestSuite) TestNewWithoutConfig() {
	svc, err := New(nil)
	s.Require().NoError(err)
	s.NotNil(svc.rand)
}

func (s *MessagingServiceTestSuite) TestInvitationNamesChallengerAndRules() {
	out, err := s.service.GetInvitationMessage(s.ctx, &GetInvitationMessageInput{
		ChallengerName: "Ada",
		Rounds:         3,
		RoundDuration:  5 * time.Minute,
	})
	s.Require().NoError(err)
	s.Equal("Battle invitation", out.Title)
	s.Contains(out.Message, "Ada")
	s.Contains(out.Message, "3 rounds of 5m0s")
	s.Equal(ToneHype, out.Tone)

	out, err = s.service.GetInvitationMessage(s.ctx, &GetInvitationMessageInput{Rounds: 1, RoundDuration: time.Minute})
	s.Require().NoError(err)
	s.Contains(out.Message, "Someone")
	s.Contains(out.Message, "1 round of 1m0s")
}

func (s *MessagingServiceTestSuite) TestRoundResult() {
	out, err := s.service.GetRoundResultMessage(s.ctx, &GetRoundResultMessageInput{
		Round:           2,
		WinnerName:      "Ada",
		ChallengerName:  "Ada",
		OpponentName:    "Bo",
		ChallengerScore: 100,
		OpponentScore:   25,
	})
	s.Require().NoError(err)
	s.Equal("Round 2 result", out.Title)
	s.Contains(out.Message, "Ada 100 : 25 Bo")

	tied, err := s.service.GetRoundResultMessage(s.ctx, &GetRoundResultMessageInput{Round: 1, ChallengerName: "Ada", OpponentName: "Bo"})
	s.Require().NoError(err)
	s.Equal("Round 1 is a tie", tied.Title)
}

func (s *MessagingServiceTestSuite) TestBattleResultPerReader() {
	input := &GetBattleResultMessageInput{
		WinnerName:     "Ada",
		ChallengerName: "Ada",
		OpponentName:   "Bo",
		ChallengerWins: 2,
		OpponentWins:   1,
		TotalCoins:     750,
	}

	input.ReaderName = "Ada"
	won, err := s.service.GetBattleResultMessage(s.ctx, input)
	s.Require().NoError(err)
	s.Equal("You won!", won.Title)
	s.Equal(ToneCelebration, won.Tone)
	s.Contains(won.Message, "Rounds 2 : 1, 750 coins")

	input.ReaderName = "Bo"
	lost, err := s.service.GetBattleResultMessage(s.ctx, input)
	s.Require().NoError(err)
	s.Equal(ToneEncouraging, lost.Tone)
	s.Contains(lost.Message, "Ada")

	input.WinnerName = ""
	draw, err := s.service.GetBattleResultMessage(s.ctx, input)
	s.Require().NoError(err)
	s.Equal("Battle ended in a draw", draw.Title)
}

func (s *MessagingServiceTestSuite) TestErrorMessages() {
	testCases := []struct {
		errorType string
		contains  string
	}{
		{errorType: "insufficient_funds", contains: ""},
		{errorType: "stream_not_live", contains: "live"},
		{errorType: "not_opponent", contains: "invited"},
		{errorType: "unheard_of", contains: "went wrong"},
	}

	for _, tc := range testCases {
		s.Run(tc.errorType, func() {
			out, err := s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{ErrorType: tc.errorType})
			s.Require().NoError(err)
			s.NotEmpty(out.Message)
			s.Contains(out.Message, tc.contains)
			s.Equal(ToneNeutral, out.Tone)
		})
	}
}
