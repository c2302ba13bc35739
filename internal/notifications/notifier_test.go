package notifications_test

import (
	"bytes"
	"context"
	"errors"
	. "github.com/KirkDiggler/pkbattle/internal/notifications"
	"math/rand"
	"testing"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/KirkDiggler/pkbattle/internal/notifications/mocks"
	profileRepo "github.com/KirkDiggler/pkbattle/internal/repositories/profile"
	profileMocks "github.com/KirkDiggler/pkbattle/internal/repositories/profile/mocks"
	"github.com/KirkDiggler/pkbattle/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type NotifierTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockSession *mocks.MockSession
	mockProfile *profileMocks.MockRepository
	messaging   messaging.Service
	ctx         context.Context
	battle      *models.Battle
}

func (s *NotifierTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSession = mocks.NewMockSession(s.mockCtrl)
	s.mockProfile = profileMocks.NewMockRepository(s.mockCtrl)
	s.ctx = context.Background()

	msgs, err := messaging.New(&messaging.Config{Rand: rand.New(rand.NewSource(7))})
	s.Require().NoError(err)
	s.messaging = msgs

	s.battle = &models.Battle{
		ID:           "battle-1",
		Token:        "ada-vs-bo-battle-1",
		ChallengerID: "user-a",
		OpponentID:   "user-b",
		Phase:        models.BattlePhaseInvitation,
		Config:       models.BattleConfig{Rounds: 3, RoundDuration: 5 * time.Minute},
	}
}

func (s *NotifierTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestNotifierTestSuite(t *testing.T) {
	suite.Run(t, new(NotifierTestSuite))
}

func (s *NotifierTestSuite) expectProfiles(profiles map[string]*models.Profile) {
	s.mockProfile.EXPECT().
		GetProfiles(gomock.Any(), &profileRepo.GetProfilesInput{UserIDs: []string{"user-a", "user-b"}}).
		Return(&profileRepo.GetProfilesOutput{Profiles: profiles}, nil)
}

func (s *NotifierTestSuite) newDiscord() *DiscordNotifier {
	n, err := NewDiscord(&DiscordConfig{Session: s.mockSession, ProfileRepo: s.mockProfile, Messaging: s.messaging})
	s.Require().NoError(err)
	return n
}

func (s *NotifierTestSuite) TestNewDiscordValidation() {
	_, err := NewDiscord(nil)
	s.Error(err)

	_, err = NewDiscord(&DiscordConfig{ProfileRepo: s.mockProfile, Messaging: s.messaging})
	s.EqualError(err, "token cannot be empty")
}

func (s *NotifierTestSuite) TestInvitationGoesToOpponentOnly() {
	s.expectProfiles(map[string]*models.Profile{
		"user-a": {ID: "user-a", DisplayName: "Ada", DiscordUserID: "discord-a"},
		"user-b": {ID: "user-b", DisplayName: "Bo", DiscordUserID: "discord-b"},
	})

	s.mockSession.EXPECT().
		UserChannelCreate("discord-b", gomock.Any()).
		Return(&discordgo.Channel{ID: "dm-b"}, nil)
	s.mockSession.EXPECT().
		ChannelMessageSendEmbed("dm-b", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
			s.Equal("Battle invitation", embed.Title)
			s.Contains(embed.Description, "Ada")
			s.Equal("Battle ada-vs-bo-battle-1", embed.Footer.Text)
			s.Require().Len(embed.Fields, 2)
			s.Equal("3", embed.Fields[0].Value)
			return &discordgo.Message{ID: "msg-1"}, nil
		})

	s.NoError(s.newDiscord().Notify(s.ctx, &NotifyInput{Kind: KindInvitation, Battle: s.battle}))
}

func (s *NotifierTestSuite) TestBattleResultSkipsUnlinkedAndJoinsErrors() {
	s.battle.Phase = models.BattlePhaseFinished
	s.battle.WinnerID = "user-a"
	s.battle.ChallengerRoundWins = 2

	s.expectProfiles(map[string]*models.Profile{
		"user-a": {ID: "user-a", DisplayName: "Ada", DiscordUserID: "discord-a"},
	})

	s.mockSession.EXPECT().
		UserChannelCreate("discord-a", gomock.Any()).
		Return(nil, errors.New("cannot DM user"))

	err := s.newDiscord().Notify(s.ctx, &NotifyInput{Kind: KindBattleResult, Battle: s.battle})
	s.ErrorContains(err, "cannot DM user")
}

func (s *NotifierTestSuite) TestBattleResultEmbedColors() {
	s.battle.Phase = models.BattlePhaseFinished
	s.battle.WinnerID = "user-b"
	s.battle.OpponentRoundWins = 2
	s.battle.TotalGiftValue = 900

	s.expectProfiles(map[string]*models.Profile{
		"user-a": {ID: "user-a", DisplayName: "Ada", DiscordUserID: "discord-a"},
		"user-b": {ID: "user-b", DisplayName: "Bo", DiscordUserID: "discord-b"},
	})

	colors := map[string]int{}
	s.mockSession.EXPECT().UserChannelCreate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(id string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
			return &discordgo.Channel{ID: "dm-" + id}, nil
		}).Times(2)
	s.mockSession.EXPECT().ChannelMessageSendEmbed(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
			colors[channelID] = embed.Color
			s.Equal("900", embed.Fields[2].Value)
			return &discordgo.Message{}, nil
		}).Times(2)

	s.NoError(s.newDiscord().Notify(s.ctx, &NotifyInput{Kind: KindBattleResult, Battle: s.battle}))
	s.Equal(ColorLoss, colors["dm-discord-a"])
	s.Equal(ColorWin, colors["dm-discord-b"])
}

func (s *NotifierTestSuite) TestRoundResultRequiresRound() {
	s.expectProfiles(map[string]*models.Profile{})

	err := s.newDiscord().Notify(s.ctx, &NotifyInput{Kind: KindRoundResult, Battle: s.battle})
	s.Error(err)
}

func (s *NotifierTestSuite) TestLogNotifierWritesEveryRecipient() {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	n, err := NewLog(&LogConfig{Messaging: s.messaging, Logger: &logger})
	s.Require().NoError(err)

	s.battle.Phase = models.BattlePhaseRoundEnded
	round := &models.RoundSummary{
		Round:      1,
		Challenger: models.SideScore{Score: 50},
		Opponent:   models.SideScore{Score: 20},
		WinnerID:   "user-a",
	}

	s.Require().NoError(n.Notify(s.ctx, &NotifyInput{Kind: KindRoundResult, Battle: s.battle, Round: round}))
	s.Contains(buf.String(), `"user_id":"user-a"`)
	s.Contains(buf.String(), `"user_id":"user-b"`)
	s.Contains(buf.String(), "user-a 50 : 20 user-b")
}
