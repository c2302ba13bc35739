package http

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/KirkDiggler/pkbattle/internal/observability"
	streamRepo "github.com/KirkDiggler/pkbattle/internal/repositories/stream"
	streamMocks "github.com/KirkDiggler/pkbattle/internal/repositories/stream/mocks"
	"github.com/KirkDiggler/pkbattle/internal/services/battle"
	battleMocks "github.com/KirkDiggler/pkbattle/internal/services/battle/mocks"
	"github.com/KirkDiggler/pkbattle/internal/services/fanout"
	fanoutMocks "github.com/KirkDiggler/pkbattle/internal/services/fanout/mocks"
	"github.com/KirkDiggler/pkbattle/internal/services/gift"
	giftMocks "github.com/KirkDiggler/pkbattle/internal/services/gift/mocks"
	"github.com/KirkDiggler/pkbattle/internal/services/leaderboard"
	leaderboardMocks "github.com/KirkDiggler/pkbattle/internal/services/leaderboard/mocks"
	"github.com/KirkDiggler/pkbattle/internal/services/messaging"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type HandlerTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockBattles     *battleMocks.MockService
	mockGifts       *giftMocks.MockService
	mockLeaderboard *leaderboardMocks.MockService
	mockStreams     *streamMocks.MockRepository
	mockTransport   *fanoutMocks.MockTransport
	mockBroadcaster *fanoutMocks.MockBroadcaster
	registry        *prometheus.Registry
	metrics         *observability.Metrics
	app             *fiber.App
	now             time.Time
}

func (s *HandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockBattles = battleMocks.NewMockService(s.mockCtrl)
	s.mockGifts = giftMocks.NewMockService(s.mockCtrl)
	s.mockLeaderboard = leaderboardMocks.NewMockService(s.mockCtrl)
	s.mockStreams = streamMocks.NewMockRepository(s.mockCtrl)
	s.mockTransport = fanoutMocks.NewMockTransport(s.mockCtrl)
	s.mockBroadcaster = fanoutMocks.NewMockBroadcaster(s.mockCtrl)
	s.registry = prometheus.NewRegistry()
	s.metrics = observability.NewMetrics(s.registry)
	s.now = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)

	msgs, err := messaging.New(&messaging.Config{Rand: rand.New(rand.NewSource(1))})
	s.Require().NoError(err)

	h, err := New(&Config{
		BattleService: s.mockBattles,
		GiftService:   s.mockGifts,
		Leaderboard:   s.mockLeaderboard,
		StreamRepo:    s.mockStreams,
		Transport:     s.mockTransport,
		Broadcaster:   s.mockBroadcaster,
		Messaging:     msgs,
		Gatherer:      s.registry,
		KeepAlive:     time.Hour,
		Now:           func() time.Time { return s.now },
		Metrics:       s.metrics,
	})
	s.Require().NoError(err)

	s.app = h.NewApp(time.Second, 0)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) do(method, path, userID, body string) (int, map[string]any) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		s.Require().NoError(json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func (s *HandlerTestSuite) TestHealthz() {
	status, body := s.do(fiber.MethodGet, "/healthz", "", "")
	s.Equal(fiber.StatusOK, status)
	s.Equal("ok", body["status"])
}

func (s *HandlerTestSuite) TestStartBattleRequiresGatewayIdentity() {
	status, body := s.do(fiber.MethodPost, "/v1/battles", "", `{"host_stream_id":"stream-a","opponent_id":"user-b"}`)
	s.Equal(fiber.StatusUnauthorized, status)
	s.Equal(codeUnauthenticated, body["error"])
}

func (s *HandlerTestSuite) TestStartBattleCreated() {
	countdown := 0
	s.mockBattles.EXPECT().
		StartBattle(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, input *battle.StartBattleInput) (*battle.StartBattleOutput, error) {
			s.Equal("stream-a", input.HostStreamID)
			s.Equal("user-a", input.ChallengerID)
			s.Equal("user-b", input.OpponentID)
			s.Equal(3, input.Config.Rounds)
			s.Equal(90*time.Second, input.Config.RoundDuration)
			s.Require().NotNil(input.Config.CountdownDuration)
			s.Equal(time.Duration(countdown), *input.Config.CountdownDuration)
			s.Nil(input.Config.IntermissionDuration)
			return &battle.StartBattleOutput{Battle: &models.Battle{ID: "battle-1", Phase: models.BattlePhaseInvitation}}, nil
		})

	status, body := s.do(fiber.MethodPost, "/v1/battles", "user-a",
		`{"host_stream_id":"stream-a","opponent_id":"user-b","rounds":3,"round_duration_seconds":90,"countdown_seconds":0}`)
	s.Equal(fiber.StatusCreated, status)
	s.Equal("battle-1", body["id"])
}

func (s *HandlerTestSuite) TestStartBattleValidation() {
	status, body := s.do(fiber.MethodPost, "/v1/battles", "user-a", `{"host_stream_id":"stream-a"}`)
	s.Equal(fiber.StatusBadRequest, status)
	s.Equal(codeValidation, body["error"])
}

func (s *HandlerTestSuite) TestServiceErrorsMapToStatusAndCode() {
	testCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"stream not live", battle.ErrStreamNotLive, fiber.StatusUnprocessableEntity, codeStreamNotLive},
		{"already active", battle.ErrBattleAlreadyActive, fiber.StatusConflict, codeBattleAlreadyActive},
		{"not stream owner", battle.ErrNotStreamOwner, fiber.StatusForbidden, codeNotStreamOwner},
		{"invalid opponent", battle.ErrInvalidOpponent, fiber.StatusBadRequest, codeValidation},
		{"busy", battle.ErrBattleBusy, fiber.StatusServiceUnavailable, codeBattleBusy},
		{"unexpected", fmt.Errorf("failed to save battle: %w", io.ErrUnexpectedEOF), fiber.StatusInternalServerError, codeInternal},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockBattles.EXPECT().StartBattle(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			status, body := s.do(fiber.MethodPost, "/v1/battles", "user-a", `{"host_stream_id":"stream-a","opponent_id":"user-b"}`)
			s.Equal(tc.status, status)
			s.Equal(tc.code, body["error"])
			s.NotEmpty(body["message"])
			if tc.code == codeInternal {
				s.Nil(body["detail"])
			}
		})
	}
}

func (s *HandlerTestSuite) TestAcceptBattleNotOpponent() {
	s.mockBattles.EXPECT().
		AcceptBattle(gomock.Any(), &battle.AcceptBattleInput{BattleID: "battle-1", UserID: "user-c"}).
		Return(nil, battle.ErrNotOpponent)

	status, body := s.do(fiber.MethodPost, "/v1/battles/battle-1/accept", "user-c", "")
	s.Equal(fiber.StatusForbidden, status)
	s.Equal(codeNotOpponent, body["error"])
}

func (s *HandlerTestSuite) TestSendBattleGift() {
	s.mockBattles.EXPECT().
		SendGift(gomock.Any(), &battle.SendGiftInput{
			BattleID:       "battle-1",
			SenderID:       "viewer-1",
			RecipientID:    "user-b",
			GiftID:         "rose",
			UnitValue:      10,
			Quantity:       2,
			IdempotencyKey: "retry-1",
		}).
		Return(&battle.SendGiftOutput{Update: &battle.ScoreUpdate{
			BattleID:      "battle-1",
			Round:         1,
			Counted:       true,
			OpponentRound: models.SideScore{Score: 10, GiftCount: 1, GiftValue: 20},
			SenderBalance: 80,
		}}, nil)

	req := httptest.NewRequest(fiber.MethodPost, "/v1/battles/battle-1/gifts",
		strings.NewReader(`{"recipient_id":"user-b","gift_id":"rose","unit_value":10,"quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "viewer-1")
	req.Header.Set("Idempotency-Key", "retry-1")

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	var update battle.ScoreUpdate
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&update))
	s.True(update.Counted)
	s.Equal(int64(10), update.OpponentRound.Score)
	s.Equal(int64(80), update.SenderBalance)
}

func (s *HandlerTestSuite) TestSendBattleGiftErrors() {
	testCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not active", battle.ErrBattleNotActive, fiber.StatusConflict, codeBattleNotActive},
		{"wrong recipient", battle.ErrInvalidRecipient, fiber.StatusUnprocessableEntity, codeInvalidRecipient},
		{"broke", gift.ErrInsufficientFunds, fiber.StatusPaymentRequired, codeInsufficientFunds},
		{"spamming", gift.ErrRateLimited, fiber.StatusTooManyRequests, codeRateLimited},
		{"bad quantity", gift.ErrInvalidGift, fiber.StatusBadRequest, codeValidation},
		{"unknown battle", battle.ErrBattleNotFound, fiber.StatusNotFound, codeBattleNotFound},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockBattles.EXPECT().SendGift(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			status, body := s.do(fiber.MethodPost, "/v1/battles/battle-1/gifts", "viewer-1",
				`{"recipient_id":"user-b","gift_id":"rose","unit_value":10,"quantity":1}`)
			s.Equal(tc.status, status)
			s.Equal(tc.code, body["error"])
		})
	}
}

func (s *HandlerTestSuite) TestEndRoundAndEndBattle() {
	s.mockBattles.EXPECT().
		EndRound(gomock.Any(), &battle.EndRoundInput{BattleID: "battle-1", UserID: "user-a"}).
		Return(&battle.EndRoundOutput{
			Battle: &models.Battle{ID: "battle-1"},
			Round:  &models.RoundSummary{Round: 1, WinnerID: "user-a"},
		}, nil)

	status, body := s.do(fiber.MethodPost, "/v1/battles/battle-1/rounds/end", "user-a", "")
	s.Equal(fiber.StatusOK, status)
	s.Equal("user-a", body["round"].(map[string]any)["winner_id"])

	s.mockBattles.EXPECT().
		EndBattle(gomock.Any(), &battle.EndBattleInput{BattleID: "battle-1", UserID: "user-a", Reason: "stream crashed"}).
		Return(&battle.EndBattleOutput{Battle: &models.Battle{ID: "battle-1", Phase: models.BattlePhaseFinished}}, nil)

	status, body = s.do(fiber.MethodPost, "/v1/battles/battle-1/end", "user-a", `{"reason":"stream crashed"}`)
	s.Equal(fiber.StatusOK, status)
	s.Equal(string(models.BattlePhaseFinished), body["phase"])
}

func (s *HandlerTestSuite) TestGetBattleStats() {
	s.mockBattles.EXPECT().
		GetBattleStats(gomock.Any(), &battle.GetBattleStatsInput{BattleID: "battle-1", TopLimit: 3}).
		Return(&battle.GetBattleStatsOutput{Stats: &battle.BattleStats{BattleID: "battle-1", TotalGiftValue: 120}}, nil)

	status, body := s.do(fiber.MethodGet, "/v1/battles/battle-1/stats?limit=3", "", "")
	s.Equal(fiber.StatusOK, status)
	s.Equal(float64(120), body["total_gift_value"])
}

func (s *HandlerTestSuite) TestGetBattleNotFound() {
	s.mockBattles.EXPECT().
		GetBattle(gomock.Any(), &battle.GetBattleInput{BattleID: "missing"}).
		Return(nil, battle.ErrBattleNotFound)

	status, body := s.do(fiber.MethodGet, "/v1/battles/missing", "", "")
	s.Equal(fiber.StatusNotFound, status)
	s.Equal(codeBattleNotFound, body["error"])
}

func (s *HandlerTestSuite) TestSendStreamGift() {
	s.mockGifts.EXPECT().
		SendGift(gomock.Any(), &gift.SendGiftInput{
			StreamID:    "stream-b",
			SenderID:    "viewer-1",
			RecipientID: "user-b",
			GiftID:      "rose",
			UnitValue:   5,
			Quantity:    1,
		}).
		Return(&gift.SendGiftOutput{Event: &models.GiftEvent{ID: "gift-1", TotalValue: 5}, SenderBalance: 95}, nil)

	status, body := s.do(fiber.MethodPost, "/v1/streams/stream-b/gifts", "viewer-1",
		`{"recipient_id":"user-b","gift_id":"rose","unit_value":5,"quantity":1}`)
	s.Equal(fiber.StatusOK, status)
	s.Equal(float64(95), body["sender_balance"])
	s.Equal("gift-1", body["event"].(map[string]any)["id"])
}

func (s *HandlerTestSuite) TestTopSenders() {
	status, body := s.do(fiber.MethodGet, "/v1/streams/stream-b/top-senders", "", "")
	s.Equal(fiber.StatusBadRequest, status)
	s.Equal(codeValidation, body["error"])

	s.mockLeaderboard.EXPECT().
		GetTopSenders(gomock.Any(), &leaderboard.GetTopSendersInput{StreamID: "stream-b", RecipientID: "user-b", Limit: 5}).
		Return(&leaderboard.GetTopSendersOutput{Entries: []*models.LeaderboardEntry{{Rank: 1, UserID: "viewer-1", Amount: 300}}}, nil)

	status, body = s.do(fiber.MethodGet, "/v1/streams/stream-b/top-senders?recipient_id=user-b&limit=5", "", "")
	s.Equal(fiber.StatusOK, status)
	s.Len(body["entries"], 1)
}

func (s *HandlerTestSuite) TestPutStream() {
	s.mockStreams.EXPECT().
		SaveStream(gomock.Any(), &streamRepo.SaveStreamInput{Stream: &models.Stream{
			ID:              "stream-a",
			UserID:          "user-a",
			Status:          models.StreamStatusLive,
			CoHostStreamIDs: []string{"stream-c"},
			StartedAt:       s.now,
		}}).
		Return(nil)

	status, _ := s.do(fiber.MethodPut, "/v1/streams/stream-a", "", `{"user_id":"user-a","status":"live","co_host_stream_ids":["stream-c"]}`)
	s.Equal(fiber.StatusOK, status)

	status, body := s.do(fiber.MethodPut, "/v1/streams/stream-a", "", `{"user_id":"user-a","status":"paused"}`)
	s.Equal(fiber.StatusBadRequest, status)
	s.Equal(codeValidation, body["error"])
}

func (s *HandlerTestSuite) TestUpdateLiveness() {
	s.mockBattles.EXPECT().
		UpdateStreamLiveness(gomock.Any(), &battle.UpdateStreamLivenessInput{StreamID: "stream-a", Liveness: models.StreamLivenessReconnecting}).
		Return(&battle.UpdateStreamLivenessOutput{}, nil)

	status, _ := s.do(fiber.MethodPost, "/v1/streams/stream-a/liveness", "", `{"liveness":"reconnecting"}`)
	s.Equal(fiber.StatusOK, status)

	status, _ = s.do(fiber.MethodPost, "/v1/streams/stream-a/liveness", "", `{"liveness":"gone"}`)
	s.Equal(fiber.StatusBadRequest, status)
}

func (s *HandlerTestSuite) TestWallets() {
	s.mockGifts.EXPECT().
		CreditCoins(gomock.Any(), &gift.CreditCoinsInput{UserID: "viewer-1", Amount: 500, Reference: "order-9"}).
		Return(&gift.CreditCoinsOutput{Wallet: &models.Wallet{UserID: "viewer-1", Default: 500}}, nil)

	status, body := s.do(fiber.MethodPost, "/v1/wallets/viewer-1/credit", "", `{"amount":500,"reference":"order-9"}`)
	s.Equal(fiber.StatusOK, status)
	s.Equal(float64(500), body["wallet"].(map[string]any)["default"])

	s.mockGifts.EXPECT().
		GetWallet(gomock.Any(), &gift.GetWalletInput{UserID: "viewer-1", TransactionLimit: 20}).
		Return(&gift.GetWalletOutput{Wallet: &models.Wallet{UserID: "viewer-1", Default: 500}}, nil)

	status, _ = s.do(fiber.MethodGet, "/v1/wallets/viewer-1", "", "")
	s.Equal(fiber.StatusOK, status)

	s.mockGifts.EXPECT().CreditCoins(gomock.Any(), gomock.Any()).Return(nil, gift.ErrInvalidAmount)
	status, body = s.do(fiber.MethodPost, "/v1/wallets/viewer-1/credit", "", `{"amount":-5}`)
	s.Equal(fiber.StatusBadRequest, status)
	s.Equal(codeValidation, body["error"])
}

func (s *HandlerTestSuite) TestStreamEventsRelaysChannel() {
	messages := make(chan []byte, 2)
	messages <- []byte(`{"type":"score_updated","sequence":4}`)
	close(messages)

	s.mockBroadcaster.EXPECT().ChannelFor("stream-a").Return("stream_events:stream-a")
	s.mockTransport.EXPECT().
		Subscribe(gomock.Any(), &fanout.SubscribeInput{Channel: "stream_events:stream-a"}).
		Return(&fanout.SubscribeOutput{Messages: messages}, nil)

	resp, err := s.app.Test(httptest.NewRequest(fiber.MethodGet, "/v1/streams/stream-a/events", nil), -1)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal("text/event-stream", resp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(raw), "event: battle\ndata: {\"type\":\"score_updated\",\"sequence\":4}\n\n")
}

func (s *HandlerTestSuite) TestRequestDurationRecordedByRoute() {
	s.mockBattles.EXPECT().GetBattle(gomock.Any(), gomock.Any()).Return(nil, battle.ErrBattleNotFound)
	s.do(fiber.MethodGet, "/v1/battles/battle-9", "", "")

	s.Equal(1, testutil.CollectAndCount(s.metrics.RequestDuration))

	status, _ := s.do(fiber.MethodGet, "/metrics", "", "")
	s.Equal(fiber.StatusOK, status)
}

func (s *HandlerTestSuite) TestUnknownRoute() {
	status, body := s.do(fiber.MethodGet, "/v1/nope", "", "")
	s.Equal(fiber.StatusNotFound, status)
	s.Equal(codeNotFound, body["error"])
}
