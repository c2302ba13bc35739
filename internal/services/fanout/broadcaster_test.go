package fanout_test

import (
	"context"
	"encoding/json"
	"errors"
	. "github.com/KirkDiggler/pkbattle/internal/services/fanout"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/KirkDiggler/pkbattle/internal/observability"
	"github.com/KirkDiggler/pkbattle/internal/services/fanout/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BroadcasterTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockTransport *mocks.MockTransport
	metrics       *observability.Metrics
	ctx           context.Context
	battle        *models.Battle

	mu        sync.Mutex
	published []PublishInput
}

func (s *BroadcasterTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockTransport = mocks.NewMockTransport(s.mockCtrl)
	s.metrics = observability.NewMetrics(prometheus.NewRegistry())
	s.ctx = context.Background()
	s.published = nil

	s.battle = &models.Battle{
		ID:               "battle-1",
		ChallengerID:     "streamer-a",
		OpponentID:       "streamer-b",
		HostStreamID:     "stream-a",
		OpponentStreamID: "stream-b",
		CoHostStreamIDs:  []string{"stream-c", "stream-a"},
	}
}

func (s *BroadcasterTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBroadcasterTestSuite(t *testing.T) {
	suite.Run(t, new(BroadcasterTestSuite))
}

func (s *BroadcasterTestSuite) recordPublishes() {
	s.mockTransport.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *PublishInput) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.published = append(s.published, *in)
			return nil
		}).AnyTimes()
}

func (s *BroadcasterTestSuite) publishes() []PublishInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PublishInput(nil), s.published...)
}

func (s *BroadcasterTestSuite) event(seq int64) *models.BattleEvent {
	return &models.BattleEvent{
		Type:     models.BattleEventScoreUpdated,
		BattleID: s.battle.ID,
		Sequence: seq,
		Battle:   s.battle,
	}
}

func (s *BroadcasterTestSuite) TestNew() {
	_, err := New(nil)
	s.Equal(ErrNilConfig, err)

	_, err = New(&Config{})
	s.Equal(ErrNilTransport, err)
}

func (s *BroadcasterTestSuite) TestPublishesOncePerDistinctChannel() {
	s.recordPublishes()

	b, err := New(&Config{Transport: s.mockTransport, Workers: 2, QueueSize: 8, Metrics: s.metrics})
	s.Require().NoError(err)
	b.Start()

	s.Require().NoError(b.Enqueue(s.ctx, s.event(1)))
	b.Stop()

	var channels []string
	for _, p := range s.publishes() {
		channels = append(channels, p.Channel)
	}
	s.Equal([]string{"stream_events:stream-a", "stream_events:stream-b", "stream_events:stream-c"}, channels)
	s.Equal(float64(3), testutil.ToFloat64(s.metrics.FanoutPublished.WithLabelValues("score_updated")))
}

func (s *BroadcasterTestSuite) TestSkipsEmptyOpponentStream() {
	s.recordPublishes()
	s.battle.OpponentStreamID = ""
	s.battle.CoHostStreamIDs = nil

	b, err := New(&Config{Transport: s.mockTransport, Workers: 1, QueueSize: 8})
	s.Require().NoError(err)
	b.Start()

	s.Require().NoError(b.Enqueue(s.ctx, s.event(1)))
	b.Stop()

	s.Len(s.publishes(), 1)
	s.Equal("stream_events:stream-a", s.publishes()[0].Channel)
}

func (s *BroadcasterTestSuite) TestPreservesPerBattleOrder() {
	s.recordPublishes()

	b, err := New(&Config{Transport: s.mockTransport, Workers: 4, QueueSize: 64})
	s.Require().NoError(err)
	b.Start()

	for seq := int64(1); seq <= 20; seq++ {
		s.Require().NoError(b.Enqueue(s.ctx, s.event(seq)))
	}
	b.Stop()

	last := map[string]int64{}
	for _, p := range s.publishes() {
		var event models.BattleEvent
		s.Require().NoError(json.Unmarshal(p.Payload, &event))
		s.Greater(event.Sequence, last[p.Channel], "channel %s went backwards", p.Channel)
		last[p.Channel] = event.Sequence
	}
	s.Equal(int64(20), last["stream_events:stream-c"])
}

func (s *BroadcasterTestSuite) TestSnapshotTakenAtEnqueue() {
	s.recordPublishes()

	b, err := New(&Config{Transport: s.mockTransport, Workers: 1, QueueSize: 8})
	s.Require().NoError(err)

	s.battle.ChallengerTotal.Score = 5
	s.Require().NoError(b.Enqueue(s.ctx, s.event(1)))
	s.battle.ChallengerTotal.Score = 500

	b.Start()
	b.Stop()

	var event models.BattleEvent
	s.Require().NoError(json.Unmarshal(s.publishes()[0].Payload, &event))
	s.Equal(int64(5), event.Battle.ChallengerTotal.Score)
}

func (s *BroadcasterTestSuite) TestFullQueueDropsWithoutBlocking() {
	b, err := New(&Config{Transport: s.mockTransport, Workers: 1, QueueSize: 1, Metrics: s.metrics})
	s.Require().NoError(err)

	// Not started, so nothing drains
	s.Require().NoError(b.Enqueue(s.ctx, s.event(1)))

	done := make(chan error, 1)
	go func() { done <- b.Enqueue(s.ctx, s.event(2)) }()

	select {
	case err := <-done:
		s.Equal(ErrQueueFull, err)
	case <-time.After(time.Second):
		s.Fail("enqueue blocked on a full queue")
	}
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.FanoutDropped))
}

func (s *BroadcasterTestSuite) TestPublishFailureIsCountedAndOtherChannelsStillDeliver() {
	s.mockTransport.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *PublishInput) error {
			if in.Channel == "stream_events:stream-b" {
				return errors.New("connection reset")
			}
			s.mu.Lock()
			defer s.mu.Unlock()
			s.published = append(s.published, *in)
			return nil
		}).Times(3)

	b, err := New(&Config{Transport: s.mockTransport, Workers: 1, QueueSize: 8, Metrics: s.metrics})
	s.Require().NoError(err)
	b.Start()

	s.Require().NoError(b.Enqueue(s.ctx, s.event(1)))
	b.Stop()

	s.Len(s.publishes(), 2)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.FanoutFailures))
}

func (s *BroadcasterTestSuite) TestEnqueueAfterStop() {
	b, err := New(&Config{Transport: s.mockTransport})
	s.Require().NoError(err)
	b.Start()
	b.Stop()

	s.Equal(ErrStopped, b.Enqueue(s.ctx, s.event(1)))
	s.Equal(ErrNilEvent, b.Enqueue(s.ctx, &models.BattleEvent{}))
}
