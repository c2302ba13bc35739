package fanout

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/KirkDiggler/pkbattle/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const (
	defaultWorkers   = 8
	defaultQueueSize = 256
	defaultPrefix    = "stream_events:"
	publishTimeout   = 2 * time.Second
)

type broadcaster struct {
	transport Transport
	prefix    string
	logger    *zerolog.Logger
	metrics   *observability.Metrics

	shards []chan *delivery

	mu      sync.RWMutex
	started bool
	stopped bool
	wg      sync.WaitGroup
}

// New creates a sharded broadcaster; call Start before events can drain
func New(cfg *Config) (*broadcaster, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Transport == nil {
		return nil, ErrNilTransport
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}

	logger := cfg.Logger
	if logger == nil {
		logger = observability.NopLogger()
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
	}

	shards := make([]chan *delivery, workers)
	for i := range shards {
		shards[i] = make(chan *delivery, queueSize)
	}

	return &broadcaster{
		transport: cfg.Transport,
		prefix:    prefix,
		logger:    logger,
		metrics:   metrics,
		shards:    shards,
	}, nil
}

func (b *broadcaster) ChannelFor(streamID string) string {
	return b.prefix + streamID
}

// Start launches one worker per shard
func (b *broadcaster) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started || b.stopped {
		return
	}
	b.started = true

	for _, shard := range b.shards {
		b.wg.Add(1)
		go b.work(shard)
	}
}

// Stop refuses new events and waits for queued ones to drain
func (b *broadcaster) Stop() {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return
	}
	b.stopped = true
	for _, shard := range b.shards {
		close(shard)
	}
	b.mu.Unlock()

	b.wg.Wait()
}

// Enqueue serializes the event now so later battle mutations cannot leak into it
func (b *broadcaster) Enqueue(ctx context.Context, event *models.BattleEvent) error {
	if event == nil || event.Battle == nil {
		return ErrNilEvent
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal battle event: %w", err)
	}

	streamIDs := event.Battle.StreamIDs()
	channels := make([]string, 0, len(streamIDs))
	for _, streamID := range streamIDs {
		channels = append(channels, b.ChannelFor(streamID))
	}

	d := &delivery{
		battleID:  event.BattleID,
		eventType: string(event.Type),
		sequence:  event.Sequence,
		channels:  channels,
		payload:   payload,
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.stopped {
		return ErrStopped
	}

	select {
	case b.shards[b.shardFor(event.BattleID)] <- d:
		return nil
	default:
		b.metrics.FanoutDropped.Inc()
		b.logger.Warn().
			Str("battle_id", event.BattleID).
			Str("type", d.eventType).
			Int64("sequence", d.sequence).
			Msg("fanout queue full, event dropped")
		return ErrQueueFull
	}
}

func (b *broadcaster) shardFor(battleID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(battleID))
	return int(h.Sum32() % uint32(len(b.shards)))
}

func (b *broadcaster) work(shard <-chan *delivery) {
	defer b.wg.Done()

	for d := range shard {
		b.deliver(d)
	}
}

// deliver publishes once per channel; a failed channel never blocks the others
func (b *broadcaster) deliver(d *delivery) {
	for _, channel := range d.channels {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		err := b.transport.Publish(ctx, &PublishInput{Channel: channel, Payload: d.payload})
		cancel()

		if err != nil {
			b.metrics.FanoutFailures.Inc()
			b.logger.Error().
				Err(err).
				Str("battle_id", d.battleID).
				Str("channel", channel).
				Str("type", d.eventType).
				Msg("failed to publish battle event")
			continue
		}

		b.metrics.FanoutPublished.WithLabelValues(d.eventType).Inc()
	}
}
