package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/services/gift"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer messageWriter
	now    func() time.Time
}

// NewKafka creates a publisher writing to the configured topic.
// Messages are hashed onto partitions by recipient so one streamer's gifts stay ordered.
func NewKafka(cfg *KafkaConfig) (*kafkaPublisher, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}

	if cfg.Topic == "" {
		return nil, ErrEmptyTopic
	}

	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = 50 * time.Millisecond
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           batchTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	return newKafkaWithWriter(writer), nil
}

func newKafkaWithWriter(w messageWriter) *kafkaPublisher {
	return &kafkaPublisher{writer: w, now: time.Now}
}

func (p *kafkaPublisher) PublishGift(ctx context.Context, input *PublishGiftInput) error {
	if input == nil || input.Event == nil {
		return ErrNilEvent
	}

	now := p.now()
	data, err := json.Marshal(&GiftMessage{
		Type:         giftSentType,
		Event:        input.Event,
		BattleScored: input.BattleScored,
		PublishedAt:  now,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal gift message: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(input.Event.RecipientID),
		Value: data,
		Time:  now,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(giftSentType)},
			{Key: "event_id", Value: []byte(input.Event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish gift %s: %w", input.Event.ID, err)
	}

	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

// GiftEffect adapts a publisher into a post-commit gift effect
func GiftEffect(p Publisher) gift.Effect {
	return gift.NewEffect("kafka", func(ctx context.Context, input *gift.EffectInput) error {
		return p.PublishGift(ctx, &PublishGiftInput{
			Event:        input.Event,
			BattleScored: input.BattleScored,
		})
	})
}
