package events

import (
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
)

type EventsError string

func (e EventsError) Error() string {
	return string(e)
}

const (
	ErrNilConfig  EventsError = "config cannot be nil"
	ErrNoBrokers  EventsError = "at least one broker is required"
	ErrEmptyTopic EventsError = "topic cannot be empty"
	ErrNilEvent   EventsError = "gift event cannot be nil"
)

// KafkaConfig holds the configuration for the Kafka publisher
type KafkaConfig struct {
	Brokers []string
	Topic   string

	// BatchTimeout bounds how long the writer waits to fill a batch
	BatchTimeout time.Duration
}

type PublishGiftInput struct {
	Event *models.GiftEvent

	// BattleScored is true when the gift went through the battle path
	BattleScored bool
}

// GiftMessage is the payload written to the gift.sent topic
type GiftMessage struct {
	Type         string            `json:"type"`
	Event        *models.GiftEvent `json:"event"`
	BattleScored bool              `json:"battle_scored"`
	PublishedAt  time.Time         `json:"published_at"`
}

const giftSentType = "gift.sent"
