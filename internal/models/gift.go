package models

import (
	"time"
)

// GiftEvent is the immutable record of a viewer sending a gift to a streamer
type GiftEvent struct {
	// ID is the unique identifier for the gift event
	ID string `json:"id"`

	// StreamID is the stream the gift was sent on
	StreamID string `json:"stream_id"`

	// SenderID is the viewer who sent the gift
	SenderID string `json:"sender_id"`

	// RecipientID is the streamer who received the gift
	RecipientID string `json:"recipient_id"`

	// GiftID identifies the catalog gift
	GiftID string `json:"gift_id"`

	// UnitValue is the coin value of one gift
	UnitValue int64 `json:"unit_value"`

	// Quantity is how many gifts were sent at once
	Quantity int64 `json:"quantity"`

	// TotalValue is UnitValue times Quantity
	TotalValue int64 `json:"total_value"`

	// BattleID is the battle the gift was sent through, if known at send time
	BattleID string `json:"battle_id,omitempty"`

	// BattleRound is the battle round open at send time, if known
	BattleRound int `json:"battle_round,omitempty"`

	// IdempotencyKey deduplicates client retries
	IdempotencyKey string `json:"idempotency_key,omitempty"`

	// CreatedAt is when the gift was sent
	CreatedAt time.Time `json:"created_at"`
}
