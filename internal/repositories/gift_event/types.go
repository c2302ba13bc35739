package gift_event

import (
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
)

type GetGiftInput struct {
	GiftID string
}

type ListByStreamsInput struct {
	StreamIDs []string
	From      time.Time
	To        time.Time
}

type ListByStreamsOutput struct {
	Events []*models.GiftEvent
}
