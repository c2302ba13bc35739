package stream

import "github.com/KirkDiggler/pkbattle/internal/models"

type SaveStreamInput struct {
	Stream *models.Stream
}

type GetStreamInput struct {
	StreamID string
}

type GetLiveStreamByUserInput struct {
	UserID string
}
