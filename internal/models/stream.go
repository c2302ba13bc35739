package models

import (
	"time"
)

// StreamStatus is the broadcast state of a stream
type StreamStatus string

const (
	StreamStatusLive  StreamStatus = "live"
	StreamStatusEnded StreamStatus = "ended"
)

// Stream is a broadcaster's channel as known by the stream registry
type Stream struct {
	// ID is the stream channel ID
	ID string `json:"id"`

	// UserID is the broadcaster
	UserID string `json:"user_id"`

	// Title is the stream title
	Title string `json:"title,omitempty"`

	// Status is the broadcast state
	Status StreamStatus `json:"status"`

	// CoHostStreamIDs are streams visually attached to this one
	CoHostStreamIDs []string `json:"co_host_stream_ids,omitempty"`

	// StartedAt is when the stream went live
	StartedAt time.Time `json:"started_at"`
}

// IsLive returns true if the stream is currently broadcasting
func (s *Stream) IsLive() bool {
	return s != nil && s.Status == StreamStatusLive
}
