package counter

import (
	"time"
)

type IncrementInput struct {
	Key    string
	Member string
	By     int64

	// TTL refreshes the key's expiry in the same round trip when set
	TTL time.Duration
}

type GetInput struct {
	Key    string
	Member string
}

type ExpireInput struct {
	Key string
	TTL time.Duration
}

type TopInput struct {
	Key   string
	Limit int
}

// Entry is a member and its score
type Entry struct {
	Member string
	Score  int64
}

type TopOutput struct {
	// Entries are ordered by score descending
	Entries []Entry
}
