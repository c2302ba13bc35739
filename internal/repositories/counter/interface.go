package counter

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/pkbattle/internal/repositories/counter Repository

import (
	"context"
)

// Repository is a keyed set of scored members: increment, read, expire and rank
type Repository interface {
	// Increment adds By to a member's score and returns the new score
	Increment(ctx context.Context, input *IncrementInput) (int64, error)

	// Get returns a member's score, zero when absent
	Get(ctx context.Context, input *GetInput) (int64, error)

	// Expire sets a TTL on a key
	Expire(ctx context.Context, input *ExpireInput) error

	// Top returns the highest scoring members
	Top(ctx context.Context, input *TopInput) (*TopOutput, error)
}
