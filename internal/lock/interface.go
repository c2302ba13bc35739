package lock

//go:generate mockgen -package=mocks -destination=mocks/mock_locker.go github.com/KirkDiggler/pkbattle/internal/lock Locker

import (
	"context"
)

// Locker serializes work on a key across every instance of the service
type Locker interface {
	// Acquire blocks until the lock is held or the wait timeout elapses
	Acquire(ctx context.Context, input *AcquireInput) (*AcquireOutput, error)

	// Release frees the lock if the token still owns it
	Release(ctx context.Context, input *ReleaseInput) error
}
