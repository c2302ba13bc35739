package ratelimit

//go:generate mockgen -package=mocks -destination=mocks/mock_limiter.go github.com/KirkDiggler/pkbattle/internal/services/ratelimit Limiter

import "context"

// Limiter decides whether an action may proceed within its window
type Limiter interface {
	Allow(ctx context.Context, input *AllowInput) (*AllowOutput, error)
}
