package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/common/clock"
	counterRepo "github.com/KirkDiggler/pkbattle/internal/repositories/counter"
)

const member = "n"

// Config holds configuration for the fixed window limiter
type Config struct {
	Counter counterRepo.Repository
	Clock   clock.Clock

	// Limit is the number of actions per window, zero disables limiting
	Limit int64

	// Window is the length of one counting window
	Window time.Duration
}

type AllowInput struct {
	// Key identifies who is limited, e.g. "gift:<sender>"
	Key string
}

type AllowOutput struct {
	Allowed bool
	Count   int64
	ResetAt time.Time
}

type fixedWindow struct {
	counter counterRepo.Repository
	clock   clock.Clock
	limit   int64
	window  time.Duration
}

// New creates a counter-backed fixed window limiter
func New(cfg *Config) (*fixedWindow, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Counter == nil {
		return nil, errors.New("counter repository cannot be nil")
	}

	if cfg.Limit > 0 && cfg.Window <= 0 {
		return nil, errors.New("window must be positive when a limit is set")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &fixedWindow{
		counter: cfg.Counter,
		clock:   c,
		limit:   cfg.Limit,
		window:  cfg.Window,
	}, nil
}

// Allow counts the action in the current window and reports whether it is within the limit
func (l *fixedWindow) Allow(ctx context.Context, input *AllowInput) (*AllowOutput, error) {
	if input == nil || input.Key == "" {
		return nil, errors.New("input and key cannot be empty")
	}

	if l.limit <= 0 {
		return &AllowOutput{Allowed: true}, nil
	}

	now := l.clock.Now()
	windowStart := now.Truncate(l.window)

	count, err := l.counter.Increment(ctx, &counterRepo.IncrementInput{
		Key:    fmt.Sprintf("rate:%s:%d", input.Key, windowStart.UnixMilli()),
		Member: member,
		By:     1,
		TTL:    2 * l.window,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count action: %w", err)
	}

	return &AllowOutput{
		Allowed: count <= l.limit,
		Count:   count,
		ResetAt: windowStart.Add(l.window),
	}, nil
}
