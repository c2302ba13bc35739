package notifications

//go:generate mockgen -package=mocks -destination=mocks/mock_notifier.go github.com/KirkDiggler/pkbattle/internal/notifications Notifier

import (
	"context"
)

// Notifier tells battle participants about invitations and results out of band
type Notifier interface {
	Notify(ctx context.Context, input *NotifyInput) error
}
