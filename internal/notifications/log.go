package notifications

import (
	"context"
	"errors"

	profileRepo "github.com/KirkDiggler/pkbattle/internal/repositories/profile"
	"github.com/KirkDiggler/pkbattle/internal/services/messaging"
	"github.com/rs/zerolog"
)

// LogConfig holds the configuration for the log notifier
type LogConfig struct {
	ProfileRepo profileRepo.Repository
	Messaging   messaging.Service
	Logger      *zerolog.Logger
}

type logNotifier struct {
	profileRepo profileRepo.Repository
	messaging   messaging.Service
	logger      *zerolog.Logger
}

// NewLog creates a notifier that only logs notices, used when Discord is not configured
func NewLog(cfg *LogConfig) (*logNotifier, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &logNotifier{
		profileRepo: cfg.ProfileRepo,
		messaging:   cfg.Messaging,
		logger:      logger,
	}, nil
}

func (n *logNotifier) Notify(ctx context.Context, input *NotifyInput) error {
	if input == nil || input.Battle == nil {
		return errors.New("notification must carry a battle")
	}

	notices, err := compose(ctx, n.messaging, input, loadProfiles(ctx, n.profileRepo, input.Battle))
	if err != nil {
		return err
	}

	for _, nt := range notices {
		n.logger.Info().
			Str("battle_id", input.Battle.ID).
			Str("user_id", nt.userID).
			Str("kind", string(input.Kind)).
			Str("title", nt.title).
			Msg(nt.message)
	}

	return nil
}
