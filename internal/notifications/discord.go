package notifications

import (
	"context"
	"errors"
	"fmt"

	profileRepo "github.com/KirkDiggler/pkbattle/internal/repositories/profile"
	"github.com/KirkDiggler/pkbattle/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_session.go github.com/KirkDiggler/pkbattle/internal/notifications Session

// Session is the part of *discordgo.Session used to send direct messages
type Session interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordConfig holds the configuration for the Discord notifier
type DiscordConfig struct {
	// Token is the bot token, used when Session is nil
	Token string

	Session     Session
	ProfileRepo profileRepo.Repository
	Messaging   messaging.Service
	Logger      *zerolog.Logger
}

type discordNotifier struct {
	session     Session
	profileRepo profileRepo.Repository
	messaging   messaging.Service
	logger      *zerolog.Logger
}

// NewDiscord creates a notifier that sends battle notices as Discord direct messages
func NewDiscord(cfg *DiscordConfig) (*discordNotifier, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.ProfileRepo == nil {
		return nil, errors.New("profile repository cannot be nil")
	}

	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	session := cfg.Session
	if session == nil {
		if cfg.Token == "" {
			return nil, errors.New("token cannot be empty")
		}

		dg, err := discordgo.New("Bot " + cfg.Token)
		if err != nil {
			return nil, fmt.Errorf("failed to create Discord session: %w", err)
		}
		session = dg
	}

	logger := cfg.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &discordNotifier{
		session:     session,
		profileRepo: cfg.ProfileRepo,
		messaging:   cfg.Messaging,
		logger:      logger,
	}, nil
}

// Notify sends one DM per recipient with a linked Discord account; unlinked users are skipped
func (n *discordNotifier) Notify(ctx context.Context, input *NotifyInput) error {
	if input == nil || input.Battle == nil {
		return errors.New("notification must carry a battle")
	}

	profiles := loadProfiles(ctx, n.profileRepo, input.Battle)

	notices, err := compose(ctx, n.messaging, input, profiles)
	if err != nil {
		return fmt.Errorf("failed to compose %s notice: %w", input.Kind, err)
	}

	var errs []error
	for _, nt := range notices {
		discordID := profiles[nt.userID].DiscordUserID
		if discordID == "" {
			n.logger.Debug().Str("user_id", nt.userID).Str("kind", string(input.Kind)).Msg("no discord account linked, skipping notice")
			continue
		}

		channel, err := n.session.UserChannelCreate(discordID, discordgo.WithContext(ctx))
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to open DM with %s: %w", nt.userID, err))
			continue
		}

		if _, err := n.session.ChannelMessageSendEmbed(channel.ID, renderNotice(input.Battle, nt), discordgo.WithContext(ctx)); err != nil {
			errs = append(errs, fmt.Errorf("failed to send notice to %s: %w", nt.userID, err))
			continue
		}

		n.logger.Info().
			Str("battle_id", input.Battle.ID).
			Str("user_id", nt.userID).
			Str("kind", string(input.Kind)).
			Msg("discord notice sent")
	}

	return errors.Join(errs...)
}
