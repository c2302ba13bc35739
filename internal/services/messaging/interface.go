package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/pkbattle/internal/services/messaging Service

import "context"

// Service writes the human facing copy for battle notices and errors
type Service interface {
	// GetInvitationMessage returns the notice sent to an invited opponent
	GetInvitationMessage(ctx context.Context, input *GetInvitationMessageInput) (*GetInvitationMessageOutput, error)

	// GetRoundResultMessage returns the notice for a closed round
	GetRoundResultMessage(ctx context.Context, input *GetRoundResultMessageInput) (*GetRoundResultMessageOutput, error)

	// GetBattleResultMessage returns the notice for a finished battle, personalised for the reader
	GetBattleResultMessage(ctx context.Context, input *GetBattleResultMessageInput) (*GetBattleResultMessageOutput, error)

	// GetErrorMessage returns a user-friendly message for an API error code
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
