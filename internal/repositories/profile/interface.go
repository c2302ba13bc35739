package profile

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/pkbattle/internal/repositories/profile Repository

import (
	"context"

	"github.com/KirkDiggler/pkbattle/internal/models"
)

// Repository defines the interface for user display data
type Repository interface {
	// SaveProfile persists a profile
	SaveProfile(ctx context.Context, input *SaveProfileInput) error

	// GetProfile retrieves a profile by user ID
	GetProfile(ctx context.Context, input *GetProfileInput) (*models.Profile, error)

	// GetProfiles retrieves several profiles at once, unknown IDs are omitted
	GetProfiles(ctx context.Context, input *GetProfilesInput) (*GetProfilesOutput, error)
}
