package profile

import "github.com/KirkDiggler/pkbattle/internal/models"

// SaveProfileInput contains parameters for saving a profile
type SaveProfileInput struct {
	Profile *models.Profile
}

// GetProfileInput contains parameters for retrieving a profile
type GetProfileInput struct {
	UserID string
}

// GetProfilesInput contains parameters for retrieving several profiles
type GetProfilesInput struct {
	UserIDs []string
}

// GetProfilesOutput contains the profiles found, keyed by user ID
type GetProfilesOutput struct {
	Profiles map[string]*models.Profile
}
