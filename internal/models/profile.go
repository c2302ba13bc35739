package models

// Profile is the display data for a user
type Profile struct {
	// ID is the platform user ID
	ID string `json:"id"`

	// DisplayName is the name shown on leaderboards
	DisplayName string `json:"display_name"`

	// AvatarURL is the avatar shown on leaderboards
	AvatarURL string `json:"avatar_url,omitempty"`

	// DiscordUserID links the user to Discord for notices, empty if not linked
	DiscordUserID string `json:"discord_user_id,omitempty"`
}
