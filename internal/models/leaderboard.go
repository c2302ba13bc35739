package models

// LeaderboardEntry is one ranked sender in a top-senders list
type LeaderboardEntry struct {
	// Rank is 1-based
	Rank int `json:"rank"`

	// UserID is the sender
	UserID string `json:"user_id"`

	// DisplayName is the sender's display name, empty if unknown
	DisplayName string `json:"display_name,omitempty"`

	// AvatarURL is the sender's avatar, empty if unknown
	AvatarURL string `json:"avatar_url,omitempty"`

	// Amount is the cumulative coin value sent
	Amount int64 `json:"amount"`
}
