package leaderboard

// LeaderboardError is a custom error type for leaderboard errors
type LeaderboardError string

// Error implements the error interface
func (e LeaderboardError) Error() string {
	return string(e)
}

const (
	ErrNilConfig      LeaderboardError = "config cannot be nil"
	ErrNilCounter     LeaderboardError = "counter repository cannot be nil"
	ErrNilProfileRepo LeaderboardError = "profile repository cannot be nil"
	ErrMissingKey     LeaderboardError = "stream or battle and recipient are required"
)
