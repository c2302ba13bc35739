package scoring

// ScoringError is a custom error type for scoring errors
type ScoringError string

// Error implements the error interface
func (e ScoringError) Error() string {
	return string(e)
}

const (
	ErrNilConfig   ScoringError = "config cannot be nil"
	ErrNilGiftRepo ScoringError = "gift event repository cannot be nil"
	ErrNilBattle   ScoringError = "battle cannot be nil"
)
