package gift

// GiftError is a custom error type for gift errors
type GiftError string

// Error implements the error interface
func (e GiftError) Error() string {
	return string(e)
}

const (
	ErrInsufficientFunds GiftError = "insufficient funds"
	ErrRateLimited       GiftError = "too many gifts, slow down"
	ErrInvalidGift       GiftError = "gift value and quantity must be positive"
	ErrSelfGift          GiftError = "cannot send a gift to yourself"
	ErrMissingParty      GiftError = "stream, sender and recipient are required"
	ErrInvalidAmount     GiftError = "amount must be positive"
	ErrNilConfig         GiftError = "config cannot be nil"
	ErrNilLedgerRepo     GiftError = "coin ledger repository cannot be nil"
	ErrNilClock          GiftError = "clock cannot be nil"
	ErrNilUUIDGenerator  GiftError = "UUID generator cannot be nil"
)
