package coin_ledger

import (
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
)

// TransferInput contains the gift event to commit; its TotalValue is the amount moved
type TransferInput struct {
	Event *models.GiftEvent
}

// TransferOutput contains the committed gift event
type TransferOutput struct {
	// Event is the committed event, or the original one when Replayed
	Event *models.GiftEvent

	// Replayed is true when the idempotency key matched an earlier transfer
	Replayed bool

	// SenderBalance is the sender's default balance after the transfer
	SenderBalance int64
}

type CreditInput struct {
	UserID    string
	Amount    int64
	Reference string
	CreatedAt time.Time
}

type CreditOutput struct {
	Transaction *models.CoinTransaction
	Wallet      *models.Wallet
}

type GetWalletInput struct {
	UserID string
}

type ListTransactionsInput struct {
	UserID string

	// Limit caps the number of entries, zero returns all
	Limit int
}

type ListTransactionsOutput struct {
	Transactions []*models.CoinTransaction
}
