package coin_ledger

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/pkbattle/internal/repositories/coin_ledger Repository

import (
	"context"

	"github.com/KirkDiggler/pkbattle/internal/models"
)

// Repository defines the interface for the two-compartment coin ledger
type Repository interface {
	// Transfer debits the sender, credits the recipient, writes both transactions and records the gift event as one unit
	Transfer(ctx context.Context, input *TransferInput) (*TransferOutput, error)

	// Credit tops up a user's spendable compartment
	Credit(ctx context.Context, input *CreditInput) (*CreditOutput, error)

	// GetWallet returns both compartment balances
	GetWallet(ctx context.Context, input *GetWalletInput) (*models.Wallet, error)

	// ListTransactions returns a user's ledger entries, newest first
	ListTransactions(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error)
}
