package models

import (
	"time"
)

// WalletCompartment separates spendable coins from coins earned through gifts
type WalletCompartment string

const (
	// WalletCompartmentDefault holds spendable coins
	WalletCompartmentDefault WalletCompartment = "default"

	// WalletCompartmentEarned holds coins received as gifts
	WalletCompartmentEarned WalletCompartment = "earned"
)

// CoinTransactionType represents why a ledger entry was written
type CoinTransactionType string

const (
	// CoinTransactionPurchaseGift is the sender's debit for a gift
	CoinTransactionPurchaseGift CoinTransactionType = "purchase_gift"

	// CoinTransactionReceiveGift is the recipient's credit for a gift
	CoinTransactionReceiveGift CoinTransactionType = "receive_gift"

	// CoinTransactionPurchaseCoins is a top-up of the spendable compartment
	CoinTransactionPurchaseCoins CoinTransactionType = "purchase_coins"
)

// CoinTransaction is an immutable ledger entry
type CoinTransaction struct {
	// ID is the unique identifier for the transaction
	ID string `json:"id"`

	// UserID is the owner of the compartment
	UserID string `json:"user_id"`

	// Amount is signed: negative debits, positive credits
	Amount int64 `json:"amount"`

	// Compartment is the wallet compartment the entry applies to
	Compartment WalletCompartment `json:"compartment"`

	// Type is why the entry was written
	Type CoinTransactionType `json:"type"`

	// GiftEventID links the entry to the gift event that caused it
	GiftEventID string `json:"gift_event_id,omitempty"`

	// GiftID is the catalog gift
	GiftID string `json:"gift_id,omitempty"`

	// CounterpartyID is the other user of the transfer
	CounterpartyID string `json:"counterparty_id,omitempty"`

	// Reference is an external reference for top-ups
	Reference string `json:"reference,omitempty"`

	// CreatedAt is when the entry was written
	CreatedAt time.Time `json:"created_at"`
}

// Wallet is a balance snapshot of both compartments
type Wallet struct {
	UserID  string `json:"user_id"`
	Default int64  `json:"default"`
	Earned  int64  `json:"earned"`
}
