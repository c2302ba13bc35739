package coin_ledger

import (
	"errors"

	"github.com/KirkDiggler/pkbattle/internal/models"
)

// ErrInsufficientFunds is returned when the sender's default balance cannot cover a transfer
var ErrInsufficientFunds = errors.New("insufficient funds")

func validateTransfer(input *TransferInput) error {
	if input == nil || input.Event == nil {
		return errors.New("input and event cannot be nil")
	}

	e := input.Event
	if e.ID == "" || e.StreamID == "" {
		return errors.New("gift event ID and stream ID cannot be empty")
	}

	if e.SenderID == "" || e.RecipientID == "" {
		return errors.New("sender and recipient cannot be empty")
	}

	if e.SenderID == e.RecipientID {
		return errors.New("sender and recipient must differ")
	}

	if e.TotalValue <= 0 {
		return errors.New("transfer amount must be positive")
	}

	return nil
}

func validateCredit(input *CreditInput) error {
	if input == nil || input.UserID == "" {
		return errors.New("input and user ID cannot be empty")
	}

	if input.Amount <= 0 {
		return errors.New("credit amount must be positive")
	}

	return nil
}

// transferEntries builds the debit and credit pair for a gift event
func transferEntries(e *models.GiftEvent, debitID, creditID string) (*models.CoinTransaction, *models.CoinTransaction) {
	debit := &models.CoinTransaction{
		ID:             debitID,
		UserID:         e.SenderID,
		Amount:         -e.TotalValue,
		Compartment:    models.WalletCompartmentDefault,
		Type:           models.CoinTransactionPurchaseGift,
		GiftEventID:    e.ID,
		GiftID:         e.GiftID,
		CounterpartyID: e.RecipientID,
		CreatedAt:      e.CreatedAt,
	}

	credit := &models.CoinTransaction{
		ID:             creditID,
		UserID:         e.RecipientID,
		Amount:         e.TotalValue,
		Compartment:    models.WalletCompartmentEarned,
		Type:           models.CoinTransactionReceiveGift,
		GiftEventID:    e.ID,
		GiftID:         e.GiftID,
		CounterpartyID: e.SenderID,
		CreatedAt:      e.CreatedAt,
	}

	return debit, credit
}
