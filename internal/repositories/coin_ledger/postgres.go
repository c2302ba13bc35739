package coin_ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/KirkDiggler/pkbattle/internal/repositories/gift_event"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// walletRecord is one compartment balance row
type walletRecord struct {
	UserID      string `gorm:"primaryKey;type:varchar(64)"`
	Compartment string `gorm:"primaryKey;type:varchar(16)"`
	Balance     int64  `gorm:"not null;default:0"`
	UpdatedAt   time.Time
}

func (walletRecord) TableName() string {
	return "wallets"
}

// transactionRecord is one immutable ledger entry
type transactionRecord struct {
	ID             string `gorm:"primaryKey;type:varchar(64)"`
	UserID         string `gorm:"type:varchar(64);index;not null"`
	Amount         int64  `gorm:"not null"`
	Compartment    string `gorm:"type:varchar(16);not null"`
	Type           string `gorm:"type:varchar(32);not null"`
	GiftEventID    string `gorm:"type:varchar(64);index"`
	GiftID         string `gorm:"type:varchar(64)"`
	CounterpartyID string `gorm:"type:varchar(64)"`
	Reference      string `gorm:"type:varchar(128)"`
	CreatedAt      time.Time
}

func (transactionRecord) TableName() string {
	return "coin_transactions"
}

func newTransactionRecord(t *models.CoinTransaction) *transactionRecord {
	return &transactionRecord{
		ID:             t.ID,
		UserID:         t.UserID,
		Amount:         t.Amount,
		Compartment:    string(t.Compartment),
		Type:           string(t.Type),
		GiftEventID:    t.GiftEventID,
		GiftID:         t.GiftID,
		CounterpartyID: t.CounterpartyID,
		Reference:      t.Reference,
		CreatedAt:      t.CreatedAt,
	}
}

func (r *transactionRecord) model() *models.CoinTransaction {
	return &models.CoinTransaction{
		ID:             r.ID,
		UserID:         r.UserID,
		Amount:         r.Amount,
		Compartment:    models.WalletCompartment(r.Compartment),
		Type:           models.CoinTransactionType(r.Type),
		GiftEventID:    r.GiftEventID,
		GiftID:         r.GiftID,
		CounterpartyID: r.CounterpartyID,
		Reference:      r.Reference,
		CreatedAt:      r.CreatedAt.UTC(),
	}
}

// PostgresConfig holds configuration for the Postgres coin ledger repository
type PostgresConfig struct {
	DB *gorm.DB

	// AutoMigrate creates the tables on startup
	AutoMigrate bool
}

type postgresRepository struct {
	db *gorm.DB
}

// NewPostgres creates a new gorm-backed coin ledger repository
func NewPostgres(cfg *PostgresConfig) (*postgresRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.DB == nil {
		return nil, errors.New("db cannot be nil")
	}

	if cfg.AutoMigrate {
		if err := cfg.DB.AutoMigrate(&walletRecord{}, &transactionRecord{}, &gift_event.Record{}); err != nil {
			return nil, fmt.Errorf("failed to migrate coin ledger: %w", err)
		}
	}

	return &postgresRepository{db: cfg.DB}, nil
}

// Transfer runs inside one database transaction holding the sender's balance row lock
func (r *postgresRepository) Transfer(ctx context.Context, input *TransferInput) (*TransferOutput, error) {
	if err := validateTransfer(input); err != nil {
		return nil, err
	}

	event := input.Event
	out := &TransferOutput{Event: event}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sender walletRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND compartment = ?", event.SenderID, models.WalletCompartmentDefault).
			First(&sender).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInsufficientFunds
			}
			return fmt.Errorf("failed to lock sender balance: %w", err)
		}

		if event.IdempotencyKey != "" {
			var original gift_event.Record
			err := tx.Where("sender_id = ? AND idempotency_key = ?", event.SenderID, event.IdempotencyKey).
				First(&original).Error
			if err == nil {
				out.Event = original.Model()
				out.Replayed = true
				out.SenderBalance = sender.Balance
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to check idempotency key: %w", err)
			}
		}

		if sender.Balance < event.TotalValue {
			return ErrInsufficientFunds
		}

		if err := tx.Model(&walletRecord{}).
			Where("user_id = ? AND compartment = ?", event.SenderID, models.WalletCompartmentDefault).
			Updates(map[string]interface{}{
				"balance":    gorm.Expr("balance - ?", event.TotalValue),
				"updated_at": event.CreatedAt,
			}).Error; err != nil {
			return fmt.Errorf("failed to debit sender: %w", err)
		}

		if err := upsertBalance(tx, event.RecipientID, models.WalletCompartmentEarned, event.TotalValue, event.CreatedAt); err != nil {
			return fmt.Errorf("failed to credit recipient: %w", err)
		}

		debit, credit := transferEntries(event, uuid.New().String(), uuid.New().String())
		if err := tx.Create([]*transactionRecord{newTransactionRecord(debit), newTransactionRecord(credit)}).Error; err != nil {
			return fmt.Errorf("failed to write transactions: %w", err)
		}

		if err := tx.Create(gift_event.NewRecord(event)).Error; err != nil {
			return fmt.Errorf("failed to record gift event: %w", err)
		}

		out.SenderBalance = sender.Balance - event.TotalValue
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *postgresRepository) Credit(ctx context.Context, input *CreditInput) (*CreditOutput, error) {
	if err := validateCredit(input); err != nil {
		return nil, err
	}

	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	txn := &models.CoinTransaction{
		ID:          uuid.New().String(),
		UserID:      input.UserID,
		Amount:      input.Amount,
		Compartment: models.WalletCompartmentDefault,
		Type:        models.CoinTransactionPurchaseCoins,
		Reference:   input.Reference,
		CreatedAt:   createdAt,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsertBalance(tx, input.UserID, models.WalletCompartmentDefault, input.Amount, createdAt); err != nil {
			return fmt.Errorf("failed to credit coins: %w", err)
		}

		if err := tx.Create(newTransactionRecord(txn)).Error; err != nil {
			return fmt.Errorf("failed to write transaction: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	wallet, err := r.GetWallet(ctx, &GetWalletInput{UserID: input.UserID})
	if err != nil {
		return nil, err
	}

	return &CreditOutput{
		Transaction: txn,
		Wallet:      wallet,
	}, nil
}

func (r *postgresRepository) GetWallet(ctx context.Context, input *GetWalletInput) (*models.Wallet, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	var rows []walletRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", input.UserID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	wallet := &models.Wallet{UserID: input.UserID}
	for _, row := range rows {
		switch models.WalletCompartment(row.Compartment) {
		case models.WalletCompartmentDefault:
			wallet.Default = row.Balance
		case models.WalletCompartmentEarned:
			wallet.Earned = row.Balance
		}
	}

	return wallet, nil
}

func (r *postgresRepository) ListTransactions(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	q := r.db.WithContext(ctx).Where("user_id = ?", input.UserID).Order("created_at DESC")
	if input.Limit > 0 {
		q = q.Limit(input.Limit)
	}

	var rows []transactionRecord
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	txns := make([]*models.CoinTransaction, 0, len(rows))
	for i := range rows {
		txns = append(txns, rows[i].model())
	}

	return &ListTransactionsOutput{Transactions: txns}, nil
}

// upsertBalance adds delta to a compartment, creating the row on first use
func upsertBalance(tx *gorm.DB, userID string, compartment models.WalletCompartment, delta int64, at time.Time) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "compartment"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"balance":    gorm.Expr("wallets.balance + EXCLUDED.balance"),
			"updated_at": gorm.Expr("EXCLUDED.updated_at"),
		}),
	}).Create(&walletRecord{
		UserID:      userID,
		Compartment: string(compartment),
		Balance:     delta,
		UpdatedAt:   at,
	}).Error
}
