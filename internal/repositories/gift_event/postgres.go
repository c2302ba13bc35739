package gift_event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
	"gorm.io/gorm"
)

// Record is the gorm row for a gift event
type Record struct {
	ID             string    `gorm:"primaryKey;type:varchar(64)"`
	StreamID       string    `gorm:"type:varchar(64);index:idx_gift_stream_time,priority:1;not null"`
	SenderID       string    `gorm:"type:varchar(64);not null;index:idx_gift_sender_idem,priority:1"`
	RecipientID    string    `gorm:"type:varchar(64);not null"`
	GiftID         string    `gorm:"type:varchar(64);not null"`
	UnitValue      int64     `gorm:"not null"`
	Quantity       int64     `gorm:"not null"`
	TotalValue     int64     `gorm:"not null"`
	BattleID       string    `gorm:"type:varchar(64)"`
	BattleRound    int       `gorm:"not null;default:0"`
	IdempotencyKey string    `gorm:"type:varchar(128);index:idx_gift_sender_idem,priority:2"`
	CreatedAt      time.Time `gorm:"index:idx_gift_stream_time,priority:2;not null"`
}

// TableName pins the table name
func (Record) TableName() string {
	return "gift_events"
}

// NewRecord converts a gift event to its row
func NewRecord(e *models.GiftEvent) *Record {
	return &Record{
		ID:             e.ID,
		StreamID:       e.StreamID,
		SenderID:       e.SenderID,
		RecipientID:    e.RecipientID,
		GiftID:         e.GiftID,
		UnitValue:      e.UnitValue,
		Quantity:       e.Quantity,
		TotalValue:     e.TotalValue,
		BattleID:       e.BattleID,
		BattleRound:    e.BattleRound,
		IdempotencyKey: e.IdempotencyKey,
		CreatedAt:      e.CreatedAt,
	}
}

// Model converts the row back to a gift event
func (r *Record) Model() *models.GiftEvent {
	return &models.GiftEvent{
		ID:             r.ID,
		StreamID:       r.StreamID,
		SenderID:       r.SenderID,
		RecipientID:    r.RecipientID,
		GiftID:         r.GiftID,
		UnitValue:      r.UnitValue,
		Quantity:       r.Quantity,
		TotalValue:     r.TotalValue,
		BattleID:       r.BattleID,
		BattleRound:    r.BattleRound,
		IdempotencyKey: r.IdempotencyKey,
		CreatedAt:      r.CreatedAt.UTC(),
	}
}

// PostgresConfig holds configuration for the Postgres gift event repository
type PostgresConfig struct {
	DB *gorm.DB

	// AutoMigrate creates the table on startup
	AutoMigrate bool
}

type postgresRepository struct {
	db *gorm.DB
}

// NewPostgres creates a new gorm-backed gift event repository
func NewPostgres(cfg *PostgresConfig) (*postgresRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.DB == nil {
		return nil, errors.New("db cannot be nil")
	}

	if cfg.AutoMigrate {
		if err := cfg.DB.AutoMigrate(&Record{}); err != nil {
			return nil, fmt.Errorf("failed to migrate gift events: %w", err)
		}
	}

	return &postgresRepository{db: cfg.DB}, nil
}

func (r *postgresRepository) GetGift(ctx context.Context, input *GetGiftInput) (*models.GiftEvent, error) {
	if input == nil || input.GiftID == "" {
		return nil, errors.New("input and gift ID cannot be empty")
	}

	var rec Record
	if err := r.db.WithContext(ctx).Where("id = ?", input.GiftID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGiftNotFound
		}
		return nil, fmt.Errorf("failed to get gift event: %w", err)
	}

	return rec.Model(), nil
}

func (r *postgresRepository) ListByStreams(ctx context.Context, input *ListByStreamsInput) (*ListByStreamsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if len(input.StreamIDs) == 0 {
		return &ListByStreamsOutput{Events: []*models.GiftEvent{}}, nil
	}

	q := r.db.WithContext(ctx).Where("stream_id IN ?", input.StreamIDs)
	if !input.From.IsZero() {
		q = q.Where("created_at >= ?", input.From)
	}
	if !input.To.IsZero() {
		q = q.Where("created_at <= ?", input.To)
	}

	var recs []Record
	if err := q.Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list gift events: %w", err)
	}

	events := make([]*models.GiftEvent, 0, len(recs))
	for i := range recs {
		events = append(events, recs[i].Model())
	}

	return &ListByStreamsOutput{Events: events}, nil
}
