package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/pkbattle/internal/common/uuid UUID

// UUID generates identifiers for battles, gift events and ledger entries
type UUID interface {
	NewUUID() string
}

// DefaultUUID generates version 7 UUIDs, which sort by creation time
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new time-ordered UUID, falling back to a random one if the clock source fails
func (d *DefaultUUID) NewUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
