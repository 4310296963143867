package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ledger is a named financial book with a currency and exactly one owner.
type Ledger struct {
	ID        int32     `json:"id"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultCurrency is assigned to ledgers created without an explicit currency.
const DefaultCurrency = "USD"

// LedgerRepository defines the interface for ledger persistence
type LedgerRepository interface {
	Create(ledger *Ledger) (*Ledger, error)
	GetByID(id int32) (*Ledger, error)
	// GetAllForUser returns ledgers the user owns or participates in via a share.
	GetAllForUser(userID uuid.UUID) ([]*Ledger, error)
	GetOwnedByUser(userID uuid.UUID) ([]*Ledger, error)
	Rename(id int32, name string) (*Ledger, error)
	UpdateCurrency(id int32, currency string) (*Ledger, error)
}
