package domain

import (
	"time"

	"github.com/google/uuid"
)

// ShareRole is the access level granted to a non-owner participant.
type ShareRole string

const (
	// RoleEditor grants read-write access to categories and transactions.
	RoleEditor ShareRole = "editor"
	// RoleViewer grants read-only access.
	RoleViewer ShareRole = "viewer"
)

// Valid reports whether the role is one of the known share roles.
func (r ShareRole) Valid() bool {
	return r == RoleEditor || r == RoleViewer
}

// LedgerShare associates a ledger with a non-owner user and a role.
// A (ledger, user) pair appears at most once.
type LedgerShare struct {
	ID        int32     `json:"id"`
	LedgerID  int32     `json:"ledgerId"`
	UserID    uuid.UUID `json:"userId"`
	Username  string    `json:"username,omitempty"`
	Role      ShareRole `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ShareRepository defines the interface for ledger share persistence
type ShareRepository interface {
	Create(share *LedgerShare) (*LedgerShare, error)
	GetByID(id int32) (*LedgerShare, error)
	GetByLedger(ledgerID int32) ([]*LedgerShare, error)
	GetByLedgerAndUser(ledgerID int32, userID uuid.UUID) (*LedgerShare, error)
	UpdateRole(id int32, role ShareRole) (*LedgerShare, error)
	Delete(id int32) error
}
