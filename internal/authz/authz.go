// Package authz decides whether a user may act on a ledger and its
// contents. Decisions are pure functions of persisted ownership and
// sharing facts; callers load the facts and ask, no database access
// happens here.
package authz

import (
	"github.com/google/uuid"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
)

// LedgerAccess captures the ownership facts for one ledger: who owns
// it and which non-owners hold a share, at what role.
type LedgerAccess struct {
	LedgerID int32
	OwnerID  uuid.UUID
	Shares   map[uuid.UUID]domain.ShareRole
}

// IsOwner reports whether the user owns the ledger.
func (a LedgerAccess) IsOwner(userID uuid.UUID) bool {
	return a.OwnerID == userID
}

// CanRead reports whether the user may see the ledger and its
// categories, transactions and activity log. Owners and any shared
// role (editor or viewer) qualify.
func (a LedgerAccess) CanRead(userID uuid.UUID) bool {
	if a.IsOwner(userID) {
		return true
	}
	_, ok := a.Shares[userID]
	return ok
}

// CanWrite reports whether the user may mutate categories and
// transactions. Owners and editor shares qualify; viewers do not.
func (a LedgerAccess) CanWrite(userID uuid.UUID) bool {
	if a.IsOwner(userID) {
		return true
	}
	return a.Shares[userID] == domain.RoleEditor
}

// Role returns the effective role of the user on the ledger, or false
// when the user is not a participant. Owners report RoleEditor.
func (a LedgerAccess) Role(userID uuid.UUID) (domain.ShareRole, bool) {
	if a.IsOwner(userID) {
		return domain.RoleEditor, true
	}
	role, ok := a.Shares[userID]
	return role, ok
}

// RequireRead returns ErrLedgerNotFound when the user may not see the
// ledger. NotFound, not Forbidden: existence is never confirmed to a
// user who is not a participant.
func (a LedgerAccess) RequireRead(userID uuid.UUID) error {
	if !a.CanRead(userID) {
		return domain.ErrLedgerNotFound
	}
	return nil
}

// RequireWrite returns ErrLedgerNotFound for non-participants and
// ErrForbidden for viewers.
func (a LedgerAccess) RequireWrite(userID uuid.UUID) error {
	if err := a.RequireRead(userID); err != nil {
		return err
	}
	if !a.CanWrite(userID) {
		return domain.ErrForbidden
	}
	return nil
}

// RequireOwner returns ErrLedgerNotFound for non-participants and
// ErrForbidden for shared users of either role. Owner-only operations:
// rename, currency change, share management, receipt bulk clear.
func (a LedgerAccess) RequireOwner(userID uuid.UUID) error {
	if err := a.RequireRead(userID); err != nil {
		return err
	}
	if !a.IsOwner(userID) {
		return domain.ErrForbidden
	}
	return nil
}
