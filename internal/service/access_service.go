package service

import (
	"errors"

	"github.com/google/uuid"

	"github.com/ledgerly/ledgerly-backend/internal/authz"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
)

// AccessService loads the ownership facts the authorization rules
// decide on. It is the only place the rule set touches persistence.
type AccessService struct {
	ledgerRepo domain.LedgerRepository
	shareRepo  domain.ShareRepository
}

// NewAccessService creates a new AccessService
func NewAccessService(ledgerRepo domain.LedgerRepository, shareRepo domain.ShareRepository) *AccessService {
	return &AccessService{
		ledgerRepo: ledgerRepo,
		shareRepo:  shareRepo,
	}
}

// Load returns the access facts for a ledger. A missing ledger yields
// ErrLedgerNotFound, same as one invisible to the caller.
func (s *AccessService) Load(ledgerID int32) (authz.LedgerAccess, error) {
	ledger, err := s.ledgerRepo.GetByID(ledgerID)
	if err != nil {
		if errors.Is(err, domain.ErrLedgerNotFound) {
			return authz.LedgerAccess{}, domain.ErrLedgerNotFound
		}
		return authz.LedgerAccess{}, err
	}

	shares, err := s.shareRepo.GetByLedger(ledgerID)
	if err != nil {
		return authz.LedgerAccess{}, err
	}

	access := authz.LedgerAccess{
		LedgerID: ledger.ID,
		OwnerID:  ledger.OwnerID,
		Shares:   make(map[uuid.UUID]domain.ShareRole, len(shares)),
	}
	for _, share := range shares {
		access.Shares[share.UserID] = share.Role
	}
	return access, nil
}
