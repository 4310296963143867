package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
)

// ShareService handles ledger sharing business logic
type ShareService struct {
	shareRepo domain.ShareRepository
	userRepo  domain.UserRepository
	access    *AccessService
	activity  domain.ActivitySink
}

// NewShareService creates a new ShareService
func NewShareService(shareRepo domain.ShareRepository, userRepo domain.UserRepository, access *AccessService, activity domain.ActivitySink) *ShareService {
	return &ShareService{
		shareRepo: shareRepo,
		userRepo:  userRepo,
		access:    access,
		activity:  activity,
	}
}

// GetShares lists the shares of a ledger. Any participant may read.
func (s *ShareService) GetShares(userID uuid.UUID, ledgerID int32) ([]*domain.LedgerShare, error) {
	access, err := s.access.Load(ledgerID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireRead(userID); err != nil {
		return nil, err
	}
	return s.shareRepo.GetByLedger(ledgerID)
}

// Invite grants another user access to a ledger by username. Owner only.
func (s *ShareService) Invite(ctx context.Context, userID uuid.UUID, ledgerID int32, username string, role domain.ShareRole) (*domain.LedgerShare, error) {
	access, err := s.access.Load(ledgerID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOwner(userID); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	invitee, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if invitee.ID == access.OwnerID {
		return nil, domain.ErrShareSelf
	}
	if _, err := s.shareRepo.GetByLedgerAndUser(ledgerID, invitee.ID); err == nil {
		return nil, domain.ErrShareExists
	}

	share, err := s.shareRepo.Create(&domain.LedgerShare{
		LedgerID: ledgerID,
		UserID:   invitee.ID,
		Role:     role,
	})
	if err != nil {
		return nil, err
	}
	share.Username = invitee.Username

	s.activity.Record(ctx, &domain.ActivityLogEntry{
		LedgerID:   ledgerID,
		UserID:     userID,
		Action:     domain.ActivityCreate,
		EntityType: "share",
		Message:    activityMessage(domain.ActivityCreate, "share", invitee.Username+" invited as "+string(role)),
	})

	return share, nil
}

// UpdateRole changes a collaborator's role. Owner only.
func (s *ShareService) UpdateRole(ctx context.Context, userID uuid.UUID, shareID int32, role domain.ShareRole) (*domain.LedgerShare, error) {
	share, err := s.loadShare(userID, shareID)
	if err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	updated, err := s.shareRepo.UpdateRole(shareID, role)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &domain.ActivityLogEntry{
		LedgerID:   share.LedgerID,
		UserID:     userID,
		Action:     domain.ActivityUpdate,
		EntityType: "share",
		Message:    activityMessage(domain.ActivityUpdate, "share", share.Username+" set to "+string(role)),
	})

	return updated, nil
}

// Revoke removes a collaborator's access. Owner only.
func (s *ShareService) Revoke(ctx context.Context, userID uuid.UUID, shareID int32) error {
	share, err := s.loadShare(userID, shareID)
	if err != nil {
		return err
	}

	if err := s.shareRepo.Delete(shareID); err != nil {
		return err
	}

	s.activity.Record(ctx, &domain.ActivityLogEntry{
		LedgerID:   share.LedgerID,
		UserID:     userID,
		Action:     domain.ActivityDelete,
		EntityType: "share",
		Message:    activityMessage(domain.ActivityDelete, "share", share.Username+" removed"),
	})

	return nil
}

// loadShare fetches a share and checks the caller owns its ledger.
// Shares of ledgers invisible to the caller look like they do not exist.
func (s *ShareService) loadShare(userID uuid.UUID, shareID int32) (*domain.LedgerShare, error) {
	share, err := s.shareRepo.GetByID(shareID)
	if err != nil {
		return nil, err
	}
	access, err := s.access.Load(share.LedgerID)
	if err != nil {
		return nil, err
	}
	if !access.CanRead(userID) {
		return nil, domain.ErrShareNotFound
	}
	if err := access.RequireOwner(userID); err != nil {
		return nil, err
	}
	return share, nil
}
