package service

import (
	"github.com/google/uuid"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
)

// ProfileService handles user profile and preference logic
type ProfileService struct {
	userRepo domain.UserRepository
	access   *AccessService
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo domain.UserRepository, access *AccessService) *ProfileService {
	return &ProfileService{userRepo: userRepo, access: access}
}

// GetUser returns the caller's profile
func (s *ProfileService) GetUser(userID uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(userID)
}

// GetPreferences returns the caller's stored preferences
func (s *ProfileService) GetPreferences(userID uuid.UUID) (*domain.Preferences, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return &domain.Preferences{
		DarkMode:        user.DarkMode,
		CurrentLedgerID: user.CurrentLedgerID,
	}, nil
}

// PreferencesPatch carries a partial preference update. Nil fields
// keep their stored value.
type PreferencesPatch struct {
	DarkMode        *bool  `json:"darkMode"`
	CurrentLedgerID *int32 `json:"currentLedgerId"`
}

// UpdatePreferences merges a patch into the caller's stored
// preferences. A current ledger selection is only accepted when the
// caller can read that ledger.
func (s *ProfileService) UpdatePreferences(userID uuid.UUID, patch *PreferencesPatch) (*domain.Preferences, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	prefs := domain.Preferences{
		DarkMode:        user.DarkMode,
		CurrentLedgerID: user.CurrentLedgerID,
	}
	if patch.DarkMode != nil {
		prefs.DarkMode = *patch.DarkMode
	}
	if patch.CurrentLedgerID != nil {
		access, err := s.access.Load(*patch.CurrentLedgerID)
		if err != nil {
			return nil, err
		}
		if err := access.RequireRead(userID); err != nil {
			return nil, err
		}
		prefs.CurrentLedgerID = patch.CurrentLedgerID
	}

	updated, err := s.userRepo.UpdatePreferences(userID, prefs)
	if err != nil {
		return nil, err
	}
	return &domain.Preferences{
		DarkMode:        updated.DarkMode,
		CurrentLedgerID: updated.CurrentLedgerID,
	}, nil
}
