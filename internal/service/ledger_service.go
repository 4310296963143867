package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
)

// LedgerService handles ledger business logic
type LedgerService struct {
	ledgerRepo   domain.LedgerRepository
	categoryRepo domain.CategoryRepository
	access       *AccessService
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(ledgerRepo domain.LedgerRepository, categoryRepo domain.CategoryRepository, access *AccessService) *LedgerService {
	return &LedgerService{
		ledgerRepo:   ledgerRepo,
		categoryRepo: categoryRepo,
		access:       access,
	}
}

// GetLedgers returns the ledgers the user owns or participates in
func (s *LedgerService) GetLedgers(userID uuid.UUID) ([]*domain.Ledger, error) {
	return s.ledgerRepo.GetAllForUser(userID)
}

// GetLedger returns a single ledger visible to the user
func (s *LedgerService) GetLedger(userID uuid.UUID, ledgerID int32) (*domain.Ledger, error) {
	access, err := s.access.Load(ledgerID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireRead(userID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.GetByID(ledgerID)
}

// CreateLedger creates a ledger owned by the user, seeded with the
// default category set
func (s *LedgerService) CreateLedger(userID uuid.UUID, name, currency string) (*domain.Ledger, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxLedgerNameLength {
		return nil, domain.ErrNameTooLong
	}
	currency, err := normalizeCurrency(currency)
	if err != nil {
		return nil, err
	}

	ledger, err := s.ledgerRepo.Create(&domain.Ledger{
		OwnerID:  userID,
		Name:     name,
		Currency: currency,
	})
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.CreateBatch(ledger.ID, domain.DefaultCategories); err != nil {
		return nil, err
	}
	return ledger, nil
}

// RenameLedger renames a ledger. Owner only.
func (s *LedgerService) RenameLedger(userID uuid.UUID, ledgerID int32, name string) (*domain.Ledger, error) {
	access, err := s.access.Load(ledgerID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOwner(userID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxLedgerNameLength {
		return nil, domain.ErrNameTooLong
	}

	return s.ledgerRepo.Rename(ledgerID, name)
}

// ChangeCurrency changes a ledger's currency code. Owner only.
func (s *LedgerService) ChangeCurrency(userID uuid.UUID, ledgerID int32, currency string) (*domain.Ledger, error) {
	access, err := s.access.Load(ledgerID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOwner(userID); err != nil {
		return nil, err
	}

	currency, err = normalizeCurrency(currency)
	if err != nil {
		return nil, err
	}
	return s.ledgerRepo.UpdateCurrency(ledgerID, currency)
}

// normalizeCurrency validates a 3-letter ISO currency code, defaulting
// empty input to the ledger default
func normalizeCurrency(currency string) (string, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return domain.DefaultCurrency, nil
	}
	if len(currency) != 3 {
		return "", domain.ErrInvalidCurrency
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return "", domain.ErrInvalidCurrency
		}
	}
	return currency, nil
}
