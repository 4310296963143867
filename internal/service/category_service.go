package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerly/ledgerly-backend/internal/authz"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo domain.CategoryRepository
	access       *AccessService
	activity     domain.ActivitySink
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository, access *AccessService, activity domain.ActivitySink) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		access:       access,
		activity:     activity,
	}
}

// GetCategories returns the categories of a ledger visible to the user
func (s *CategoryService) GetCategories(userID uuid.UUID, ledgerID int32) ([]*domain.Category, error) {
	access, err := s.access.Load(ledgerID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireRead(userID); err != nil {
		return nil, err
	}
	return s.categoryRepo.GetAllByLedger(ledgerID)
}

// CreateCategory creates a category. Owner or editor.
func (s *CategoryService) CreateCategory(ctx context.Context, userID uuid.UUID, category *domain.Category) (*domain.Category, error) {
	access, err := s.access.Load(category.LedgerID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireWrite(userID); err != nil {
		return nil, err
	}

	if err := validateCategory(category); err != nil {
		return nil, err
	}

	created, err := s.categoryRepo.Create(category)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &domain.ActivityLogEntry{
		LedgerID:   created.LedgerID,
		UserID:     userID,
		Action:     domain.ActivityCreate,
		EntityType: "category",
		Message:    activityMessage(domain.ActivityCreate, "category", created.Name),
	})

	return created, nil
}

// UpdateCategory updates a category. Owner or editor.
func (s *CategoryService) UpdateCategory(ctx context.Context, userID uuid.UUID, id int32, name string, entryType domain.EntryType, color, icon string) (*domain.Category, error) {
	category, access, err := s.loadCategory(userID, id)
	if err != nil {
		return nil, err
	}
	if err := access.RequireWrite(userID); err != nil {
		return nil, err
	}

	updated := &domain.Category{Name: name, Type: entryType, Color: color, Icon: icon}
	if err := validateCategory(updated); err != nil {
		return nil, err
	}

	result, err := s.categoryRepo.Update(category.ID, updated.Name, updated.Type, updated.Color, updated.Icon)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &domain.ActivityLogEntry{
		LedgerID:   result.LedgerID,
		UserID:     userID,
		Action:     domain.ActivityUpdate,
		EntityType: "category",
		Message:    activityMessage(domain.ActivityUpdate, "category", result.Name),
	})

	return result, nil
}

// DeleteCategory removes a category. Owner or editor; blocked for
// everyone while transactions reference the category.
func (s *CategoryService) DeleteCategory(ctx context.Context, userID uuid.UUID, id int32) error {
	category, access, err := s.loadCategory(userID, id)
	if err != nil {
		return err
	}
	if err := access.RequireWrite(userID); err != nil {
		return err
	}

	count, err := s.categoryRepo.CountTransactions(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}

	s.activity.Record(ctx, &domain.ActivityLogEntry{
		LedgerID:   category.LedgerID,
		UserID:     userID,
		Action:     domain.ActivityDelete,
		EntityType: "category",
		Message:    activityMessage(domain.ActivityDelete, "category", category.Name),
	})

	return nil
}

// loadCategory fetches a category and its ledger access facts. A
// category on an invisible ledger reports ErrCategoryNotFound.
func (s *CategoryService) loadCategory(userID uuid.UUID, id int32) (*domain.Category, authz.LedgerAccess, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, authz.LedgerAccess{}, err
	}

	access, err := s.access.Load(category.LedgerID)
	if err != nil {
		return nil, authz.LedgerAccess{}, err
	}
	if !access.CanRead(userID) {
		return nil, authz.LedgerAccess{}, domain.ErrCategoryNotFound
	}
	return category, access, nil
}

func validateCategory(category *domain.Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return domain.ErrNameRequired
	}
	if len(category.Name) > domain.MaxCategoryNameLen {
		return domain.ErrNameTooLong
	}
	if !category.Type.Valid() {
		return domain.ErrInvalidEntryType
	}
	return nil
}
