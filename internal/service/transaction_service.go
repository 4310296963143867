package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerly/ledgerly-backend/internal/authz"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
)

// TransactionService handles transaction business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	categoryRepo    domain.CategoryRepository
	access          *AccessService
	activity        domain.ActivitySink
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, categoryRepo domain.CategoryRepository, access *AccessService, activity domain.ActivitySink) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		access:          access,
		activity:        activity,
	}
}

// GetTransactions returns all transactions of a ledger, newest first
func (s *TransactionService) GetTransactions(userID uuid.UUID, ledgerID int32) ([]*domain.Transaction, error) {
	access, err := s.access.Load(ledgerID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireRead(userID); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetAllByLedger(ledgerID)
}

// GetSummary aggregates a ledger's transactions into income, expense
// and balance totals
func (s *TransactionService) GetSummary(userID uuid.UUID, ledgerID int32) (*domain.Summary, error) {
	transactions, err := s.GetTransactions(userID, ledgerID)
	if err != nil {
		return nil, err
	}
	summary := domain.CalculateSummary(transactions)
	return &summary, nil
}

// CreateTransaction validates and stores a new transaction. Owner and
// editors only. A successful create is recorded in the activity log.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID uuid.UUID, transaction *domain.Transaction) (*domain.Transaction, error) {
	access, err := s.access.Load(transaction.LedgerID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireWrite(userID); err != nil {
		return nil, err
	}
	if err := s.validateTransaction(transaction); err != nil {
		return nil, err
	}

	receipt, err := NormalizeReceipt(transaction.Receipt)
	if err != nil {
		return nil, err
	}
	transaction.Receipt = receipt

	created, err := s.transactionRepo.Create(transaction)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &domain.ActivityLogEntry{
		LedgerID:   created.LedgerID,
		UserID:     userID,
		Action:     domain.ActivityCreate,
		EntityType: "transaction",
		Message:    activityMessage(domain.ActivityCreate, "transaction", transactionDetail(created)),
	})

	return created, nil
}

// UpdateTransaction validates and stores changes to an existing
// transaction. Owner and editors only.
func (s *TransactionService) UpdateTransaction(ctx context.Context, userID uuid.UUID, transaction *domain.Transaction) (*domain.Transaction, error) {
	existing, access, err := s.loadTransaction(userID, transaction.ID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireWrite(userID); err != nil {
		return nil, err
	}

	transaction.LedgerID = existing.LedgerID
	if err := s.validateTransaction(transaction); err != nil {
		return nil, err
	}

	receipt, err := NormalizeReceipt(transaction.Receipt)
	if err != nil {
		return nil, err
	}
	transaction.Receipt = receipt

	updated, err := s.transactionRepo.Update(transaction)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &domain.ActivityLogEntry{
		LedgerID:   updated.LedgerID,
		UserID:     userID,
		Action:     domain.ActivityUpdate,
		EntityType: "transaction",
		Message:    activityMessage(domain.ActivityUpdate, "transaction", transactionDetail(updated)),
	})

	return updated, nil
}

// DeleteTransaction removes a transaction. Owner and editors only.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID uuid.UUID, transactionID int32) error {
	existing, access, err := s.loadTransaction(userID, transactionID)
	if err != nil {
		return err
	}
	if err := access.RequireWrite(userID); err != nil {
		return err
	}

	if err := s.transactionRepo.Delete(transactionID); err != nil {
		return err
	}

	s.activity.Record(ctx, &domain.ActivityLogEntry{
		LedgerID:   existing.LedgerID,
		UserID:     userID,
		Action:     domain.ActivityDelete,
		EntityType: "transaction",
		Message:    activityMessage(domain.ActivityDelete, "transaction", transactionDetail(existing)),
	})

	return nil
}

// loadTransaction fetches a transaction together with its ledger's
// access facts. Transactions in ledgers invisible to the caller look
// like they do not exist.
func (s *TransactionService) loadTransaction(userID uuid.UUID, transactionID int32) (*domain.Transaction, authz.LedgerAccess, error) {
	transaction, err := s.transactionRepo.GetByID(transactionID)
	if err != nil {
		return nil, authz.LedgerAccess{}, err
	}
	access, err := s.access.Load(transaction.LedgerID)
	if err != nil {
		return nil, authz.LedgerAccess{}, err
	}
	if !access.CanRead(userID) {
		return nil, authz.LedgerAccess{}, domain.ErrTransactionNotFound
	}
	return transaction, access, nil
}

func (s *TransactionService) validateTransaction(transaction *domain.Transaction) error {
	if !transaction.Type.Valid() {
		return domain.ErrInvalidEntryType
	}
	if !transaction.Amount.IsPositive() {
		return domain.ErrAmountNotPositive
	}
	transaction.Description = strings.TrimSpace(transaction.Description)
	if len(transaction.Description) > domain.MaxDescriptionLen {
		return domain.ErrNameTooLong
	}
	if len(transaction.Note) > domain.MaxNoteLength {
		return domain.ErrNameTooLong
	}

	category, err := s.categoryRepo.GetByID(transaction.CategoryID)
	if err != nil {
		return domain.ErrCategoryNotFound
	}
	if category.LedgerID != transaction.LedgerID {
		return domain.ErrCategoryMismatch
	}
	if category.Type != transaction.Type {
		return domain.ErrCategoryMismatch
	}
	return nil
}

func transactionDetail(t *domain.Transaction) string {
	if t.Description != "" {
		return t.Description
	}
	return fmt.Sprintf("%s %s", t.Type, t.Amount.String())
}
