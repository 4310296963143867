package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/testutil"
)

func newTransactionService(f *ledgerFixture, sink domain.ActivitySink) *TransactionService {
	return NewTransactionService(f.Transactions, f.Categories, f.Access, sink)
}

func TestCreateTransaction_Success_RecordsActivity(t *testing.T) {
	f := newLedgerFixture()
	sink := testutil.NewMockActivitySink()
	svc := newTransactionService(f, sink)
	groceries := f.addCategory("Groceries", domain.EntryExpense)

	created, err := svc.CreateTransaction(context.Background(), f.Owner, &domain.Transaction{
		LedgerID:    f.Ledger.ID,
		CategoryID:  groceries.ID,
		Type:        domain.EntryExpense,
		Amount:      decimal.NewFromFloat(42.50),
		Date:        time.Now(),
		Description: "Weekly shop",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if created.ID == 0 {
		t.Error("Expected transaction to get an ID")
	}

	entries := sink.Recorded()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 activity entry, got %d", len(entries))
	}
	if entries[0].Action != domain.ActivityCreate {
		t.Errorf("Expected create action, got %s", entries[0].Action)
	}
	if entries[0].EntityType != "transaction" {
		t.Errorf("Expected transaction entity, got %s", entries[0].EntityType)
	}
}

func TestCreateTransaction_EditorAllowed(t *testing.T) {
	f := newLedgerFixture()
	svc := newTransactionService(f, testutil.NewMockActivitySink())
	salary := f.addCategory("Salary", domain.EntryIncome)

	_, err := svc.CreateTransaction(context.Background(), f.Editor, &domain.Transaction{
		LedgerID:   f.Ledger.ID,
		CategoryID: salary.ID,
		Type:       domain.EntryIncome,
		Amount:     decimal.NewFromInt(1000),
		Date:       time.Now(),
	})
	if err != nil {
		t.Fatalf("Expected editor to create, got %v", err)
	}
}

func TestCreateTransaction_ViewerForbidden(t *testing.T) {
	f := newLedgerFixture()
	sink := testutil.NewMockActivitySink()
	svc := newTransactionService(f, sink)
	groceries := f.addCategory("Groceries", domain.EntryExpense)

	_, err := svc.CreateTransaction(context.Background(), f.Viewer, &domain.Transaction{
		LedgerID:   f.Ledger.ID,
		CategoryID: groceries.ID,
		Type:       domain.EntryExpense,
		Amount:     decimal.NewFromInt(10),
		Date:       time.Now(),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Expected ErrForbidden, got %v", err)
	}
	if len(sink.Recorded()) != 0 {
		t.Error("Expected no activity entry for rejected create")
	}
}

func TestCreateTransaction_StrangerSeesNotFound(t *testing.T) {
	f := newLedgerFixture()
	svc := newTransactionService(f, testutil.NewMockActivitySink())
	groceries := f.addCategory("Groceries", domain.EntryExpense)

	_, err := svc.CreateTransaction(context.Background(), f.Stranger, &domain.Transaction{
		LedgerID:   f.Ledger.ID,
		CategoryID: groceries.ID,
		Type:       domain.EntryExpense,
		Amount:     decimal.NewFromInt(10),
		Date:       time.Now(),
	})
	if !errors.Is(err, domain.ErrLedgerNotFound) {
		t.Fatalf("Expected ErrLedgerNotFound, got %v", err)
	}
}

func TestCreateTransaction_CategoryFromOtherLedger(t *testing.T) {
	f := newLedgerFixture()
	svc := newTransactionService(f, testutil.NewMockActivitySink())

	other := &domain.Category{LedgerID: f.Ledger.ID + 99, Name: "Elsewhere", Type: domain.EntryExpense}
	f.Categories.AddCategory(other)

	_, err := svc.CreateTransaction(context.Background(), f.Owner, &domain.Transaction{
		LedgerID:   f.Ledger.ID,
		CategoryID: other.ID,
		Type:       domain.EntryExpense,
		Amount:     decimal.NewFromInt(10),
		Date:       time.Now(),
	})
	if !errors.Is(err, domain.ErrCategoryMismatch) {
		t.Fatalf("Expected ErrCategoryMismatch, got %v", err)
	}
}

func TestCreateTransaction_AmountMustBePositive(t *testing.T) {
	f := newLedgerFixture()
	svc := newTransactionService(f, testutil.NewMockActivitySink())
	groceries := f.addCategory("Groceries", domain.EntryExpense)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := svc.CreateTransaction(context.Background(), f.Owner, &domain.Transaction{
			LedgerID:   f.Ledger.ID,
			CategoryID: groceries.ID,
			Type:       domain.EntryExpense,
			Amount:     amount,
			Date:       time.Now(),
		})
		if !errors.Is(err, domain.ErrAmountNotPositive) {
			t.Errorf("Amount %s: expected ErrAmountNotPositive, got %v", amount, err)
		}
	}
}

func TestGetTransactions_ViewerAllowed(t *testing.T) {
	f := newLedgerFixture()
	svc := newTransactionService(f, testutil.NewMockActivitySink())
	f.Transactions.AddTransaction(&domain.Transaction{
		LedgerID: f.Ledger.ID,
		Type:     domain.EntryExpense,
		Amount:   decimal.NewFromInt(10),
	})

	transactions, err := svc.GetTransactions(f.Viewer, f.Ledger.ID)
	if err != nil {
		t.Fatalf("Expected viewer to read, got %v", err)
	}
	if len(transactions) != 1 {
		t.Errorf("Expected 1 transaction, got %d", len(transactions))
	}
}

func TestGetTransactions_StrangerSeesNotFound(t *testing.T) {
	f := newLedgerFixture()
	svc := newTransactionService(f, testutil.NewMockActivitySink())

	_, err := svc.GetTransactions(f.Stranger, f.Ledger.ID)
	if !errors.Is(err, domain.ErrLedgerNotFound) {
		t.Fatalf("Expected ErrLedgerNotFound, got %v", err)
	}
}

func TestGetSummary(t *testing.T) {
	f := newLedgerFixture()
	svc := newTransactionService(f, testutil.NewMockActivitySink())
	f.Transactions.AddTransaction(&domain.Transaction{LedgerID: f.Ledger.ID, Type: domain.EntryIncome, Amount: decimal.NewFromInt(1000)})
	f.Transactions.AddTransaction(&domain.Transaction{LedgerID: f.Ledger.ID, Type: domain.EntryExpense, Amount: decimal.NewFromFloat(250.25)})

	summary, err := svc.GetSummary(f.Owner, f.Ledger.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !summary.Balance.Equal(decimal.NewFromFloat(749.75)) {
		t.Errorf("Expected balance 749.75, got %s", summary.Balance)
	}
	if summary.TransactionCount != 2 {
		t.Errorf("Expected count 2, got %d", summary.TransactionCount)
	}
}

func TestDeleteTransaction_ViewerForbidden(t *testing.T) {
	f := newLedgerFixture()
	svc := newTransactionService(f, testutil.NewMockActivitySink())
	tx := &domain.Transaction{LedgerID: f.Ledger.ID, Type: domain.EntryExpense, Amount: decimal.NewFromInt(10)}
	f.Transactions.AddTransaction(tx)

	err := svc.DeleteTransaction(context.Background(), f.Viewer, tx.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Expected ErrForbidden, got %v", err)
	}
}

func TestDeleteTransaction_StrangerSeesNotFound(t *testing.T) {
	f := newLedgerFixture()
	svc := newTransactionService(f, testutil.NewMockActivitySink())
	tx := &domain.Transaction{LedgerID: f.Ledger.ID, Type: domain.EntryExpense, Amount: decimal.NewFromInt(10)}
	f.Transactions.AddTransaction(tx)

	err := svc.DeleteTransaction(context.Background(), f.Stranger, tx.ID)
	if !errors.Is(err, domain.ErrLedgerNotFound) && !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Fatalf("Expected not-found error, got %v", err)
	}
}
