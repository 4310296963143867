package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/testutil"
)

func TestActivityRecorder_AppendFailureSwallowed(t *testing.T) {
	repo := testutil.NewMockActivityLogRepository()
	repo.AppendFn = func(entry *domain.ActivityLogEntry) error {
		return errors.New("database down")
	}
	recorder := NewActivityRecorder(repo, nil)

	// Must not panic or surface the failure in any way.
	recorder.Record(context.Background(), &domain.ActivityLogEntry{
		LedgerID:   1,
		Action:     domain.ActivityCreate,
		EntityType: "transaction",
		Message:    "created transaction: test",
	})
}

func TestActivityRecorder_AppendsEntry(t *testing.T) {
	repo := testutil.NewMockActivityLogRepository()
	recorder := NewActivityRecorder(repo, nil)

	recorder.Record(context.Background(), &domain.ActivityLogEntry{
		LedgerID:   1,
		Action:     domain.ActivityDelete,
		EntityType: "category",
		Message:    "deleted category: Groceries",
	})

	if len(repo.Entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(repo.Entries))
	}
	if repo.Entries[0].ID == 0 {
		t.Error("Expected entry to get an ID")
	}
}

func TestGetLogs_RequiresRead(t *testing.T) {
	f := newLedgerFixture()
	repo := testutil.NewMockActivityLogRepository()
	svc := NewActivityService(repo, f.Access)

	repo.Append(&domain.ActivityLogEntry{LedgerID: f.Ledger.ID, Action: domain.ActivityCreate, EntityType: "transaction"})

	logs, err := svc.GetLogs(f.Viewer, f.Ledger.ID)
	if err != nil {
		t.Fatalf("Expected viewer to read logs, got %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("Expected 1 entry, got %d", len(logs))
	}

	if _, err := svc.GetLogs(f.Stranger, f.Ledger.ID); !errors.Is(err, domain.ErrLedgerNotFound) {
		t.Fatalf("Expected ErrLedgerNotFound for stranger, got %v", err)
	}
}

func TestGetLogs_NewestFirst(t *testing.T) {
	f := newLedgerFixture()
	repo := testutil.NewMockActivityLogRepository()
	svc := NewActivityService(repo, f.Access)

	repo.Append(&domain.ActivityLogEntry{LedgerID: f.Ledger.ID, Message: "first"})
	repo.Append(&domain.ActivityLogEntry{LedgerID: f.Ledger.ID, Message: "second"})

	logs, err := svc.GetLogs(f.Owner, f.Ledger.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(logs) != 2 || logs[0].Message != "second" {
		t.Errorf("Expected newest entry first, got %+v", logs)
	}
}
