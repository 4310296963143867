package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/testutil"
)

// "aGVsbG8=" decodes to "hello", 5 bytes
const helloReceipt = "data:text/plain;base64,aGVsbG8="

func TestGetStats_AggregatesDecodedSizes(t *testing.T) {
	f := newLedgerFixture()
	svc := NewReceiptService(f.Transactions, f.Access, nil, testutil.NewMockActivitySink())

	f.Transactions.AddTransaction(&domain.Transaction{LedgerID: f.Ledger.ID, Receipt: helloReceipt})
	f.Transactions.AddTransaction(&domain.Transaction{LedgerID: f.Ledger.ID, Receipt: "aGk="})
	f.Transactions.AddTransaction(&domain.Transaction{LedgerID: f.Ledger.ID})

	stats, err := svc.GetStats(f.Viewer, f.Ledger.ID)
	if err != nil {
		t.Fatalf("Expected viewer to read stats, got %v", err)
	}
	if stats.Count != 2 {
		t.Errorf("Expected 2 receipts, got %d", stats.Count)
	}
	if stats.TotalBytes != 7 {
		t.Errorf("Expected 7 decoded bytes, got %d", stats.TotalBytes)
	}
	if stats.TotalSize != "7 Bytes" {
		t.Errorf("Expected formatted size, got %q", stats.TotalSize)
	}
}

func TestGetStats_StrangerSeesNotFound(t *testing.T) {
	f := newLedgerFixture()
	svc := NewReceiptService(f.Transactions, f.Access, nil, testutil.NewMockActivitySink())

	_, err := svc.GetStats(f.Stranger, f.Ledger.ID)
	if !errors.Is(err, domain.ErrLedgerNotFound) {
		t.Fatalf("Expected ErrLedgerNotFound, got %v", err)
	}
}

func TestClearReceipts_OwnerOnly(t *testing.T) {
	f := newLedgerFixture()
	svc := NewReceiptService(f.Transactions, f.Access, nil, testutil.NewMockActivitySink())
	f.Transactions.AddTransaction(&domain.Transaction{LedgerID: f.Ledger.ID, Receipt: helloReceipt})

	if _, err := svc.ClearReceipts(context.Background(), f.Editor, f.Ledger.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Expected ErrForbidden for editor, got %v", err)
	}
	if _, err := svc.ClearReceipts(context.Background(), f.Viewer, f.Ledger.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Expected ErrForbidden for viewer, got %v", err)
	}
}

func TestClearReceipts_WipesAndRecordsActivity(t *testing.T) {
	f := newLedgerFixture()
	sink := testutil.NewMockActivitySink()
	svc := NewReceiptService(f.Transactions, f.Access, nil, sink)
	tx := &domain.Transaction{LedgerID: f.Ledger.ID, Receipt: helloReceipt}
	f.Transactions.AddTransaction(tx)

	result, err := svc.ClearReceipts(context.Background(), f.Owner, f.Ledger.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Cleared != 1 {
		t.Errorf("Expected 1 cleared, got %d", result.Cleared)
	}
	if tx.Receipt != "" {
		t.Error("Expected receipt to be wiped")
	}

	entries := sink.Recorded()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 activity entry, got %d", len(entries))
	}
	if entries[0].Action != domain.ActivityClear {
		t.Errorf("Expected clear action, got %s", entries[0].Action)
	}
}

func TestClearReceipts_ArchivesBeforeWiping(t *testing.T) {
	f := newLedgerFixture()
	archive := testutil.NewMockReceiptArchive()
	svc := NewReceiptService(f.Transactions, f.Access, archive, testutil.NewMockActivitySink())
	f.Transactions.AddTransaction(&domain.Transaction{LedgerID: f.Ledger.ID, Receipt: helloReceipt})

	result, err := svc.ClearReceipts(context.Background(), f.Owner, f.Ledger.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Archived != 1 {
		t.Errorf("Expected 1 archived, got %d", result.Archived)
	}
	if len(archive.Objects) != 1 {
		t.Fatalf("Expected 1 archived object, got %d", len(archive.Objects))
	}
	for _, payload := range archive.Objects {
		if string(payload) != "hello" {
			t.Errorf("Expected decoded payload, got %q", payload)
		}
	}
}

func TestClearReceipts_ArchiveFailureDoesNotBlock(t *testing.T) {
	f := newLedgerFixture()
	archive := testutil.NewMockReceiptArchive()
	archive.Err = errors.New("bucket unavailable")
	svc := NewReceiptService(f.Transactions, f.Access, archive, testutil.NewMockActivitySink())
	tx := &domain.Transaction{LedgerID: f.Ledger.ID, Receipt: helloReceipt}
	f.Transactions.AddTransaction(tx)

	result, err := svc.ClearReceipts(context.Background(), f.Owner, f.Ledger.ID)
	if err != nil {
		t.Fatalf("Expected clear to succeed despite archive failure, got %v", err)
	}
	if result.Archived != 0 {
		t.Errorf("Expected 0 archived, got %d", result.Archived)
	}
	if result.Cleared != 1 {
		t.Errorf("Expected 1 cleared, got %d", result.Cleared)
	}
}

func TestNormalizeReceipt_Empty(t *testing.T) {
	got, err := NormalizeReceipt("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != "" {
		t.Errorf("Expected empty result, got %q", got)
	}
}

func TestNormalizeReceipt_InvalidBase64(t *testing.T) {
	if _, err := NormalizeReceipt("data:image/png;base64,!!not-base64!!"); !errors.Is(err, domain.ErrReceiptInvalid) {
		t.Fatalf("Expected ErrReceiptInvalid, got %v", err)
	}
}

func TestNormalizeReceipt_NotAnImage(t *testing.T) {
	if _, err := NormalizeReceipt(helloReceipt); !errors.Is(err, domain.ErrReceiptInvalid) {
		t.Fatalf("Expected ErrReceiptInvalid, got %v", err)
	}
}
