package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ActivityAction classifies a recorded mutation.
type ActivityAction string

const (
	ActivityCreate ActivityAction = "create"
	ActivityUpdate ActivityAction = "update"
	ActivityDelete ActivityAction = "delete"
	ActivityClear  ActivityAction = "clear"
)

// ActivityLogEntry is an append-only record of a mutation against a
// ledger. Entries are never updated or deleted by normal operation.
type ActivityLogEntry struct {
	ID         int32          `json:"id"`
	LedgerID   int32          `json:"ledgerId"`
	UserID     uuid.UUID      `json:"userId"`
	Username   string         `json:"username,omitempty"`
	Action     ActivityAction `json:"action"`
	EntityType string         `json:"entityType"`
	Message    string         `json:"message"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// ActivityLogRepository defines the interface for activity log persistence
type ActivityLogRepository interface {
	Append(entry *ActivityLogEntry) error
	GetByLedger(ledgerID int32, limit int) ([]*ActivityLogEntry, error)
}

// ActivitySink receives activity entries as a non-blocking side effect.
// Callers never wait on or observe the outcome; implementations must
// swallow their own failures.
type ActivitySink interface {
	Record(ctx context.Context, entry *ActivityLogEntry)
}
