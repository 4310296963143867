package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/websocket"
)

// ActivityRecorder persists activity entries and broadcasts them to
// live watchers. Recording is best-effort: failures are logged and
// swallowed so the parent operation never observes them.
type ActivityRecorder struct {
	activityRepo domain.ActivityLogRepository
	publisher    websocket.EventPublisher
}

// NewActivityRecorder creates a new ActivityRecorder
func NewActivityRecorder(activityRepo domain.ActivityLogRepository, publisher websocket.EventPublisher) *ActivityRecorder {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &ActivityRecorder{
		activityRepo: activityRepo,
		publisher:    publisher,
	}
}

var _ domain.ActivitySink = (*ActivityRecorder)(nil)

// Record appends the entry and notifies watchers. Never returns an error.
func (r *ActivityRecorder) Record(ctx context.Context, entry *domain.ActivityLogEntry) {
	if err := r.activityRepo.Append(entry); err != nil {
		log.Debug().
			Err(err).
			Int32("ledger_id", entry.LedgerID).
			Str("action", string(entry.Action)).
			Msg("Failed to append activity entry")
		return
	}
	r.publisher.Publish(entry.LedgerID, websocket.ActivityEvent(entry))
}

// ActivityService answers activity log queries
type ActivityService struct {
	activityRepo domain.ActivityLogRepository
	access       *AccessService
}

// DefaultActivityLimit bounds how many entries a single query returns.
const DefaultActivityLimit = 100

// NewActivityService creates a new ActivityService
func NewActivityService(activityRepo domain.ActivityLogRepository, access *AccessService) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		access:       access,
	}
}

// GetLogs returns the most recent activity entries of a ledger. The
// visibility rule is the ledger's: owner or any shared role.
func (s *ActivityService) GetLogs(userID uuid.UUID, ledgerID int32) ([]*domain.ActivityLogEntry, error) {
	access, err := s.access.Load(ledgerID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireRead(userID); err != nil {
		return nil, err
	}
	return s.activityRepo.GetByLedger(ledgerID, DefaultActivityLimit)
}

// activityMessage builds the human-readable audit message
func activityMessage(action domain.ActivityAction, entityType, detail string) string {
	return fmt.Sprintf("%s %s: %s", action, entityType, detail)
}
