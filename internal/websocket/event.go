package websocket

import (
	"encoding/json"
	"time"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
)

// Event is an activity feed message sent to clients watching a ledger.
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "transaction.create"
	Entity    string      `json:"entity"`    // Entity type e.g. "transaction"
	Payload   interface{} `json:"payload"`   // Activity entry data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event for the given action and entity type
func NewEvent(action domain.ActivityAction, entityType string, payload interface{}) Event {
	return Event{
		Type:      entityType + "." + string(action),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ActivityEvent creates an event carrying an activity log entry
func ActivityEvent(entry *domain.ActivityLogEntry) Event {
	return NewEvent(entry.Action, entry.EntityType, entry)
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
