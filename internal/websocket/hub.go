package websocket

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrClientClosed is returned when attempting to send to a closed client
var ErrClientClosed = errors.New("client is closed")

// Watcher is one live subscriber of a ledger's activity feed.
type Watcher interface {
	ID() string
	LedgerID() int32
	Send(data []byte) error
	Close() error
}

// Hub fans activity events out to the watchers of each ledger.
// It is safe for concurrent use.
type Hub struct {
	watchers map[int32]map[string]Watcher
	mu       sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		watchers: make(map[int32]map[string]Watcher),
	}
}

// Register adds a watcher to its ledger's feed
func (h *Hub) Register(w Watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ledgerID := w.LedgerID()
	if h.watchers[ledgerID] == nil {
		h.watchers[ledgerID] = make(map[string]Watcher)
	}
	h.watchers[ledgerID][w.ID()] = w

	log.Debug().
		Int32("ledger_id", ledgerID).
		Str("watcher_id", w.ID()).
		Msg("Activity watcher registered")
}

// Unregister removes a watcher from its ledger's feed
func (h *Hub) Unregister(w Watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ledgerID := w.LedgerID()
	watchers, ok := h.watchers[ledgerID]
	if !ok {
		return
	}
	if _, exists := watchers[w.ID()]; !exists {
		return
	}
	delete(watchers, w.ID())
	if len(watchers) == 0 {
		delete(h.watchers, ledgerID)
	}

	log.Debug().
		Int32("ledger_id", ledgerID).
		Str("watcher_id", w.ID()).
		Msg("Activity watcher unregistered")
}

// Publish sends an event to every watcher of a ledger. Slow or broken
// watchers are skipped, never waited on.
func (h *Hub) Publish(ledgerID int32, event Event) {
	data, err := event.ToJSON()
	if err != nil {
		log.Error().
			Err(err).
			Int32("ledger_id", ledgerID).
			Str("event_type", event.Type).
			Msg("Failed to serialize event")
		return
	}

	h.mu.RLock()
	watchers := h.watchers[ledgerID]
	snapshot := make([]Watcher, 0, len(watchers))
	for _, w := range watchers {
		snapshot = append(snapshot, w)
	}
	h.mu.RUnlock()

	for _, w := range snapshot {
		go func(w Watcher) {
			if err := w.Send(data); err != nil {
				log.Warn().
					Err(err).
					Int32("ledger_id", ledgerID).
					Str("watcher_id", w.ID()).
					Msg("Failed to send to watcher")
			}
		}(w)
	}
}

// WatcherCount returns the number of live watchers of a ledger
func (h *Hub) WatcherCount(ledgerID int32) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.watchers[ledgerID])
}
