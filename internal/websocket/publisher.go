package websocket

// EventPublisher is the side of the hub the activity recorder sees:
// fire an event at a ledger's watchers and move on.
type EventPublisher interface {
	Publish(ledgerID int32, event Event)
}

var _ EventPublisher = (*Hub)(nil)

// NoOpPublisher discards events. Used when no live feed is wired up.
type NoOpPublisher struct{}

// Publish does nothing
func (n *NoOpPublisher) Publish(ledgerID int32, event Event) {}
