package messaging

import "context"

// Broker is the contract between the outbox processor (publisher side) and
// the notification worker (consumer side).
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Event is the payload shape published for every domain event.
type Event struct {
	Type        string      `json:"type"`
	AggregateID string      `json:"aggregate_id"`
	Payload     interface{} `json:"payload"`
	OccurredAt  string      `json:"occurred_at"`
}
