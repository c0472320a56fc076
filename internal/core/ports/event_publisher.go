package ports

import (
	"context"
)

// EventPublisher sends integration events to the message broker. The outbox
// dispatch job is the only producer-side caller, so publish failures are
// retried on the next dispatch tick.
type EventPublisher interface {
	// Publish sends one event to the given topic. Key selects the partition;
	// events with the same key keep their relative order.
	Publish(ctx context.Context, topic string, key string, payload []byte) error
}
