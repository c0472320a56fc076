package ports

import (
	"context"

	"deliverybroker/internal/core/domain/model/outbox"
)

// OutboxRepository defines the persistence contract for outbox messages.
// Messages are added inside the same transaction as the state change they
// describe.
type OutboxRepository interface {
	// Add persists a new outbox message.
	Add(ctx context.Context, message *outbox.Message) error

	// GetUnpublished retrieves pending messages, oldest first, up to limit.
	GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error)

	// MarkPublished records that a message reached the broker.
	MarkPublished(ctx context.Context, message *outbox.Message) error
}
