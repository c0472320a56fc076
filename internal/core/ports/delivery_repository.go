// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, the in-route cache, the
// event publisher, and the realtime notifier. Adapters implement these
// interfaces, enabling dependency inversion and testability.
package ports

import (
	"context"

	"deliverybroker/internal/core/domain/model/delivery"
	"deliverybroker/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery
// aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	// The delivery must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate. The stored
	// row's version must match the version the aggregate was loaded with;
	// a mismatch fails with a version conflict error and writes nothing.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByClient retrieves all deliveries posted by the given client,
	// newest first.
	GetByClient(ctx context.Context, clientID kernel.UUID) ([]*delivery.Delivery, error)

	// GetByDriver retrieves all deliveries assigned to the given driver,
	// newest first.
	GetByDriver(ctx context.Context, driverID kernel.UUID) ([]*delivery.Delivery, error)

	// GetByStatus retrieves all deliveries in the given status, newest first.
	// Used by the available-deliveries listing and the cache rebuild job.
	GetByStatus(ctx context.Context, status delivery.Status) ([]*delivery.Delivery, error)

	// GetAll retrieves every delivery, newest first. Admin listing only.
	GetAll(ctx context.Context) ([]*delivery.Delivery, error)
}
