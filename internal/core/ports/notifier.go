package ports

import (
	"context"

	"deliverybroker/internal/core/domain/model/delivery"
	"deliverybroker/internal/core/domain/model/kernel"
)

// Notifier pushes realtime delivery updates to connected listeners. Unlike
// broker events, notifications are fire-and-forget: a failed push is logged
// and dropped, never retried, and never fails the command that produced it.
type Notifier interface {
	// NotifyAvailable announces a newly posted delivery to all drivers.
	NotifyAvailable(ctx context.Context, snapshot delivery.Snapshot) error

	// NotifyDriver pushes an update about one of the driver's deliveries.
	NotifyDriver(ctx context.Context, driverID kernel.UUID, snapshot delivery.Snapshot) error

	// NotifyUpdate broadcasts a lifecycle change to general listeners.
	NotifyUpdate(ctx context.Context, snapshot delivery.Snapshot) error
}
