package ports

import (
	"context"
	"errors"

	"deliverybroker/internal/core/domain/model/delivery"
	"deliverybroker/internal/core/domain/model/kernel"
)

// ErrCacheMiss is returned by InRouteCache.Get when the delivery is not in
// the cache. Callers fall back to the database.
var ErrCacheMiss = errors.New("delivery not found in cache")

// InRouteCache is the hot lookup for deliveries currently being carried.
// Snapshots are put on acceptance, removed on completion or cancellation,
// and periodically rebuilt from the database, so a stale entry self-heals.
type InRouteCache interface {
	// Put stores the snapshot and indexes it under its driver.
	Put(ctx context.Context, snapshot delivery.Snapshot) error

	// Get retrieves a cached snapshot by delivery ID.
	// Returns ErrCacheMiss when absent.
	Get(ctx context.Context, id kernel.UUID) (delivery.Snapshot, error)

	// ByDriver retrieves all cached snapshots for the given driver.
	ByDriver(ctx context.Context, driverID kernel.UUID) ([]delivery.Snapshot, error)

	// All retrieves every cached in-route snapshot.
	All(ctx context.Context) ([]delivery.Snapshot, error)

	// Remove drops the cached snapshot and its driver index entry. The
	// owning driver is resolved from the cached entry, not from the caller.
	// Removing an absent entry is not an error.
	Remove(ctx context.Context, id kernel.UUID) error

	// Clear drops the whole cache. Used by the rebuild job before reloading.
	Clear(ctx context.Context) error
}
