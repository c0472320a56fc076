package queries

import (
	"context"

	"deliverybroker/internal/core/domain/model/delivery"
	"deliverybroker/internal/core/ports"
)

// GetInRouteDeliveriesQueryHandler serves in-route listings from the hot
// cache. The cache is rebuilt periodically from the database, so results
// may trail the database by at most one rebuild interval.
//
// Example:
//
//	handler := NewGetInRouteDeliveriesQueryHandler(cache)
//	query, _ := NewGetInRouteDeliveriesQueryForDriver(driverID)
//
//	carrying, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list in-route deliveries: %v", err)
//	}
type GetInRouteDeliveriesQueryHandler struct {
	cache ports.InRouteCache
}

// NewGetInRouteDeliveriesQueryHandler creates a handler for in-route
// listings backed by the cache.
func NewGetInRouteDeliveriesQueryHandler(cache ports.InRouteCache) GetInRouteDeliveriesQueryHandler {
	return GetInRouteDeliveriesQueryHandler{cache: cache}
}

// Handle executes the query against the cache. With a driver filter only
// that driver's snapshots are returned.
func (h GetInRouteDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetInRouteDeliveriesQuery,
) ([]delivery.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if driverID := query.DriverID(); driverID != nil {
		return h.cache.ByDriver(ctx, *driverID)
	}

	return h.cache.All(ctx)
}
