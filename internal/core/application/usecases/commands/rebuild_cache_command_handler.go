package commands

import (
	"context"
	"log/slog"

	"deliverybroker/internal/core/domain/model/delivery"
	"deliverybroker/internal/core/ports"
)

// RebuildCacheCommandHandler reloads the in-route cache from the database:
// it queries all InRoute deliveries, clears the cache, and puts their
// snapshots back. The database is the source of truth; the cache is only an
// acceleration, so a brief window of emptiness during the rebuild is
// acceptable.
//
// Example:
//
//	handler := NewRebuildCacheCommandHandler(uowFactory, cache)
//	cmd := NewRebuildCacheCommand()
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Cache rebuild failed: %v", err)
//	}
type RebuildCacheCommandHandler struct {
	uowFactory DeliveryUoWFactory
	cache      ports.InRouteCache
	log        *slog.Logger
}

// NewRebuildCacheCommandHandler creates a handler for cache rebuilds.
func NewRebuildCacheCommandHandler(
	uowFactory DeliveryUoWFactory,
	cache ports.InRouteCache,
) RebuildCacheCommandHandler {
	return RebuildCacheCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		log:        slog.With("component", "rebuildCache"),
	}
}

// Handle processes the rebuild command. The read runs in its own
// transaction; cache writes happen after it ends. A failed put is logged
// and skipped so one bad entry does not block the rest.
func (h RebuildCacheCommandHandler) Handle(ctx context.Context, command RebuildCacheCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveries, err := uow.DeliveryRepository().GetByStatus(ctx, delivery.InRoute)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.cache.Clear(ctx); err != nil {
		return err
	}

	for _, aggregate := range deliveries {
		if err = h.cache.Put(ctx, aggregate.Snapshot()); err != nil {
			h.log.Warn("failed to cache in-route delivery during rebuild",
				"deliveryId", aggregate.ID(), "error", err)
		}
	}

	h.log.Info("in-route cache rebuilt", "count", len(deliveries))
	return nil
}
