package commands

import (
	"context"
	"log/slog"

	"deliverybroker/internal/core/domain/services"
	"deliverybroker/internal/core/ports"
)

// AcceptDeliveryCommandHandler handles the business logic for a driver
// accepting an available delivery. The delivery moves to InRoute and its
// snapshot is placed in the hot cache.
//
// Two drivers racing for the same delivery are serialized by the optimistic
// version check on update: the loser's write fails with a version conflict
// and no double assignment occurs.
//
// Example:
//
//	handler := NewAcceptDeliveryCommandHandler(uowFactory, cache, notifier)
//	cmd, _ := NewAcceptDeliveryCommand(deliveryID, driverID)
//
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrVersionConflict) {
//	    log.Println("Another driver was faster")
//	}
type AcceptDeliveryCommandHandler struct {
	uowFactory UoWFactory
	cache      ports.InRouteCache
	notifier   ports.Notifier
	log        *slog.Logger
}

// NewAcceptDeliveryCommandHandler creates a handler for delivery acceptance.
func NewAcceptDeliveryCommandHandler(
	uowFactory UoWFactory,
	cache ports.InRouteCache,
	notifier ports.Notifier,
) AcceptDeliveryCommandHandler {
	return AcceptDeliveryCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		notifier:   notifier,
		log:        slog.With("component", "acceptDelivery"),
	}
}

// Handle processes the acceptance command.
//
// The driver must be an approved driver and the delivery must still be
// Available. On success the snapshot is cached and listeners are notified
// after commit; cache and notification failures are logged and dropped
// because the rebuild job repairs the cache on its next run.
func (h AcceptDeliveryCommandHandler) Handle(ctx context.Context, command AcceptDeliveryCommand) error {
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

	driver, err := uow.AccountRepository().Get(ctx, command.DriverID())
	if err != nil {
		return err
	}

	if err = services.AuthorizeOperation(driver, services.OpAcceptDelivery); err != nil {
		return err
	}

	deliveryRepo := uow.DeliveryRepository()
	aggregate, err := deliveryRepo.Get(ctx, command.DeliveryID())
	if err != nil {
		return err
	}

	if err = aggregate.Assign(command.DriverID()); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	snapshot := aggregate.Snapshot()
	if err = h.cache.Put(ctx, snapshot); err != nil {
		h.log.Warn("failed to cache in-route delivery",
			"deliveryId", aggregate.ID(), "error", err)
	}
	if err = h.notifier.NotifyDriver(ctx, command.DriverID(), snapshot); err != nil {
		h.log.Warn("failed to notify driver",
			"deliveryId", aggregate.ID(), "error", err)
	}
	if err = h.notifier.NotifyUpdate(ctx, snapshot); err != nil {
		h.log.Warn("failed to broadcast delivery update",
			"deliveryId", aggregate.ID(), "error", err)
	}

	return nil
}
