package commands

import (
	"context"
	"log/slog"
	"time"

	"deliverybroker/internal/core/domain/events"
	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/core/domain/model/outbox"
	"deliverybroker/internal/core/domain/services"
	"deliverybroker/internal/core/ports"
)

// CompleteDeliveryCommandHandler handles the business logic for settling a
// delivered package: the delivery moves to Completed, the client's balance
// is debited the full offered price, and the driver's balance is credited
// the same amount, all atomically. The completed and financial transaction
// events ride the same transaction through the outbox.
//
// Example:
//
//	handler := NewCompleteDeliveryCommandHandler(uowFactory, cache, notifier)
//	cmd, _ := NewCompleteDeliveryCommand(deliveryID, driverID)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("settlement failed: %w", err)
//	}
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
	cache      ports.InRouteCache
	notifier   ports.Notifier
	log        *slog.Logger
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery
// completion and settlement.
func NewCompleteDeliveryCommandHandler(
	uowFactory UoWFactory,
	cache ports.InRouteCache,
	notifier ports.Notifier,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		notifier:   notifier,
		log:        slog.With("component", "completeDelivery"),
	}
}

// Handle processes the completion command.
//
// The actor must be a driver and must be the one assigned to the delivery.
// The approval status is not checked here: the driver already carries the
// package and blocking settlement would strand the client's goods. The
// client pays the full offered price to the driver; if the client's balance
// cannot cover it the whole settlement fails and the delivery stays InRoute.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, command CompleteDeliveryCommand) error {
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

	accountRepo := uow.AccountRepository()
	driver, err := accountRepo.Get(ctx, command.DriverID())
	if err != nil {
		return err
	}

	if err = services.AuthorizeOperation(driver, services.OpCompleteDelivery); err != nil {
		return err
	}

	deliveryRepo := uow.DeliveryRepository()
	aggregate, err := deliveryRepo.Get(ctx, command.DeliveryID())
	if err != nil {
		return err
	}

	if err = aggregate.Complete(command.DriverID()); err != nil {
		return err
	}

	client, err := accountRepo.Get(ctx, aggregate.ClientID())
	if err != nil {
		return err
	}

	price := aggregate.OfferedPrice()
	if err = client.Debit(price); err != nil {
		return err
	}
	if err = driver.Credit(price); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = accountRepo.Update(ctx, client); err != nil {
		return err
	}
	if err = accountRepo.Update(ctx, driver); err != nil {
		return err
	}

	now := time.Now().UTC()
	completed := events.DeliveryCompleted{
		DeliveryID:  aggregate.ID().String(),
		ClientID:    client.ID().String(),
		DriverID:    driver.ID().String(),
		Price:       price,
		CompletedAt: now,
	}
	completedMsg, err := outbox.NewMessage(events.TopicDeliveryCompleted, completed.DeliveryID, completed)
	if err != nil {
		return err
	}

	deliveryID := aggregate.ID().String()
	clientID := client.ID().String()
	payment := events.FinancialTransaction{
		TransactionID: kernel.NewUUID().String(),
		Type:          events.TransactionDeliveryPayment,
		FromUserID:    &clientID,
		ToUserID:      driver.ID().String(),
		DeliveryID:    &deliveryID,
		Amount:        price,
		Description:   "delivery payment",
		OccurredAt:    now,
	}
	paymentMsg, err := outbox.NewMessage(events.TopicFinancialTransaction, payment.TransactionID, payment)
	if err != nil {
		return err
	}

	outboxRepo := uow.OutboxRepository()
	if err = outboxRepo.Add(ctx, completedMsg); err != nil {
		return err
	}
	if err = outboxRepo.Add(ctx, paymentMsg); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	snapshot := aggregate.Snapshot()
	if err = h.cache.Remove(ctx, aggregate.ID()); err != nil {
		h.log.Warn("failed to evict completed delivery from cache",
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
