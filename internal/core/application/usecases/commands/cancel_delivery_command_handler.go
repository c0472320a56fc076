package commands

import (
	"context"
	"log/slog"
	"time"

	"deliverybroker/internal/core/domain/events"
	"deliverybroker/internal/core/domain/model/delivery"
	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/core/domain/model/outbox"
	"deliverybroker/internal/core/domain/services"
	"deliverybroker/internal/core/ports"
	"deliverybroker/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// CancelDeliveryCommandHandler handles the business logic for a client
// canceling a delivery.
//
// Canceling an Available delivery moves no money. Canceling an InRoute
// delivery charges the client a penalty of 30% of the offered price and
// credits it to the assigned driver as compensation for the wasted trip;
// the penalty transfer and the status change commit atomically.
//
// Example:
//
//	handler := NewCancelDeliveryCommandHandler(uowFactory, cache, notifier)
//	cmd, _ := NewCancelDeliveryCommand(deliveryID, clientID, "recipient moved")
//
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInsufficientFunds) {
//	    log.Println("Client cannot cover the cancellation penalty")
//	}
type CancelDeliveryCommandHandler struct {
	uowFactory UoWFactory
	cache      ports.InRouteCache
	notifier   ports.Notifier
	log        *slog.Logger
}

// NewCancelDeliveryCommandHandler creates a handler for delivery
// cancellation.
func NewCancelDeliveryCommandHandler(
	uowFactory UoWFactory,
	cache ports.InRouteCache,
	notifier ports.Notifier,
) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		notifier:   notifier,
		log:        slog.With("component", "cancelDelivery"),
	}
}

// Handle processes the cancellation command.
//
// The actor must be the approved client who posted the delivery; canceling
// someone else's delivery is a business rule violation. Terminal deliveries
// cannot be canceled. An in-route cancellation also evicts the delivery
// from the hot cache after commit.
func (h CancelDeliveryCommandHandler) Handle(ctx context.Context, command CancelDeliveryCommand) error {
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
	client, err := accountRepo.Get(ctx, command.ClientID())
	if err != nil {
		return err
	}

	if err = services.AuthorizeOperation(client, services.OpCancelDelivery); err != nil {
		return err
	}

	deliveryRepo := uow.DeliveryRepository()
	aggregate, err := deliveryRepo.Get(ctx, command.DeliveryID())
	if err != nil {
		return err
	}

	if !aggregate.IsOwnedBy(command.ClientID()) {
		return errs.NewBusinessRuleError("delivery does not belong to this client")
	}

	wasInRoute := aggregate.Status() == delivery.InRoute
	assignedDriver := aggregate.Driver()

	reason := command.Reason()
	if wasInRoute {
		reason += " (30% penalty applied)"
	}

	if err = aggregate.Cancel(reason); err != nil {
		return err
	}

	penalty := decimal.Zero
	if wasInRoute {
		penalty = aggregate.PenaltyAmount()

		driver, derr := accountRepo.Get(ctx, *assignedDriver)
		if derr != nil {
			return derr
		}

		if err = client.Debit(penalty); err != nil {
			return err
		}
		if err = driver.Credit(penalty); err != nil {
			return err
		}

		if err = accountRepo.Update(ctx, client); err != nil {
			return err
		}
		if err = accountRepo.Update(ctx, driver); err != nil {
			return err
		}
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = h.enqueueEvents(ctx, uow, aggregate, penalty, wasInRoute); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	snapshot := aggregate.Snapshot()
	if wasInRoute {
		if err = h.cache.Remove(ctx, aggregate.ID()); err != nil {
			h.log.Warn("failed to evict canceled delivery from cache",
				"deliveryId", aggregate.ID(), "error", err)
		}
		if err = h.notifier.NotifyDriver(ctx, *assignedDriver, snapshot); err != nil {
			h.log.Warn("failed to notify driver",
				"deliveryId", aggregate.ID(), "error", err)
		}
	}
	if err = h.notifier.NotifyUpdate(ctx, snapshot); err != nil {
		h.log.Warn("failed to broadcast delivery update",
			"deliveryId", aggregate.ID(), "error", err)
	}

	return nil
}

func (h CancelDeliveryCommandHandler) enqueueEvents(
	ctx context.Context,
	uow UoW,
	aggregate *delivery.Delivery,
	penalty decimal.Decimal,
	wasInRoute bool,
) error {
	now := time.Now().UTC()

	var driverID *string
	if d := aggregate.Driver(); d != nil {
		s := d.String()
		driverID = &s
	}

	canceled := events.DeliveryCanceled{
		DeliveryID: aggregate.ID().String(),
		ClientID:   aggregate.ClientID().String(),
		DriverID:   driverID,
		Reason:     aggregate.CancellationReason(),
		Penalty:    penalty,
		CanceledAt: now,
	}
	canceledMsg, err := outbox.NewMessage(events.TopicDeliveryCanceled, canceled.DeliveryID, canceled)
	if err != nil {
		return err
	}

	outboxRepo := uow.OutboxRepository()
	if err = outboxRepo.Add(ctx, canceledMsg); err != nil {
		return err
	}

	if !wasInRoute {
		return nil
	}

	deliveryID := aggregate.ID().String()
	clientID := aggregate.ClientID().String()
	transaction := events.FinancialTransaction{
		TransactionID: kernel.NewUUID().String(),
		Type:          events.TransactionCancellationPenalty,
		FromUserID:    &clientID,
		ToUserID:      *driverID,
		DeliveryID:    &deliveryID,
		Amount:        penalty,
		Description:   "cancellation penalty",
		OccurredAt:    now,
	}
	transactionMsg, err := outbox.NewMessage(events.TopicFinancialTransaction, transaction.TransactionID, transaction)
	if err != nil {
		return err
	}

	return outboxRepo.Add(ctx, transactionMsg)
}
