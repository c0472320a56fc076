package commands

import (
	"context"
	"log/slog"
	"time"

	"deliverybroker/internal/core/domain/events"
	"deliverybroker/internal/core/domain/model/delivery"
	"deliverybroker/internal/core/domain/model/outbox"
	"deliverybroker/internal/core/domain/services"
	"deliverybroker/internal/core/ports"
	"deliverybroker/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// CoverageFactor is the multiple of the offered price a client's balance
// must cover before posting a delivery. The extra headroom absorbs a later
// in-route cancellation penalty without overdrawing.
var CoverageFactor = decimal.NewFromInt(2)

// CreateDeliveryCommandHandler handles the business logic for posting a new
// delivery. Authorizes the client, checks the coverage requirement, persists
// the delivery in Available status, and enqueues the requested event, all in
// one transaction. No money moves at this point.
//
// Example:
//
//	handler := NewCreateDeliveryCommandHandler(uowFactory, notifier)
//	cmd, _ := NewCreateDeliveryCommand(deliveryID, clientID,
//	    "12 Baker St", "221b Baker St", "documents",
//	    decimal.NewFromFloat(1.5), decimal.NewFromInt(100))
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("posting failed: %w", err)
//	}
type CreateDeliveryCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	log        *slog.Logger
}

// NewCreateDeliveryCommandHandler creates a handler for delivery posting.
// Requires a UoWFactory for transactional persistence and a Notifier to
// announce the new delivery to drivers.
func NewCreateDeliveryCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		log:        slog.With("component", "createDelivery"),
	}
}

// Handle processes the delivery posting command.
//
// The client must be approved and its balance must cover CoverageFactor
// times the offered price; otherwise the command fails with an insufficient
// funds error and nothing is written. On success the delivery is Available
// and drivers are notified after the transaction commits. Notification
// failures are logged and dropped.
func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, command CreateDeliveryCommand) error {
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

	client, err := uow.AccountRepository().Get(ctx, command.ClientID())
	if err != nil {
		return err
	}

	if err = services.AuthorizeOperation(client, services.OpCreateDelivery); err != nil {
		return err
	}

	required := command.OfferedPrice().Mul(CoverageFactor)
	covered, err := client.CanCover(required)
	if err != nil {
		return err
	}
	if !covered {
		balance, _ := client.Balance()
		return errs.NewInsufficientFundsError(balance, required)
	}

	aggregate, err := delivery.NewDelivery(
		command.DeliveryID(),
		command.ClientID(),
		command.PickupAddress(),
		command.DeliveryAddress(),
		command.Description(),
		command.WeightKg(),
		command.OfferedPrice(),
	)
	if err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	event := events.DeliveryRequested{
		DeliveryID:    aggregate.ID().String(),
		ClientID:      aggregate.ClientID().String(),
		PickupAddress: aggregate.PickupAddress(),
		OfferedPrice:  aggregate.OfferedPrice(),
		RequestedAt:   time.Now().UTC(),
	}
	message, err := outbox.NewMessage(events.TopicDeliveryRequested, event.DeliveryID, event)
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, message); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.notifier.NotifyAvailable(ctx, aggregate.Snapshot()); err != nil {
		h.log.Warn("failed to notify drivers about new delivery",
			"deliveryId", aggregate.ID(), "error", err)
	}

	return nil
}
