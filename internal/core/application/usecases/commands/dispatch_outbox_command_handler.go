package commands

import (
	"context"
	"log/slog"

	"deliverybroker/internal/core/ports"
)

// DispatchBatchSize caps how many pending messages one dispatch pass
// publishes.
const DispatchBatchSize = 100

// DispatchOutboxCommandHandler publishes pending outbox messages to the
// broker and marks them published in one transaction per pass.
//
// Delivery is at-least-once: if the process dies after publishing but
// before the marks commit, the next pass re-publishes the same messages.
// Consumers deduplicate by message ID.
//
// Example:
//
//	handler := NewDispatchOutboxCommandHandler(uowFactory, publisher)
//	cmd := NewDispatchOutboxCommand()
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Dispatch pass failed: %v", err)
//	}
type DispatchOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	log        *slog.Logger
}

// NewDispatchOutboxCommandHandler creates a handler for outbox dispatching.
func NewDispatchOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
) DispatchOutboxCommandHandler {
	return DispatchOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		log:        slog.With("component", "dispatchOutbox"),
	}
}

// Handle processes one dispatch pass. Pending messages are published oldest
// first. A publish failure aborts the pass: the marks accumulated so far are
// rolled back and the whole batch is retried on the next tick.
func (h DispatchOutboxCommandHandler) Handle(ctx context.Context, command DispatchOutboxCommand) error {
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

	outboxRepo := uow.OutboxRepository()
	messages, err := outboxRepo.GetUnpublished(ctx, DispatchBatchSize)
	if err != nil {
		return err
	}

	for _, message := range messages {
		if err = h.publisher.Publish(ctx, message.Topic(), message.Key(), message.Payload()); err != nil {
			h.log.Warn("failed to publish outbox message, will retry",
				"messageId", message.ID(), "topic", message.Topic(), "error", err)
			return err
		}

		if err = message.MarkPublished(); err != nil {
			return err
		}
		if err = outboxRepo.MarkPublished(ctx, message); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
