package commands

import (
	"errors"

	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/pkg/guard"
)

var (
	ErrCancelDeliveryCommandIsNotConstructed = errors.New(
		"CancelDeliveryCommand must be created via NewCancelDeliveryCommand constructor",
	)
	ErrCancellationReasonIsRequired = errors.New("cancellation reason is required")
)

// CancelDeliveryCommand represents a client's request to cancel one of
// their deliveries.
//
// Example:
//
//	cmd, err := NewCancelDeliveryCommand(deliveryID, clientID, "recipient moved")
//	if err != nil {
//	    return fmt.Errorf("invalid cancellation: %w", err)
//	}
//
//	handler := NewCancelDeliveryCommandHandler(uowFactory, cache, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("cancellation failed: %w", err)
//	}
type CancelDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	clientID   kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

// NewCancelDeliveryCommand creates a command for a client to cancel a
// delivery. Validates both identifiers and that a reason is given.
func NewCancelDeliveryCommand(deliveryID, clientID kernel.UUID, reason string) (CancelDeliveryCommand, error) {
	command := CancelDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setClientID(clientID),
		command.setReason(reason),
	); err != nil {
		return CancelDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelDeliveryCommandIsNotConstructed if validation fails.
func (c CancelDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery being canceled.
func (c CancelDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// ClientID returns the canceling client's identifier.
func (c CancelDeliveryCommand) ClientID() kernel.UUID {
	return c.clientID
}

// Reason returns the client's stated cancellation reason.
func (c CancelDeliveryCommand) Reason() string {
	return c.reason
}

func (c *CancelDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *CancelDeliveryCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}

	c.clientID = clientID
	return nil
}

func (c *CancelDeliveryCommand) setReason(reason string) error {
	if reason == "" {
		return ErrCancellationReasonIsRequired
	}

	c.reason = reason
	return nil
}
