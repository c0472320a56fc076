package commands

import (
	"errors"

	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/pkg/guard"
)

var ErrAcceptDeliveryCommandIsNotConstructed = errors.New(
	"AcceptDeliveryCommand must be created via NewAcceptDeliveryCommand constructor",
)

// AcceptDeliveryCommand represents a driver's request to take an available
// delivery.
//
// Example:
//
//	cmd, err := NewAcceptDeliveryCommand(deliveryID, driverID)
//	if err != nil {
//	    return fmt.Errorf("invalid acceptance: %w", err)
//	}
//
//	handler := NewAcceptDeliveryCommandHandler(uowFactory, cache, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("acceptance failed: %w", err)
//	}
type AcceptDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	driverID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptDeliveryCommand creates a command for a driver to accept a
// delivery. Validates both identifiers.
func NewAcceptDeliveryCommand(deliveryID, driverID kernel.UUID) (AcceptDeliveryCommand, error) {
	command := AcceptDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setDriverID(driverID),
	); err != nil {
		return AcceptDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAcceptDeliveryCommandIsNotConstructed if validation fails.
func (c AcceptDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAcceptDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery being accepted.
func (c AcceptDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// DriverID returns the accepting driver's identifier.
func (c AcceptDeliveryCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *AcceptDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *AcceptDeliveryCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}
