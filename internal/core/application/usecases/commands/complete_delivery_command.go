package commands

import (
	"errors"

	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand represents a driver's confirmation that the
// package was delivered.
//
// Example:
//
//	cmd, err := NewCompleteDeliveryCommand(deliveryID, driverID)
//	if err != nil {
//	    return fmt.Errorf("invalid completion: %w", err)
//	}
//
//	handler := NewCompleteDeliveryCommandHandler(uowFactory, cache, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("completion failed: %w", err)
//	}
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	driverID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command for a driver to complete a
// delivery. Validates both identifiers.
func NewCompleteDeliveryCommand(deliveryID, driverID kernel.UUID) (CompleteDeliveryCommand, error) {
	command := CompleteDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setDriverID(driverID),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteDeliveryCommandIsNotConstructed if validation fails.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery being completed.
func (c CompleteDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// DriverID returns the completing driver's identifier.
func (c CompleteDeliveryCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *CompleteDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *CompleteDeliveryCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}
