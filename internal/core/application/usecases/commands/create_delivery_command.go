package commands

import (
	"errors"

	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateDeliveryCommandIsNotConstructed = errors.New(
		"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
	)
	ErrPickupAddressIsRequired   = errors.New("pickup address is required")
	ErrDeliveryAddressIsRequired = errors.New("delivery address is required")
	ErrDescriptionIsRequired     = errors.New("description is required")
	ErrWeightIsInvalid           = errors.New("weight must be greater than 0")
	ErrPriceIsInvalid            = errors.New("offered price must be greater than 0")
)

// CreateDeliveryCommand represents a client's request to post a new delivery.
// Encapsulates the pickup and dropoff addresses, the package details, and
// the price the client offers.
//
// Example:
//
//	deliveryID := kernel.NewUUID()
//	cmd, err := NewCreateDeliveryCommand(
//	    deliveryID, clientID,
//	    "12 Baker St", "221b Baker St", "documents",
//	    decimal.NewFromFloat(1.5), decimal.NewFromInt(100),
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid delivery data: %w", err)
//	}
//
//	handler := NewCreateDeliveryCommandHandler(uowFactory, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to post delivery: %w", err)
//	}
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID      kernel.UUID
	clientID        kernel.UUID
	pickupAddress   string
	deliveryAddress string
	description     string
	weightKg        decimal.Decimal
	offeredPrice    decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to post a new delivery.
// Validates identifiers, addresses, description, and that weight and price
// are positive. Returns an error if any validation fails.
func NewCreateDeliveryCommand(
	deliveryID kernel.UUID,
	clientID kernel.UUID,
	pickupAddress string,
	deliveryAddress string,
	description string,
	weightKg decimal.Decimal,
	offeredPrice decimal.Decimal,
) (CreateDeliveryCommand, error) {
	command := CreateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setClientID(clientID),
		command.setPickupAddress(pickupAddress),
		command.setDeliveryAddress(deliveryAddress),
		command.setDescription(description),
		command.setWeightKg(weightKg),
		command.setOfferedPrice(offeredPrice),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateDeliveryCommandIsNotConstructed if validation fails.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier for the new delivery.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// ClientID returns the posting client's identifier.
func (c CreateDeliveryCommand) ClientID() kernel.UUID {
	return c.clientID
}

// PickupAddress returns where the package is collected.
func (c CreateDeliveryCommand) PickupAddress() string {
	return c.pickupAddress
}

// DeliveryAddress returns where the package is dropped off.
func (c CreateDeliveryCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// Description returns the package content description.
func (c CreateDeliveryCommand) Description() string {
	return c.description
}

// WeightKg returns the package weight in kilograms.
func (c CreateDeliveryCommand) WeightKg() decimal.Decimal {
	return c.weightKg
}

// OfferedPrice returns the price the client offers for the delivery.
func (c CreateDeliveryCommand) OfferedPrice() decimal.Decimal {
	return c.offeredPrice
}

func (c *CreateDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *CreateDeliveryCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}

	c.clientID = clientID
	return nil
}

func (c *CreateDeliveryCommand) setPickupAddress(pickupAddress string) error {
	if pickupAddress == "" {
		return ErrPickupAddressIsRequired
	}

	c.pickupAddress = pickupAddress
	return nil
}

func (c *CreateDeliveryCommand) setDeliveryAddress(deliveryAddress string) error {
	if deliveryAddress == "" {
		return ErrDeliveryAddressIsRequired
	}

	c.deliveryAddress = deliveryAddress
	return nil
}

func (c *CreateDeliveryCommand) setDescription(description string) error {
	if description == "" {
		return ErrDescriptionIsRequired
	}

	c.description = description
	return nil
}

func (c *CreateDeliveryCommand) setWeightKg(weightKg decimal.Decimal) error {
	if !weightKg.IsPositive() {
		return ErrWeightIsInvalid
	}

	c.weightKg = weightKg
	return nil
}

func (c *CreateDeliveryCommand) setOfferedPrice(offeredPrice decimal.Decimal) error {
	if !offeredPrice.IsPositive() {
		return ErrPriceIsInvalid
	}

	c.offeredPrice = offeredPrice
	return nil
}
