package commands

import (
	"errors"

	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrDepositFundsCommandIsNotConstructed = errors.New(
		"DepositFundsCommand must be created via NewDepositFundsCommand constructor",
	)
	ErrAmountIsInvalid = errors.New("amount must be greater than 0")
)

// DepositFundsCommand represents a client adding money to their balance.
//
// Example:
//
//	cmd, err := NewDepositFundsCommand(clientID, decimal.NewFromInt(500))
//	if err != nil {
//	    return fmt.Errorf("invalid deposit: %w", err)
//	}
//
//	handler := NewDepositFundsCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("deposit failed: %w", err)
//	}
type DepositFundsCommand struct { //nolint:recvcheck //using for validation
	clientID kernel.UUID
	amount   decimal.Decimal

	guard guard.ConstructorGuard
}

// NewDepositFundsCommand creates a command to add funds to a client balance.
// Validates the identifier and that the amount is positive.
func NewDepositFundsCommand(clientID kernel.UUID, amount decimal.Decimal) (DepositFundsCommand, error) {
	command := DepositFundsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setClientID(clientID),
		command.setAmount(amount),
	); err != nil {
		return DepositFundsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDepositFundsCommandIsNotConstructed if validation fails.
func (c DepositFundsCommand) Validate() error {
	return c.guard.Validate(ErrDepositFundsCommandIsNotConstructed)
}

// ClientID returns the depositing client's identifier.
func (c DepositFundsCommand) ClientID() kernel.UUID {
	return c.clientID
}

// Amount returns the amount being deposited.
func (c DepositFundsCommand) Amount() decimal.Decimal {
	return c.amount
}

func (c *DepositFundsCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}

	c.clientID = clientID
	return nil
}

func (c *DepositFundsCommand) setAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountIsInvalid
	}

	c.amount = amount
	return nil
}
