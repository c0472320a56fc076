package commands

import (
	"errors"

	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/pkg/guard"
)

var ErrReviewAccountCommandIsNotConstructed = errors.New(
	"ReviewAccountCommand must be created via NewReviewAccountCommand constructor",
)

// ReviewAccountCommand represents an admin's decision on a pending account.
//
// Example:
//
//	cmd, err := NewReviewAccountCommand(adminID, accountID, true)
//	if err != nil {
//	    return fmt.Errorf("invalid review: %w", err)
//	}
//
//	handler := NewReviewAccountCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("review failed: %w", err)
//	}
type ReviewAccountCommand struct { //nolint:recvcheck //using for validation
	adminID   kernel.UUID
	accountID kernel.UUID
	approve   bool

	guard guard.ConstructorGuard
}

// NewReviewAccountCommand creates a command for an admin to approve or
// reject a pending account. Validates both identifiers.
func NewReviewAccountCommand(adminID, accountID kernel.UUID, approve bool) (ReviewAccountCommand, error) {
	command := ReviewAccountCommand{
		approve: approve,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAdminID(adminID),
		command.setAccountID(accountID),
	); err != nil {
		return ReviewAccountCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReviewAccountCommandIsNotConstructed if validation fails.
func (c ReviewAccountCommand) Validate() error {
	return c.guard.Validate(ErrReviewAccountCommandIsNotConstructed)
}

// AdminID returns the reviewing admin's identifier.
func (c ReviewAccountCommand) AdminID() kernel.UUID {
	return c.adminID
}

// AccountID returns the account under review.
func (c ReviewAccountCommand) AccountID() kernel.UUID {
	return c.accountID
}

// Approve reports whether the admin approved (true) or rejected (false).
func (c ReviewAccountCommand) Approve() bool {
	return c.approve
}

func (c *ReviewAccountCommand) setAdminID(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return err
	}

	c.adminID = adminID
	return nil
}

func (c *ReviewAccountCommand) setAccountID(accountID kernel.UUID) error {
	if err := accountID.Validate(); err != nil {
		return err
	}

	c.accountID = accountID
	return nil
}
