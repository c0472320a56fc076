package commands

import (
	"context"

	"deliverybroker/internal/core/domain/services"
)

// ReviewAccountCommandHandler handles the business logic for admin account
// reviews. Moves a pending account to Approved or Rejected.
//
// Example:
//
//	handler := NewReviewAccountCommandHandler(uowFactory)
//	cmd, _ := NewReviewAccountCommand(adminID, accountID, true)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("review failed: %w", err)
//	}
type ReviewAccountCommandHandler struct {
	uowFactory AccountUoWFactory
}

// NewReviewAccountCommandHandler creates a handler for account review
// operations.
func NewReviewAccountCommandHandler(uowFactory AccountUoWFactory) ReviewAccountCommandHandler {
	return ReviewAccountCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the review command. The actor must be an approved admin
// and the target account must still be pending; reviewing a decided account
// is a business rule violation.
func (h ReviewAccountCommandHandler) Handle(ctx context.Context, command ReviewAccountCommand) error {
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
	admin, err := accountRepo.Get(ctx, command.AdminID())
	if err != nil {
		return err
	}

	if err = services.AuthorizeOperation(admin, services.OpReviewAccount); err != nil {
		return err
	}

	target, err := accountRepo.Get(ctx, command.AccountID())
	if err != nil {
		return err
	}

	if command.Approve() {
		err = target.Approve()
	} else {
		err = target.Reject()
	}
	if err != nil {
		return err
	}

	if err = accountRepo.Update(ctx, target); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
