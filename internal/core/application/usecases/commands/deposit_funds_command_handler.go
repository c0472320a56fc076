package commands

import (
	"context"
	"time"

	"deliverybroker/internal/core/domain/events"
	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/core/domain/model/outbox"
	"deliverybroker/internal/core/domain/services"
)

// DepositFundsCommandHandler handles the business logic for client deposits.
// Credits the client balance and records a financial transaction event in
// the same database transaction.
//
// Example:
//
//	handler := NewDepositFundsCommandHandler(uowFactory)
//	cmd, _ := NewDepositFundsCommand(clientID, decimal.NewFromInt(500))
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("deposit failed: %w", err)
//	}
type DepositFundsCommandHandler struct {
	uowFactory AccountUoWFactory
}

// NewDepositFundsCommandHandler creates a handler for deposit operations.
func NewDepositFundsCommandHandler(uowFactory AccountUoWFactory) DepositFundsCommandHandler {
	return DepositFundsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the deposit command. The actor must be an approved
// client; the amount lands on the client balance.
func (h DepositFundsCommandHandler) Handle(ctx context.Context, command DepositFundsCommand) error {
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

	if err = services.AuthorizeOperation(client, services.OpDepositFunds); err != nil {
		return err
	}

	if err = client.Credit(command.Amount()); err != nil {
		return err
	}

	if err = accountRepo.Update(ctx, client); err != nil {
		return err
	}

	transaction := events.FinancialTransaction{
		TransactionID: kernel.NewUUID().String(),
		Type:          events.TransactionClientDeposit,
		ToUserID:      client.ID().String(),
		Amount:        command.Amount(),
		Description:   "client deposit",
		OccurredAt:    time.Now().UTC(),
	}
	message, err := outbox.NewMessage(events.TopicFinancialTransaction, transaction.TransactionID, transaction)
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, message); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
