package commands

import (
	"errors"

	"deliverybroker/internal/pkg/guard"
)

var ErrDispatchOutboxCommandIsNotConstructed = errors.New(
	"DispatchOutboxCommand must be created via NewDispatchOutboxCommand constructor",
)

// DispatchOutboxCommand triggers one publishing pass over the pending
// outbox messages. Issued periodically by the dispatch job.
//
// Example:
//
//	cmd := NewDispatchOutboxCommand()
//	handler := NewDispatchOutboxCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Dispatch pass failed: %v", err)
//	}
type DispatchOutboxCommand struct {
	guard guard.ConstructorGuard
}

// NewDispatchOutboxCommand creates a new command to trigger outbox dispatch.
// This is a parameterless command.
func NewDispatchOutboxCommand() DispatchOutboxCommand {
	return DispatchOutboxCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrDispatchOutboxCommandIsNotConstructed if validation fails.
func (c *DispatchOutboxCommand) Validate() error {
	return c.guard.Validate(
		ErrDispatchOutboxCommandIsNotConstructed,
	)
}
