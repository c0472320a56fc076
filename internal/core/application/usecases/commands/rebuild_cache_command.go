package commands

import (
	"errors"

	"deliverybroker/internal/pkg/guard"
)

var ErrRebuildCacheCommandIsNotConstructed = errors.New(
	"RebuildCacheCommand must be created via NewRebuildCacheCommand constructor",
)

// RebuildCacheCommand triggers a full reload of the in-route cache from the
// database. Issued periodically by the rebuild job so entries missed by a
// failed eviction or put self-heal.
//
// Example:
//
//	cmd := NewRebuildCacheCommand()
//	handler := NewRebuildCacheCommandHandler(uowFactory, cache)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Cache rebuild failed: %v", err)
//	}
type RebuildCacheCommand struct {
	guard guard.ConstructorGuard
}

// NewRebuildCacheCommand creates a new command to trigger a cache rebuild.
// This is a parameterless command.
func NewRebuildCacheCommand() RebuildCacheCommand {
	return RebuildCacheCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrRebuildCacheCommandIsNotConstructed if validation fails.
func (c *RebuildCacheCommand) Validate() error {
	return c.guard.Validate(
		ErrRebuildCacheCommandIsNotConstructed,
	)
}
