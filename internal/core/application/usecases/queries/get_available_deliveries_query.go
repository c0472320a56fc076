package queries

import (
	"errors"

	"deliverybroker/internal/pkg/guard"
)

var ErrGetAvailableDeliveriesQueryIsNotConstructed = errors.New(
	"GetAvailableDeliveriesQuery must be created via NewGetAvailableDeliveriesQuery constructor",
)

// GetAvailableDeliveriesQuery retrieves the open pool: deliveries waiting
// for a driver to accept them.
//
// Example:
//
//	query := NewGetAvailableDeliveriesQuery()
//	handler := NewGetAvailableDeliveriesQueryHandler(db)
//
//	pool, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list available deliveries: %w", err)
//	}
type GetAvailableDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableDeliveriesQuery creates a query for the open delivery pool.
// This is a parameterless query.
func NewGetAvailableDeliveriesQuery() GetAvailableDeliveriesQuery {
	return GetAvailableDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAvailableDeliveriesQueryIsNotConstructed if validation fails.
func (q GetAvailableDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableDeliveriesQueryIsNotConstructed)
}
