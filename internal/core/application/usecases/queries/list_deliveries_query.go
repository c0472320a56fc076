package queries

import (
	"errors"

	"deliverybroker/internal/core/domain/model/delivery"
	"deliverybroker/internal/pkg/guard"
)

var ErrListDeliveriesQueryIsNotConstructed = errors.New(
	"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
)

// ListDeliveriesQuery retrieves deliveries across all clients, optionally
// filtered by status. Admin listing.
//
// Example:
//
//	query := NewListDeliveriesQuery()
//	handler := NewListDeliveriesQueryHandler(db)
//
//	deliveries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list deliveries: %w", err)
//	}
type ListDeliveriesQuery struct {
	status *delivery.Status

	guard guard.ConstructorGuard
}

// NewListDeliveriesQuery creates a query for all deliveries regardless of
// status.
func NewListDeliveriesQuery() ListDeliveriesQuery {
	return ListDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// NewListDeliveriesQueryWithStatus creates a query filtered to one status.
func NewListDeliveriesQueryWithStatus(status delivery.Status) (ListDeliveriesQuery, error) {
	if err := status.Validate(); err != nil {
		return ListDeliveriesQuery{}, err
	}

	return ListDeliveriesQuery{
		status: &status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
// Returns ErrListDeliveriesQueryIsNotConstructed if validation fails.
func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}

// Status returns the status filter, or nil for no filter.
func (q ListDeliveriesQuery) Status() *delivery.Status {
	return q.status
}
