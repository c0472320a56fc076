package queries

import (
	"errors"

	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/pkg/guard"
)

var ErrGetInRouteDeliveriesQueryIsNotConstructed = errors.New(
	"GetInRouteDeliveriesQuery must be created via NewGetInRouteDeliveriesQuery constructor",
)

// GetInRouteDeliveriesQuery retrieves deliveries currently being carried,
// served from the hot cache instead of the database. Optionally scoped to
// one driver.
//
// Example:
//
//	query := NewGetInRouteDeliveriesQuery()
//	handler := NewGetInRouteDeliveriesQueryHandler(cache)
//
//	inRoute, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list in-route deliveries: %w", err)
//	}
type GetInRouteDeliveriesQuery struct {
	driverID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetInRouteDeliveriesQuery creates a query for all in-route deliveries.
func NewGetInRouteDeliveriesQuery() GetInRouteDeliveriesQuery {
	return GetInRouteDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// NewGetInRouteDeliveriesQueryForDriver creates a query scoped to one
// driver's in-route deliveries. Validates the driver identifier.
func NewGetInRouteDeliveriesQueryForDriver(driverID kernel.UUID) (GetInRouteDeliveriesQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetInRouteDeliveriesQuery{}, err
	}

	return GetInRouteDeliveriesQuery{
		driverID: &driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
// Returns ErrGetInRouteDeliveriesQueryIsNotConstructed if validation fails.
func (q GetInRouteDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetInRouteDeliveriesQueryIsNotConstructed)
}

// DriverID returns the driver filter, or nil for all drivers.
func (q GetInRouteDeliveriesQuery) DriverID() *kernel.UUID {
	return q.driverID
}
