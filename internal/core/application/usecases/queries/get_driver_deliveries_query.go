package queries

import (
	"errors"

	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/pkg/guard"
)

var ErrGetDriverDeliveriesQueryIsNotConstructed = errors.New(
	"GetDriverDeliveriesQuery must be created via NewGetDriverDeliveriesQuery constructor",
)

// GetDriverDeliveriesQuery retrieves all deliveries assigned to one driver.
//
// Example:
//
//	query, err := NewGetDriverDeliveriesQuery(driverID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetDriverDeliveriesQueryHandler(db)
//	deliveries, err := handler.Handle(ctx, query)
type GetDriverDeliveriesQuery struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDriverDeliveriesQuery creates a query for one driver's deliveries.
// Validates the driver identifier.
func NewGetDriverDeliveriesQuery(driverID kernel.UUID) (GetDriverDeliveriesQuery, error) {
	query := GetDriverDeliveriesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setDriverID(driverID); err != nil {
		return GetDriverDeliveriesQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDriverDeliveriesQueryIsNotConstructed if validation fails.
func (q GetDriverDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverDeliveriesQueryIsNotConstructed)
}

// DriverID returns the driver whose deliveries are requested.
func (q GetDriverDeliveriesQuery) DriverID() kernel.UUID {
	return q.driverID
}

func (q *GetDriverDeliveriesQuery) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	q.driverID = driverID
	return nil
}
