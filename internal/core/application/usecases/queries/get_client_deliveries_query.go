package queries

import (
	"errors"

	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/pkg/guard"
)

var ErrGetClientDeliveriesQueryIsNotConstructed = errors.New(
	"GetClientDeliveriesQuery must be created via NewGetClientDeliveriesQuery constructor",
)

// GetClientDeliveriesQuery retrieves all deliveries posted by one client.
//
// Example:
//
//	query, err := NewGetClientDeliveriesQuery(clientID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetClientDeliveriesQueryHandler(db)
//	deliveries, err := handler.Handle(ctx, query)
type GetClientDeliveriesQuery struct { //nolint:recvcheck //using for validation
	clientID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetClientDeliveriesQuery creates a query for one client's deliveries.
// Validates the client identifier.
func NewGetClientDeliveriesQuery(clientID kernel.UUID) (GetClientDeliveriesQuery, error) {
	query := GetClientDeliveriesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setClientID(clientID); err != nil {
		return GetClientDeliveriesQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetClientDeliveriesQueryIsNotConstructed if validation fails.
func (q GetClientDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetClientDeliveriesQueryIsNotConstructed)
}

// ClientID returns the client whose deliveries are requested.
func (q GetClientDeliveriesQuery) ClientID() kernel.UUID {
	return q.clientID
}

func (q *GetClientDeliveriesQuery) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}

	q.clientID = clientID
	return nil
}
