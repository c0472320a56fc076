package queries

import (
	"context"

	"deliverybroker/internal/core/domain/model/delivery"

	"gorm.io/gorm"
)

// GetAvailableDeliveriesQueryHandler retrieves the open delivery pool from
// the database: deliveries in Available status, oldest first, so the ones
// waiting longest surface at the top for drivers.
type GetAvailableDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableDeliveriesQueryHandler creates a handler for open pool
// queries. Requires a GORM database connection for query execution.
func NewGetAvailableDeliveriesQueryHandler(db *gorm.DB) GetAvailableDeliveriesQueryHandler {
	return GetAvailableDeliveriesQueryHandler{db: db}
}

// Handle executes the query and returns the available deliveries, oldest
// first.
func (h GetAvailableDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableDeliveriesQuery,
) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+deliverySelectColumns+`
		FROM deliveries
		WHERE status = ?
		ORDER BY created_at
	`, delivery.Available.String()).Rows()
	if err != nil {
		return nil, err
	}

	return collectDeliveryRows(rows)
}
