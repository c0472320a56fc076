package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetClientDeliveriesQueryHandler retrieves one client's deliveries from
// the database, newest first.
type GetClientDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetClientDeliveriesQueryHandler creates a handler for client delivery
// history queries. Requires a GORM database connection for query execution.
func NewGetClientDeliveriesQueryHandler(db *gorm.DB) GetClientDeliveriesQueryHandler {
	return GetClientDeliveriesQueryHandler{db: db}
}

// Handle executes the query and returns the client's deliveries in every
// lifecycle state, newest first.
func (h GetClientDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetClientDeliveriesQuery,
) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+deliverySelectColumns+`
		FROM deliveries
		WHERE client_id = ?
		ORDER BY created_at DESC
	`, query.ClientID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}

	return collectDeliveryRows(rows)
}
