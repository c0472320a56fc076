package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetDriverDeliveriesQueryHandler retrieves one driver's assigned
// deliveries from the database, newest first.
type GetDriverDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetDriverDeliveriesQueryHandler creates a handler for driver delivery
// history queries. Requires a GORM database connection for query execution.
func NewGetDriverDeliveriesQueryHandler(db *gorm.DB) GetDriverDeliveriesQueryHandler {
	return GetDriverDeliveriesQueryHandler{db: db}
}

// Handle executes the query and returns every delivery the driver was ever
// assigned to, in route or settled, newest first.
func (h GetDriverDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetDriverDeliveriesQuery,
) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+deliverySelectColumns+`
		FROM deliveries
		WHERE driver_id = ?
		ORDER BY created_at DESC
	`, query.DriverID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}

	return collectDeliveryRows(rows)
}
