package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListDeliveriesQueryHandler retrieves deliveries from the database for the
// admin listing. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
//
// Example:
//
//	handler := NewListDeliveriesQueryHandler(db)
//	query, _ := NewListDeliveriesQueryWithStatus(delivery.Available)
//
//	deliveries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list deliveries: %v", err)
//	}
type ListDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewListDeliveriesQueryHandler creates a handler for the admin delivery
// listing. Requires a GORM database connection for query execution.
func NewListDeliveriesQueryHandler(db *gorm.DB) ListDeliveriesQueryHandler {
	return ListDeliveriesQueryHandler{db: db}
}

// Handle executes the listing query, newest first. A status filter narrows
// the result to one lifecycle state.
func (h ListDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListDeliveriesQuery,
) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx)

	var rows = tx.Raw(`
		SELECT `+deliverySelectColumns+`
		FROM deliveries
		ORDER BY created_at DESC
	`)
	if status := query.Status(); status != nil {
		rows = tx.Raw(`
			SELECT `+deliverySelectColumns+`
			FROM deliveries
			WHERE status = ?
			ORDER BY created_at DESC
		`, status.String())
	}

	sqlRows, err := rows.Rows()
	if err != nil {
		return nil, err
	}

	return collectDeliveryRows(sqlRows)
}
