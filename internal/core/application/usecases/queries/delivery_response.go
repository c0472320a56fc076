// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read straight from the database (or the in-route cache) and return
// read models, bypassing the aggregates.
package queries

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryResponse is the read model shared by the delivery listing queries.
type DeliveryResponse struct {
	ID                 uuid.UUID
	ClientID           uuid.UUID
	DriverID           *uuid.UUID
	PickupAddress      string
	DeliveryAddress    string
	Description        string
	WeightKg           decimal.Decimal
	OfferedPrice       decimal.Decimal
	Status             string
	CancellationReason string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// deliverySelectColumns is the column list every delivery listing query
// scans; keep it in sync with scanDeliveryRow.
const deliverySelectColumns = `
	id,
	client_id,
	driver_id,
	pickup_address,
	delivery_address,
	description,
	weight_kg,
	offered_price,
	status,
	cancellation_reason,
	created_at,
	updated_at
`

func scanDeliveryRow(rows *sql.Rows) (DeliveryResponse, error) {
	var response DeliveryResponse
	var driverID uuid.NullUUID
	var cancellationReason sql.NullString

	err := rows.Scan(
		&response.ID,
		&response.ClientID,
		&driverID,
		&response.PickupAddress,
		&response.DeliveryAddress,
		&response.Description,
		&response.WeightKg,
		&response.OfferedPrice,
		&response.Status,
		&cancellationReason,
		&response.CreatedAt,
		&response.UpdatedAt,
	)
	if err != nil {
		return DeliveryResponse{}, err
	}

	if driverID.Valid {
		id := driverID.UUID
		response.DriverID = &id
	}
	if cancellationReason.Valid {
		response.CancellationReason = cancellationReason.String
	}

	return response, nil
}

func collectDeliveryRows(rows *sql.Rows) ([]DeliveryResponse, error) {
	defer rows.Close()

	deliveries := make([]DeliveryResponse, 0)
	for rows.Next() {
		response, err := scanDeliveryRow(rows)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, response)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
