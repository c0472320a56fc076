// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. This package implements the repository pattern
// for the delivery aggregate, handling the conversion between domain
// entities and database representations.
package deliveryrepo

import (
	"time"

	"deliverybroker/internal/core/domain/model/delivery"
	"deliverybroker/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. Status is stored as its wire string so rows read naturally
// and the listing queries can filter without a mapping table. The version
// column backs the optimistic concurrency check on update.
type DeliveryDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID           uuid.UUID  `gorm:"type:uuid;index"`
	DriverID           *uuid.UUID `gorm:"type:uuid;index"`
	PickupAddress      string
	DeliveryAddress    string
	Description        string
	WeightKg           decimal.Decimal `gorm:"type:numeric"`
	OfferedPrice       decimal.Decimal `gorm:"type:numeric"`
	Status             string          `gorm:"index"`
	CancellationReason string
	ReturnReason       string
	Version            int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the database table name for delivery entities.
// Overrides GORM's default naming convention to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery domain aggregate to its database
// representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return DeliveryDTO{
		ID:                 aggregate.ID().Bytes(),
		ClientID:           aggregate.ClientID().Bytes(),
		DriverID:           driverID,
		PickupAddress:      aggregate.PickupAddress(),
		DeliveryAddress:    aggregate.DeliveryAddress(),
		Description:        aggregate.Description(),
		WeightKg:           aggregate.WeightKg(),
		OfferedPrice:       aggregate.OfferedPrice(),
		Status:             aggregate.Status().String(),
		CancellationReason: aggregate.CancellationReason(),
		ReturnReason:       aggregate.ReturnReason(),
		Version:            aggregate.Version(),
		CreatedAt:          aggregate.CreatedAt(),
		UpdatedAt:          aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a delivery domain aggregate using
// RestoreDelivery, so corrupted rows fail loudly instead of producing
// invalid aggregates.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}

		driverID = &dID
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id,
		clientID,
		driverID,
		dto.PickupAddress,
		dto.DeliveryAddress,
		dto.Description,
		dto.WeightKg,
		dto.OfferedPrice,
		status,
		dto.CancellationReason,
		dto.ReturnReason,
		dto.Version,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
