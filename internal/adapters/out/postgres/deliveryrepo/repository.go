package deliveryrepo

import (
	"context"
	"errors"

	"deliverybroker/internal/core/domain/model/delivery"
	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing delivery to the database with an optimistic
// concurrency check: the row is matched on both id and the version the
// aggregate was loaded with, and the stored version is bumped in the same
// statement. Zero rows affected means another transaction won the race.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionConflictError("delivery", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByClient retrieves all deliveries posted by the given client, newest
// first.
func (r *GormDeliveryRepository) GetByClient(
	ctx context.Context,
	clientID kernel.UUID,
) ([]*delivery.Delivery, error) {
	if err := clientID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&dtos, "client_id = ?", clientID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// GetByDriver retrieves all deliveries assigned to the given driver, newest
// first.
func (r *GormDeliveryRepository) GetByDriver(
	ctx context.Context,
	driverID kernel.UUID,
) ([]*delivery.Delivery, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&dtos, "driver_id = ?", driverID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// GetByStatus retrieves all deliveries in the given status, newest first.
func (r *GormDeliveryRepository) GetByStatus(
	ctx context.Context,
	status delivery.Status,
) ([]*delivery.Delivery, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&dtos, "status = ?", status.String()).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// GetAll retrieves every delivery, newest first.
func (r *GormDeliveryRepository) GetAll(ctx context.Context) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func toDomainList(dtos []DeliveryDTO) ([]*delivery.Delivery, error) {
	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}
