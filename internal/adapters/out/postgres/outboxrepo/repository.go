package outboxrepo

import (
	"context"

	"deliverybroker/internal/core/domain/model/outbox"
	"deliverybroker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add saves a new outbox message to the database.
func (r *GormOutboxRepository) Add(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetUnpublished retrieves pending messages, oldest first, up to limit.
// Oldest first preserves per-key ordering for consumers that care about it.
func (r *GormOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsInvalidError("limit")
	}

	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, nil
}

// MarkPublished records the message's publication timestamp. The message
// must already be marked published in memory.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	publishedAt := message.PublishedAt()
	if publishedAt == nil {
		return errs.NewValueIsRequiredError("publishedAt")
	}

	result := r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ?", message.ID().Bytes()).
		Update("published_at", publishedAt)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", message.ID().String())
	}

	return nil
}
