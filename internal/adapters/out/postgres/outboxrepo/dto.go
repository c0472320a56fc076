// Package outboxrepo provides data transfer objects and mapping functions
// for the transactional outbox. Messages are written in the same database
// transaction as the state change they describe and drained by the dispatch
// job.
package outboxrepo

import (
	"time"

	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// MessageDTO represents the database structure for persisting outbox
// messages. A NULL published_at marks the message as pending.
type MessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Topic       string
	Key         string
	Payload     []byte `gorm:"type:jsonb"`
	CreatedAt   time.Time
	PublishedAt *time.Time `gorm:"index"`
}

// TableName specifies the database table name for outbox messages.
func (MessageDTO) TableName() string {
	return "outbox"
}

// fromDomain converts an outbox message to its database representation.
func fromDomain(message *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:          message.ID().Bytes(),
		Topic:       message.Topic(),
		Key:         message.Key(),
		Payload:     message.Payload(),
		CreatedAt:   message.CreatedAt(),
		PublishedAt: message.PublishedAt(),
	}
}

// toDomain converts a database DTO to an outbox message.
func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return outbox.RestoreMessage(
		id,
		dto.Topic,
		dto.Key,
		dto.Payload,
		dto.CreatedAt,
		dto.PublishedAt,
	)
}
