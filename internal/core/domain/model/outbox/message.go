package outbox

import (
	"encoding/json"
	"errors"
	"time"

	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/pkg/errs"
)

var (
	// ErrMessageIsNotConstructed is returned when a Message instance was not
	// created through NewMessage or RestoreMessage.
	ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage or RestoreMessage")
)

// Message is a pending integration event stored in the transactional outbox.
// It is written in the same database transaction as the state change it
// describes and published to the broker by the dispatch job afterwards, so a
// crash between commit and publish only delays the event instead of losing
// it.
type Message struct {
	id      kernel.UUID
	topic   string
	key     string
	payload []byte

	createdAt   time.Time
	publishedAt *time.Time

	isConstructed bool
}

// NewMessage creates an unpublished outbox message. The event is serialized
// to JSON here so a non-serializable event fails the command instead of the
// dispatch job.
func NewMessage(topic, key string, event any) (*Message, error) {
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}
	if key == "" {
		return nil, errs.NewValueIsRequiredError("key")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("event payload is invalid", err)
	}

	return &Message{
		id:            kernel.NewUUID(),
		topic:         topic,
		key:           key,
		payload:       payload,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreMessage reconstructs an outbox message from persisted state.
func RestoreMessage(
	id kernel.UUID,
	topic string,
	key string,
	payload []byte,
	createdAt time.Time,
	publishedAt *time.Time,
) (*Message, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}
	if key == "" {
		return nil, errs.NewValueIsRequiredError("key")
	}
	if len(payload) == 0 {
		return nil, errs.NewValueIsRequiredError("payload")
	}

	return &Message{
		id:            id,
		topic:         topic,
		key:           key,
		payload:       payload,
		createdAt:     createdAt,
		publishedAt:   publishedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Message instance was properly constructed.
func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

// ID returns the message's unique identifier.
func (m *Message) ID() kernel.UUID {
	return m.id
}

// Topic returns the broker topic the message goes to.
func (m *Message) Topic() string {
	return m.topic
}

// Key returns the partition key.
func (m *Message) Key() string {
	return m.key
}

// Payload returns the serialized event body.
func (m *Message) Payload() []byte {
	return m.payload
}

// CreatedAt returns when the message was enqueued.
func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

// PublishedAt returns when the message was published, or nil while pending.
func (m *Message) PublishedAt() *time.Time {
	return m.publishedAt
}

// IsPublished reports whether the message reached the broker.
func (m *Message) IsPublished() bool {
	return m.publishedAt != nil
}

// MarkPublished records the publish time. Marking twice is a business rule
// violation; the dispatcher must not re-send acknowledged messages.
func (m *Message) MarkPublished() error {
	if m.publishedAt != nil {
		return errs.NewBusinessRuleError("message is already published")
	}
	now := time.Now().UTC()
	m.publishedAt = &now
	return nil
}
