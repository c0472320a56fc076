package outbox_test

import (
	"encoding/json"
	"testing"
	"time"

	"deliverybroker/internal/core/domain/events"
	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/core/domain/model/outbox"
	"deliverybroker/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	t.Run("serializes the event", func(t *testing.T) {
		event := events.DeliveryRequested{
			DeliveryID:    kernel.NewUUID().String(),
			ClientID:      kernel.NewUUID().String(),
			PickupAddress: "12 Baker St",
			OfferedPrice:  decimal.NewFromInt(100),
			RequestedAt:   time.Now().UTC(),
		}

		m, err := outbox.NewMessage(events.TopicDeliveryRequested, event.DeliveryID, event)
		require.NoError(t, err)

		assert.Equal(t, events.TopicDeliveryRequested, m.Topic())
		assert.Equal(t, event.DeliveryID, m.Key())
		assert.False(t, m.IsPublished())
		assert.Nil(t, m.PublishedAt())

		var decoded events.DeliveryRequested
		require.NoError(t, json.Unmarshal(m.Payload(), &decoded))
		assert.Equal(t, event.DeliveryID, decoded.DeliveryID)
		assert.True(t, decoded.OfferedPrice.Equal(event.OfferedPrice))
	})

	t.Run("requires topic and key", func(t *testing.T) {
		_, err := outbox.NewMessage("", "key", struct{}{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = outbox.NewMessage(events.TopicDeliveryRequested, "", struct{}{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects non-serializable events", func(t *testing.T) {
		_, err := outbox.NewMessage(events.TopicDeliveryRequested, "key", make(chan int))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRestoreMessage(t *testing.T) {
	t.Run("restores a published message", func(t *testing.T) {
		publishedAt := time.Now().UTC()
		m, err := outbox.RestoreMessage(
			kernel.NewUUID(),
			events.TopicDeliveryCompleted,
			"key",
			[]byte(`{}`),
			publishedAt.Add(-time.Minute),
			&publishedAt,
		)
		require.NoError(t, err)
		assert.True(t, m.IsPublished())
	})

	t.Run("rejects empty payload", func(t *testing.T) {
		_, err := outbox.RestoreMessage(
			kernel.NewUUID(),
			events.TopicDeliveryCompleted,
			"key",
			nil,
			time.Now().UTC(),
			nil,
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestMessage_MarkPublished(t *testing.T) {
	m, err := outbox.NewMessage(events.TopicDeliveryCanceled, "key", struct{}{})
	require.NoError(t, err)

	require.NoError(t, m.MarkPublished())
	assert.True(t, m.IsPublished())
	require.NotNil(t, m.PublishedAt())

	require.ErrorIs(t, m.MarkPublished(), errs.ErrBusinessRule)
}
