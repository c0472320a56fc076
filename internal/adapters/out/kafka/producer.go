// Package kafka publishes integration events to the message broker. The
// producer is synchronous and waits for all in-sync replicas, so the outbox
// dispatch job only marks a message published once the broker has really
// taken it.
package kafka

import (
	"context"

	"deliverybroker/internal/pkg/errs"

	"github.com/IBM/sarama"
)

// SaramaEventPublisher implements EventPublisher using a Sarama sync
// producer.
type SaramaEventPublisher struct {
	producer sarama.SyncProducer
}

// NewSaramaEventPublisher creates a publisher connected to the given
// brokers. The caller owns the publisher and must Close it on shutdown.
func NewSaramaEventPublisher(brokers []string) (*SaramaEventPublisher, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}

	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_1_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Return.Successes = true
	cfg.Producer.Idempotent = true
	cfg.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	return &SaramaEventPublisher{producer: producer}, nil
}

// Publish sends one event to the given topic. Key selects the partition;
// events with the same key keep their relative order.
func (p *SaramaEventPublisher) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
	}

	_, _, err := p.producer.SendMessage(message)
	return err
}

// Close shuts down the underlying producer.
func (p *SaramaEventPublisher) Close() error {
	return p.producer.Close()
}
