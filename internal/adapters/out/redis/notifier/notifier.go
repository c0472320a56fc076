// Package notifier pushes realtime delivery updates over Redis pub/sub.
// Listeners subscribe to the channels below; there is no delivery guarantee
// and no replay. Commands treat a failed publish as log-and-drop, so the
// notifier never blocks or fails a business operation.
//
// Channels:
//   - deliveries:available        new postings, visible to all drivers
//   - drivers:<id>:deliveries     updates scoped to one driver
//   - deliveries:updates          every lifecycle change, for dashboards
package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"deliverybroker/internal/core/domain/model/delivery"
	"deliverybroker/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const (
	availableChannel = "deliveries:available"
	updatesChannel   = "deliveries:updates"
)

// RedisNotifier implements Notifier over Redis pub/sub channels.
type RedisNotifier struct {
	client *redis.Client
}

// NewRedisNotifier creates a notifier backed by the given Redis client.
func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

// NotifyAvailable announces a newly posted delivery to all drivers.
func (n *RedisNotifier) NotifyAvailable(ctx context.Context, snapshot delivery.Snapshot) error {
	return n.publish(ctx, availableChannel, snapshot)
}

// NotifyDriver pushes an update about one of the driver's deliveries.
func (n *RedisNotifier) NotifyDriver(
	ctx context.Context,
	driverID kernel.UUID,
	snapshot delivery.Snapshot,
) error {
	channel := fmt.Sprintf("drivers:%s:deliveries", driverID)
	return n.publish(ctx, channel, snapshot)
}

// NotifyUpdate broadcasts a lifecycle change to general listeners.
func (n *RedisNotifier) NotifyUpdate(ctx context.Context, snapshot delivery.Snapshot) error {
	return n.publish(ctx, updatesChannel, snapshot)
}

func (n *RedisNotifier) publish(ctx context.Context, channel string, snapshot delivery.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return n.client.Publish(ctx, channel, payload).Err()
}
