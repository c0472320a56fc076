// Package inroutecache provides the Redis-backed hot cache of deliveries
// currently being carried. Snapshots live in a single hash keyed by delivery
// ID, with a per-driver set indexing which deliveries each driver carries.
// The cache is a projection: the database stays authoritative and the rebuild
// job reloads the cache from it, so losing Redis loses no data.
package inroutecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"deliverybroker/internal/core/domain/model/delivery"
	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const hashKey = "delivery:in_route"

// RedisInRouteCache implements InRouteCache using a Redis hash plus
// per-driver index sets.
type RedisInRouteCache struct {
	client *redis.Client
}

// NewRedisInRouteCache creates a cache backed by the given Redis client.
func NewRedisInRouteCache(client *redis.Client) *RedisInRouteCache {
	return &RedisInRouteCache{client: client}
}

func driverKey(driverID string) string {
	return fmt.Sprintf("driver:%s:deliveries", driverID)
}

// Put stores the snapshot and indexes it under its driver. Both writes go
// through one pipeline so the index never references a missing snapshot for
// longer than a single round trip.
func (c *RedisInRouteCache) Put(ctx context.Context, snapshot delivery.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, hashKey, snapshot.ID, payload)
	if snapshot.DriverID != nil {
		pipe.SAdd(ctx, driverKey(*snapshot.DriverID), snapshot.ID)
	}

	_, err = pipe.Exec(ctx)
	return err
}

// Get retrieves a cached snapshot by delivery ID.
// Returns ports.ErrCacheMiss when absent.
func (c *RedisInRouteCache) Get(ctx context.Context, id kernel.UUID) (delivery.Snapshot, error) {
	payload, err := c.client.HGet(ctx, hashKey, id.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return delivery.Snapshot{}, ports.ErrCacheMiss
		}
		return delivery.Snapshot{}, err
	}

	var snapshot delivery.Snapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return delivery.Snapshot{}, err
	}

	return snapshot, nil
}

// ByDriver retrieves all cached snapshots for the given driver. Index
// entries whose snapshot has already been removed are skipped.
func (c *RedisInRouteCache) ByDriver(ctx context.Context, driverID kernel.UUID) ([]delivery.Snapshot, error) {
	ids, err := c.client.SMembers(ctx, driverKey(driverID.String())).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []delivery.Snapshot{}, nil
	}

	values, err := c.client.HMGet(ctx, hashKey, ids...).Result()
	if err != nil {
		return nil, err
	}

	snapshots := make([]delivery.Snapshot, 0, len(values))
	for _, value := range values {
		payload, ok := value.(string)
		if !ok {
			continue
		}

		var snapshot delivery.Snapshot
		if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

// All retrieves every cached in-route snapshot.
func (c *RedisInRouteCache) All(ctx context.Context) ([]delivery.Snapshot, error) {
	entries, err := c.client.HGetAll(ctx, hashKey).Result()
	if err != nil {
		return nil, err
	}

	snapshots := make([]delivery.Snapshot, 0, len(entries))
	for _, payload := range entries {
		var snapshot delivery.Snapshot
		if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

// Remove drops the cached snapshot and its driver index entry. The owning
// driver comes from the cached entry itself, so the index is cleaned even
// when the caller's copy of the delivery has diverged from the cache.
// Removing an absent entry is not an error.
func (c *RedisInRouteCache) Remove(ctx context.Context, id kernel.UUID) error {
	payload, err := c.client.HGet(ctx, hashKey, id.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}

	pipe := c.client.TxPipeline()
	pipe.HDel(ctx, hashKey, id.String())

	var snapshot delivery.Snapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err == nil && snapshot.DriverID != nil {
		pipe.SRem(ctx, driverKey(*snapshot.DriverID), id.String())
	}

	_, err = pipe.Exec(ctx)
	return err
}

// Clear drops the whole cache, including every driver index set. The rebuild
// job calls this before reloading from the database.
func (c *RedisInRouteCache) Clear(ctx context.Context) error {
	entries, err := c.client.HGetAll(ctx, hashKey).Result()
	if err != nil {
		return err
	}

	keys := []string{hashKey}
	seen := make(map[string]struct{})
	for _, payload := range entries {
		var snapshot delivery.Snapshot
		if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
			continue
		}
		if snapshot.DriverID == nil {
			continue
		}
		key := driverKey(*snapshot.DriverID)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	return c.client.Del(ctx, keys...).Err()
}
