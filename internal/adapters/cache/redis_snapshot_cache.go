package cache

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const keyPrefix = "delivery:snapshot:"

// RedisSnapshotCache stores simulation snapshots as JSON with a TTL.
// It implements ports.SnapshotCache and is safe for concurrent use.
type RedisSnapshotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSnapshotCache(url string, ttl time.Duration) (*RedisSnapshotCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis snapshot cache: parse url: %w", err)
	}
	return NewRedisSnapshotCacheWithClient(redis.NewClient(opt), ttl), nil
}

func NewRedisSnapshotCacheWithClient(rdb *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{rdb: rdb, ttl: ttl}
}

func (c *RedisSnapshotCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Get returns the cached snapshot for key; a miss is (nil, false, nil).
func (c *RedisSnapshotCache) Get(ctx context.Context, key string) (_ *domain.Snapshot, _ bool, err error) {
	defer obs.Time(ctx, "snapshot.cache.Get")(&err)

	if key == "" {
		return nil, false, errors.New("get snapshot cache: key must not be empty")
	}

	data, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get snapshot cache: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false, fmt.Errorf("get snapshot cache: decode %q: %w", key, err)
	}
	return &snap, true, nil
}

func (c *RedisSnapshotCache) Put(ctx context.Context, key string, snap *domain.Snapshot) error {
	if key == "" {
		return errors.New("put snapshot cache: key must not be empty")
	}
	if snap == nil {
		return errors.New("put snapshot cache: snapshot is nil")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("put snapshot cache: encode %q: %w", key, err)
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("put snapshot cache: %w", err)
	}
	return nil
}

func (c *RedisSnapshotCache) Close() error { return c.rdb.Close() }
