package cache

import (
	"context"
	"delivery-planner/internal/domain"
	"delivery-planner/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLegCache stores computed legs as JSON in Redis.
// Keys are namespaced by map name so plans over different maps never share legs.
type RedisLegCache struct {
	Client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisLegCache(client *redis.Client, mapName string, ttl time.Duration) *RedisLegCache {
	return &RedisLegCache{
		Client: client,
		prefix: "leg:" + mapName + ":",
		ttl:    ttl,
	}
}

func (c *RedisLegCache) Get(ctx context.Context, from, to domain.Coordinate) (_ domain.Route, _ bool, err error) {
	defer obs.Time(ctx, "legs.cache.Get")(&err)

	if c.Client == nil {
		return domain.Route{}, false, errors.New("leg cache: client is nil")
	}

	raw, err := c.Client.Get(ctx, legKey(c.prefix, from, to)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Route{}, false, nil
	}
	if err != nil {
		return domain.Route{}, false, fmt.Errorf("get leg cache: %w", err)
	}

	var route domain.Route
	if err := json.Unmarshal(raw, &route); err != nil {
		return domain.Route{}, false, fmt.Errorf("get leg cache: decode %s -> %s: %w", from, to, err)
	}

	return route, true, nil
}

func (c *RedisLegCache) Put(ctx context.Context, from, to domain.Coordinate, route domain.Route) (err error) {
	defer obs.Time(ctx, "legs.cache.Put")(&err)

	if c.Client == nil {
		return errors.New("leg cache: client is nil")
	}

	raw, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("insert leg cache: encode %s -> %s: %w", from, to, err)
	}

	if err := c.Client.Set(ctx, legKey(c.prefix, from, to), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert leg cache: %w", err)
	}

	return nil
}
