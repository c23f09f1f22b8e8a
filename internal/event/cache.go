package event

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a redis read-through decorator for an event Store. Events change
// rarely but are read on every fields/status/register call, so a short TTL
// takes most reads off the primary store. Cache misses and redis failures
// fall through to the inner store; a cache problem must never fail a request.
type Cache struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCache(inner Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{inner: inner, client: client, ttl: ttl, logger: logger}
}

func cacheKey(id string) string { return "event:" + id }

func (c *Cache) Get(ctx context.Context, id string) (*Event, error) {
	raw, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if err == nil {
		var ev Event
		if err := json.Unmarshal(raw, &ev); err == nil {
			return &ev, nil
		}
		// Stale or corrupt entry; fall through and rewrite below.
	} else if !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "event cache read failed", "event_id", id, "error", err)
	}

	ev, err := c.inner.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(ev); err == nil {
		if err := c.client.Set(ctx, cacheKey(id), raw, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "event cache write failed", "event_id", id, "error", err)
		}
	}
	return ev, nil
}

// Put writes through to the inner store and invalidates the cached entry so
// required-field changes become visible within one request.
func (c *Cache) Put(ctx context.Context, ev *Event) error {
	if err := c.inner.Put(ctx, ev); err != nil {
		return err
	}
	if err := c.client.Del(ctx, cacheKey(ev.ID)).Err(); err != nil {
		c.logger.WarnContext(ctx, "event cache invalidation failed", "event_id", ev.ID, "error", err)
	}
	return nil
}
