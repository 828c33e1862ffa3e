package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Dpak2002/go-ecommerce-api/internal/usecase"
	"github.com/redis/go-redis/v9"
)

// Redis is both the read-through store for catalog snapshots and the
// write-path invalidator. It never caches on behalf of callers; read
// paths decide what to store, writes only delete keys. Backend errors
// on the invalidation path are logged and swallowed: a committed write
// must not be reverted because the cache is down.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
	log *slog.Logger
}

func NewRedis(rdb *redis.Client, ttl time.Duration, log *slog.Logger) *Redis {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Redis{rdb: rdb, ttl: ttl, log: log}
}

var _ usecase.CacheInvalidator = (*Redis)(nil)

// GetJSON loads key into v. The bool reports a hit; errors other than
// a miss are logged and treated as a miss.
func (r *Redis) GetJSON(ctx context.Context, key string, v any) bool {
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		r.log.Warn("cache get failed", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		r.log.Warn("cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

// SetJSON stores v under key with the fixed expiry. Entries not
// explicitly invalidated expire naturally.
func (r *Redis) SetJSON(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		r.log.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := r.rdb.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		r.log.Warn("cache set failed", "key", key, "error", err)
	}
}

func (r *Redis) InvalidateProduct(ctx context.Context, id int64) {
	if id > 0 {
		r.del(ctx, ProductDetailKey(id), ProductKey(id))
	}
	r.delPattern(ctx, productListPattern)
}

func (r *Redis) InvalidateCategory(ctx context.Context, id int64) {
	if id > 0 {
		r.del(ctx, CategoryDetailKey(id), CategoryKey(id))
	}
	r.delPattern(ctx, categoryListPattern)
}

func (r *Redis) InvalidateOrder(ctx context.Context, orderID, userID int64) {
	if orderID > 0 {
		r.del(ctx, OrderDetailKey(orderID), OrderKey(orderID))
	}
	if userID > 0 {
		r.delPattern(ctx, UserOrdersPattern(userID))
	}
	r.delPattern(ctx, orderListPattern)
}

func (r *Redis) del(ctx context.Context, keys ...string) {
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		r.log.Warn("cache delete failed", "keys", keys, "error", err)
	}
}

// delPattern walks matching keys with SCAN; list caches are keyed per
// page so only a pattern delete catches all of them.
func (r *Redis) delPattern(ctx context.Context, pattern string) {
	iter := r.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := r.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			r.log.Warn("cache delete failed", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		r.log.Warn("cache scan failed", "pattern", pattern, "error", err)
	}
}

// Clear flushes the whole cache database. Admin-only escape hatch.
func (r *Redis) Clear(ctx context.Context) error {
	return r.rdb.FlushDB(ctx).Err()
}

// Stats surfaces a few Redis INFO fields. When the backend is
// unreachable it degrades to an explicit error payload instead of
// failing the endpoint.
func (r *Redis) Stats(ctx context.Context) map[string]string {
	info, err := r.rdb.Info(ctx).Result()
	if err != nil {
		r.log.Warn("cache stats unavailable", "error", err)
		return map[string]string{"error": "Cache stats not available"}
	}
	return parseInfo(info, "used_memory_human", "connected_clients", "total_commands_processed")
}

// parseInfo picks the wanted fields out of a raw INFO response.
// Missing fields come back as "N/A".
func parseInfo(info string, fields ...string) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f] = "N/A"
	}
	for _, line := range strings.Split(info, "\n") {
		line = strings.TrimRight(line, "\r")
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if _, wanted := out[k]; wanted {
			out[k] = v
		}
	}
	return out
}
