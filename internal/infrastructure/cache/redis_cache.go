package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/CellStock-api/internal/application/analytics"
	"github.com/jhoicas/CellStock-api/internal/application/dto"
	"github.com/jhoicas/CellStock-api/internal/application/sales"
)

var (
	_ analytics.Cache        = (*RedisDashboardCache)(nil)
	_ sales.CacheInvalidator = (*RedisDashboardCache)(nil)
)

const keyPrefix = "dashboard"

// RedisDashboardCache guarda el dashboard por (tienda, mes) con TTL.
// Los errores de Redis se registran y se tratan como miss: el dashboard se recalcula.
type RedisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewRedisDashboardCache(addr, password string, db int, ttl time.Duration, log zerolog.Logger) *RedisDashboardCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisDashboardCache{client: client, ttl: ttl, log: log}
}

func (c *RedisDashboardCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisDashboardCache) Close() error {
	return c.client.Close()
}

func key(storeID, month string) string {
	if month == "" {
		month = "all"
	}
	return fmt.Sprintf("%s:%s:%s", keyPrefix, storeID, month)
}

func (c *RedisDashboardCache) Get(ctx context.Context, storeID, month string) (*dto.DashboardStats, bool) {
	val, err := c.client.Get(ctx, key(storeID, month)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn().Err(err).Str("store_id", storeID).Msg("cache: get dashboard")
		return nil, false
	}

	var stats dto.DashboardStats
	if err := json.Unmarshal([]byte(val), &stats); err != nil {
		c.log.Warn().Err(err).Str("store_id", storeID).Msg("cache: decode dashboard")
		return nil, false
	}
	return &stats, true
}

func (c *RedisDashboardCache) Set(ctx context.Context, storeID, month string, stats *dto.DashboardStats) {
	if stats == nil {
		return
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		c.log.Warn().Err(err).Msg("cache: encode dashboard")
		return
	}
	if err := c.client.Set(ctx, key(storeID, month), payload, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("store_id", storeID).Msg("cache: set dashboard")
	}
}

// InvalidateStore borra todas las claves de la tienda (todos los meses).
func (c *RedisDashboardCache) InvalidateStore(ctx context.Context, storeID string) {
	pattern := fmt.Sprintf("%s:%s:*", keyPrefix, storeID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn().Err(err).Str("store_id", storeID).Msg("cache: scan dashboard keys")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Str("store_id", storeID).Msg("cache: invalidate dashboard")
	}
}
