package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/dcahoon3/mbr-shapefile-generator/pkg/storage"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/zone"
)

// RowCache caches areapoint query results in Redis. Routing data changes
// rarely relative to how often exports run, so short TTLs keep repeated
// exports off the database.
type RowCache struct {
	client *redis.Client
	config storage.Config
}

// NewRowCache creates a Redis-backed row cache.
func NewRowCache(config storage.Config) (*RowCache, error) {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	if config.RedisPassword != "" {
		opts.Password = config.RedisPassword
	}
	if config.RedisDB >= 0 {
		opts.DB = config.RedisDB
	}
	if config.RedisMaxRetries > 0 {
		opts.MaxRetries = config.RedisMaxRetries
	}
	if config.RedisPoolSize > 0 {
		opts.PoolSize = config.RedisPoolSize
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolTimeout = 4 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RowCache{client: client, config: config}, nil
}

// NewRowCacheFromClient wraps an existing client, primarily for tests.
func NewRowCacheFromClient(client *redis.Client, config storage.Config) *RowCache {
	return &RowCache{client: client, config: config}
}

// GetAreaPoints retrieves a customer's cached rows. A nil slice with nil
// error is a cache miss.
func (c *RowCache) GetAreaPoints(ctx context.Context, customerID string) ([]zone.AreaPoint, error) {
	key := fmt.Sprintf("areapoints:%s", customerID)

	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var points []zone.AreaPoint
	if err := json.Unmarshal([]byte(data), &points); err != nil {
		// corrupt entry, drop it
		c.client.Del(ctx, key)
		return nil, fmt.Errorf("failed to unmarshal areapoints: %w", err)
	}
	return points, nil
}

// SetAreaPoints stores a customer's rows.
func (c *RowCache) SetAreaPoints(ctx context.Context, customerID string, points []zone.AreaPoint) error {
	key := fmt.Sprintf("areapoints:%s", customerID)

	data, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("failed to marshal areapoints: %w", err)
	}
	return c.client.Set(ctx, key, data, c.config.CacheTTL["areapoints"]).Err()
}

// InvalidateAreaPoints drops a customer's cached rows.
func (c *RowCache) InvalidateAreaPoints(ctx context.Context, customerID string) error {
	return c.client.Del(ctx, fmt.Sprintf("areapoints:%s", customerID)).Err()
}

// GetCustomers retrieves the cached customer list. Nil with nil error is a miss.
func (c *RowCache) GetCustomers(ctx context.Context) ([]string, error) {
	data, err := c.client.Get(ctx, "customers").Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var customers []string
	if err := json.Unmarshal([]byte(data), &customers); err != nil {
		c.client.Del(ctx, "customers")
		return nil, fmt.Errorf("failed to unmarshal customers: %w", err)
	}
	return customers, nil
}

// SetCustomers stores the customer list.
func (c *RowCache) SetCustomers(ctx context.Context, customers []string) error {
	data, err := json.Marshal(customers)
	if err != nil {
		return fmt.Errorf("failed to marshal customers: %w", err)
	}
	return c.client.Set(ctx, "customers", data, c.config.CacheTTL["customers"]).Err()
}

// Ping checks the Redis connection.
func (c *RowCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Client exposes the underlying client for the health endpoint.
func (c *RowCache) Client() *redis.Client {
	return c.client
}

// Close closes the Redis connection.
func (c *RowCache) Close() error {
	return c.client.Close()
}
