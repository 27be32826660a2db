package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storehub/internal/api/dto"

	"github.com/redis/go-redis/v9"
)

const dashboardKey = "dashboard:stats"

// DashboardCache keeps the admin dashboard counters in Redis under a short
// TTL so the landing page does not hit three COUNT queries per load. The
// store aggregate cache is NOT kept here: per the read contract it lives on
// the store row itself.
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDashboardCache connects to Redis and verifies the connection.
func NewDashboardCache(redisURL, password string, ttl time.Duration) (*DashboardCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &DashboardCache{client: rdb, ttl: ttl}, nil
}

// Get returns the cached stats, or nil on a miss.
func (c *DashboardCache) Get(ctx context.Context) (*dto.DashboardStats, error) {
	if c == nil || c.client == nil {
		// No-op when running without Redis
		return nil, nil
	}

	raw, err := c.client.Get(ctx, dashboardKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var stats dto.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Set stores the stats under the configured TTL.
func (c *DashboardCache) Set(ctx context.Context, stats dto.DashboardStats) error {
	if c == nil || c.client == nil {
		return nil
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, dashboardKey, raw, c.ttl).Err()
}

// Invalidate drops the cached stats, used after admin create operations.
func (c *DashboardCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, dashboardKey).Err()
}

// Close releases the Redis connection.
func (c *DashboardCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
