package cache

import (
	"context"
	"fmt"
	"time"

	"travel-crm/internal/config"

	"github.com/redis/go-redis/v9"
)

// Cache keys for reporting endpoints. All readers must tolerate a nil client:
// Redis is optional and the service degrades to direct DB reads without it.
const (
	BoardDataKey    = "inquiries:board"
	DashboardKeyFmt = "inquiries:dashboard:%s:%s"
)

var client *redis.Client

// Init initializes the Redis connection
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// DashboardKey builds the dashboard cache key for a date range
func DashboardKey(dateFrom, dateTo string) string {
	return fmt.Sprintf(DashboardKeyFmt, dateFrom, dateTo)
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateInquiryCaches clears inquiry list, board and dashboard caches.
// Called on any inquiry write: create, update, stage change, assign,
// bulk update, delete, payment recorded.
func InvalidateInquiryCaches(ctx context.Context) {
	InvalidatePattern(ctx, "inquiries:*")
}

// InvalidateUserCaches clears all user-related caches
func InvalidateUserCaches(ctx context.Context) {
	InvalidatePattern(ctx, "users:*")
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
