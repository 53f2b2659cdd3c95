package cache

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Derived-metric cache keys
const (
	DashboardKeyFmt = "dashboard:%s:%s" // scope, date
	StatsKeyFmt     = "report:stats:%s" // date
)

var client *redis.Client

// Init initializes the Redis connection. A failed connection degrades to
// no caching; callers never need to check.
func Init(addr, password string, db int) error {
	if addr == "" {
		// K8s sets REDIS_SERVICE_HOST and REDIS_SERVICE_PORT for services
		host := os.Getenv("REDIS_SERVICE_HOST")
		port := os.Getenv("REDIS_SERVICE_PORT")
		if host == "" {
			return nil // caching disabled
		}
		if port == "" {
			port = "6379"
		}
		addr = host + ":" + port
	}

	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
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

// GetClient returns the Redis client (nil when caching is disabled)
func GetClient() *redis.Client {
	return client
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

// InvalidateMetricCaches clears every derived-metric cache. Called on any
// write to the interaction store, since all KPIs derive from it.
func InvalidateMetricCaches(ctx context.Context) {
	InvalidatePattern(ctx, "dashboard:*")
	InvalidatePattern(ctx, "report:*")
}

// IsHealthy returns true if the Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
