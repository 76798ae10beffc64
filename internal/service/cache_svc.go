package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const (
	MovieCacheTTL    = 6 * time.Hour
	TrendingCacheTTL = 30 * time.Minute
)

// CacheService provides a Redis cache-aside layer for catalog lookups.
type CacheService struct {
	rdb    *redis.Client
	hits   prometheus.Counter
	misses prometheus.Counter
}

// InstrumentWith counts lookups against the given hit/miss counters.
// Lookups while the cache is disabled are not counted.
func (c *CacheService) InstrumentWith(hits, misses prometheus.Counter) {
	c.hits = hits
	c.misses = misses
}

func (c *CacheService) countHit() {
	if c.hits != nil {
		c.hits.Inc()
	}
}

func (c *CacheService) countMiss() {
	if c.misses != nil {
		c.misses.Inc()
	}
}

// NewCacheService creates a new CacheService. If redisURL is empty or
// the connection fails, cache operations become no-ops.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetMovie retrieves cached movie details. Returns nil when not cached.
func (c *CacheService) GetMovie(ctx context.Context, tmdbID int) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, movieKey(tmdbID)).Bytes()
	if err == redis.Nil {
		c.countMiss()
		return nil, nil
	}
	if err == nil {
		c.countHit()
	}
	return data, err
}

// SetMovie stores movie details in cache.
func (c *CacheService) SetMovie(ctx context.Context, tmdbID int, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, movieKey(tmdbID), b, MovieCacheTTL).Err()
}

// InvalidateMovie drops a movie from cache (called after a poster
// override changes).
func (c *CacheService) InvalidateMovie(ctx context.Context, tmdbID int) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, movieKey(tmdbID)).Err()
}

// GetTrending retrieves a cached trending chart. Returns nil when not cached.
func (c *CacheService) GetTrending(ctx context.Context, window string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, trendingKey(window)).Bytes()
	if err == redis.Nil {
		c.countMiss()
		return nil, nil
	}
	if err == nil {
		c.countHit()
	}
	return data, err
}

// SetTrending stores a trending chart in cache.
func (c *CacheService) SetTrending(ctx context.Context, window string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, trendingKey(window), b, TrendingCacheTTL).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func movieKey(tmdbID int) string {
	return fmt.Sprintf("movie:%d", tmdbID)
}

func trendingKey(window string) string {
	return fmt.Sprintf("trending:%s", window)
}
