package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	client *redis.Client
}

// ErrMiss is returned by GetJSON when the key is absent.
var ErrMiss = fmt.Errorf("cache: key not found")

// NewRedisCache creates a Redis-backed cache, verifying the connection.
func NewRedisCache(redisURL string) (Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		// Not a URL; try as plain host:port.
		opt = &redis.Options{Addr: redisURL}
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return &redisCache{client: client}, nil
}

// GetJSON retrieves and unmarshals a cached value.
func (r *redisCache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("unmarshaling cached value: %w", err)
	}
	return nil
}

// SetJSON marshals and stores a value with the given TTL.
func (r *redisCache) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling value for cache: %w", err)
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

// Delete removes a key.
func (r *redisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
