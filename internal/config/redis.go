package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the configured Redis server. It returns nil when
// caching is disabled or the server does not answer a ping, in which case
// callers run without a cache.
func NewRedisClient(cfg Config) *redis.Client {
	if !cfg.Cache.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unreachable at %s, caching disabled: %v", cfg.Redis.Addr, err)
		_ = client.Close()
		return nil
	}
	return client
}
