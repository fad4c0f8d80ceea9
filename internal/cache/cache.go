// Package cache stores generated timetables in Redis, keyed by a digest of the
// request that produced them.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"

	"github.com/limaJavier/autoscheduler/pkg/model"
)

// Entry is the cached outcome of a single search
type Entry struct {
	Timetables   []model.Timetable `json:"timetables"`
	Combinations uint64            `json:"combinations"`
	Truncated    bool              `json:"truncated"`
}

type TimetableCache interface {
	// Get returns the entry stored under key, ok is false on a miss
	Get(ctx context.Context, key string) (entry Entry, ok bool, err error)
	Set(ctx context.Context, key string, entry Entry) error
}

type redisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration) TimetableCache {
	return &redisCache{client: client, prefix: prefix, ttl: ttl}
}

func (cache *redisCache) Get(ctx context.Context, key string) (Entry, bool, error) {
	payload, err := cache.client.Get(ctx, cache.prefix+":"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	} else if err != nil {
		return Entry{}, false, fmt.Errorf("cache get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return Entry{}, false, fmt.Errorf("cache decode: %w", err)
	}
	return entry, true, nil
}

func (cache *redisCache) Set(ctx context.Context, key string, entry Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := cache.client.Set(ctx, cache.prefix+":"+key, payload, cache.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Key digests a request together with the scope of the scheduler that serves it.
// Maps are marshalled with sorted keys, so equal requests always share a key.
func Key(scope string, request model.Request) (string, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}

	digest := xxhash.New()
	_, _ = digest.WriteString(scope)
	_, _ = digest.Write([]byte{0})
	_, _ = digest.Write(payload)
	return fmt.Sprintf("%016x", digest.Sum64()), nil
}
