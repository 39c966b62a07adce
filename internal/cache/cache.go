// Package cache is a read-through query cache on Redis. Entries are keyed by
// query name and invalidated after mutations.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "onlyadmit:query:"

// Query keys
const (
	KeyColleges      = "colleges"
	KeyAnnouncements = "announcements"
)

func KeyCollegeExamSlots(collegeID uuid.UUID) string {
	return "collegeExamSlots:" + collegeID.String()
}

func KeyCollegeApplications(collegeID uuid.UUID) string {
	return "collegeApplications:" + collegeID.String()
}

func KeyMyApplications(studentID uuid.UUID) string {
	return "myApplications:" + studentID.String()
}

type QueryCache struct {
	client  *redis.Client
	ttl     time.Duration
	retries int
	logger  *zap.Logger
}

// New creates a query cache. retries is the number of extra fetch attempts after a failure.
func New(client *redis.Client, ttl time.Duration, retries int, logger *zap.Logger) *QueryCache {
	return &QueryCache{
		client:  client,
		ttl:     ttl,
		retries: retries,
		logger:  logger,
	}
}

// Fetch returns the cached value for key or loads it with fetch and stores it.
// A nil cache only applies the retry policy.
func Fetch[T any](ctx context.Context, c *QueryCache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	if c == nil || c.client == nil {
		return retry(ctx, 1, fetch)
	}

	var value T
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &value); err == nil {
			return value, nil
		}
		c.logger.Warn("Dropping undecodable cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	}

	value, err = retry(ctx, c.retries, fetch)
	if err != nil {
		return value, err
	}

	if raw, err := json.Marshal(value); err == nil {
		if err := c.client.Set(ctx, keyPrefix+key, raw, c.ttl).Err(); err != nil {
			c.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return value, nil
}

// Invalidate drops the given query keys so the next read refetches
func (c *QueryCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}

	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, keyPrefix+k)
	}

	if err := c.client.Del(ctx, full...).Err(); err != nil {
		c.logger.Warn("Cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func retry[T any](ctx context.Context, retries int, fetch func(ctx context.Context) (T, error)) (T, error) {
	var (
		value T
		err   error
	)
	for attempt := 0; attempt <= retries; attempt++ {
		value, err = fetch(ctx)
		if err == nil {
			return value, nil
		}
		if ctx.Err() != nil {
			break
		}
	}
	return value, fmt.Errorf("query failed after %d attempt(s): %w", retries+1, err)
}
