package dnc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"contactgate/internal/facts"
)

// CachedRegistry fronts a registry with a Redis cache. Only definitive
// answers are cached; lookup failures pass through so the resolver's
// fail-closed handling stays in charge.
type CachedRegistry struct {
	inner  facts.DNCRegistry
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedRegistry(inner facts.DNCRegistry, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedRegistry {
	return &CachedRegistry{inner: inner, client: client, ttl: ttl, logger: logger}
}

func cacheKey(phoneNumber string) string {
	return "contactgate:dnc:" + phoneNumber
}

func (r *CachedRegistry) IsListed(ctx context.Context, phoneNumber string) (bool, error) {
	val, err := r.client.Get(ctx, cacheKey(phoneNumber)).Result()
	if err == nil {
		return val == "1", nil
	}
	if !errors.Is(err, redis.Nil) && r.logger != nil {
		r.logger.WarnContext(ctx, "dnc cache read failed", "error", err)
	}

	listed, err := r.inner.IsListed(ctx, phoneNumber)
	if err != nil {
		return false, err
	}

	cached := "0"
	if listed {
		cached = "1"
	}
	if err := r.client.Set(ctx, cacheKey(phoneNumber), cached, r.ttl).Err(); err != nil && r.logger != nil {
		r.logger.WarnContext(ctx, "dnc cache write failed", "error", err)
	}
	return listed, nil
}

// StaticRegistry answers from a fixed set. Used in tests and local
// development.
type StaticRegistry struct {
	listed map[string]bool
}

func NewStaticRegistry(numbers ...string) *StaticRegistry {
	m := make(map[string]bool, len(numbers))
	for _, n := range numbers {
		m[n] = true
	}
	return &StaticRegistry{listed: m}
}

func (r *StaticRegistry) IsListed(_ context.Context, phoneNumber string) (bool, error) {
	return r.listed[phoneNumber], nil
}
