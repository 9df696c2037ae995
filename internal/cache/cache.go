package cache

import (
	"context"
	"log/slog"
	"time"
)

type Cache interface {
	// Get decodes the cached value into dest and reports whether the key existed.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const (
	ProductKeyPrefix = "product"
	CategoryListKey  = "categories:all"
)

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

// Fetch is a read-through lookup. Cache failures are logged and fall back to load.
func Fetch[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	var cached T

	found, err := c.Get(ctx, key, &cached)
	if err != nil {
		slog.WarnContext(ctx, "Cache read failed, loading from source", slog.String("key", key), slog.Any("error", err))
	} else if found {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		slog.WarnContext(ctx, "Cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return value, nil
}
