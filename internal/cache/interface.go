package cache

import (
	"context"
	"time"
)

// Service defines cache operations used by the application
type Service interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	// MarkOnce records key atomically and reports whether this call was the
	// first within the ttl window. Used for view-count deduplication.
	MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}
