package cache

import (
	"context"
	"time"

	"github.com/google/uuid"

	"chunk-lab/internal/chunking"
)

// NoOpCache is used when no cache is configured. Every lookup misses and
// every write succeeds without storing anything.
type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) GetResult(ctx context.Context, key string) (*chunking.Result, error) {
	return nil, nil
}

func (c *NoOpCache) SetResult(ctx context.Context, key string, result *chunking.Result, ttl time.Duration) error {
	return nil
}

func (c *NoOpCache) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	return nil, nil
}

func (c *NoOpCache) SetJob(ctx context.Context, job *Job, ttl time.Duration) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}
