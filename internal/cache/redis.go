package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"chunk-lab/internal/chunking"
)

const (
	resultKeyPrefix = "chunks:"
	jobKeyPrefix    = "job:"
)

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to addr and verifies the connection with PING.
func NewRedisCache(addr, password string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) GetResult(ctx context.Context, key string) (*chunking.Result, error) {
	var result chunking.Result
	found, err := c.getJSON(ctx, resultKeyPrefix+key, &result)
	if err != nil || !found {
		return nil, err
	}
	return &result, nil
}

func (c *RedisCache) SetResult(ctx context.Context, key string, result *chunking.Result, ttl time.Duration) error {
	return c.setJSON(ctx, resultKeyPrefix+key, result, ttl)
}

func (c *RedisCache) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	var job Job
	found, err := c.getJSON(ctx, jobKeyPrefix+id.String(), &job)
	if err != nil || !found {
		return nil, err
	}
	return &job, nil
}

func (c *RedisCache) SetJob(ctx context.Context, job *Job, ttl time.Duration) error {
	if job.ID == uuid.Nil {
		return errors.New("job id required")
	}
	return c.setJSON(ctx, jobKeyPrefix+job.ID.String(), job, ttl)
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}
