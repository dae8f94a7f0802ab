package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"chunk-lab/internal/chunking"
)

// Cache holds chunking results and asynchronous job records.
type Cache interface {
	// GetResult returns the cached result for key, or nil on a miss.
	GetResult(ctx context.Context, key string) (*chunking.Result, error)

	// SetResult stores a result with TTL.
	SetResult(ctx context.Context, key string, result *chunking.Result, ttl time.Duration) error

	// GetJob returns the job record for id, or nil when it is unknown or expired.
	GetJob(ctx context.Context, id uuid.UUID) (*Job, error)

	// SetJob stores a job record with TTL.
	SetJob(ctx context.Context, job *Job, ttl time.Duration) error

	Close() error
}

type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobReady   JobStatus = "ready"
	JobFailed  JobStatus = "failed"
)

// Job tracks a chunking request processed by the worker.
type Job struct {
	ID        uuid.UUID        `json:"job_id"`
	Strategy  string           `json:"strategy"`
	Status    JobStatus        `json:"status"`
	Result    *chunking.Result `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ResultKey derives a stable key from the request. Params are hashed in
// their JSON form, which orders map keys; params that cannot be encoded
// have no key.
func ResultKey(strategy string, params chunking.Params, text string) (string, error) {
	p, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("encode params for cache key: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(strategy))
	h.Write([]byte{0})
	h.Write(p)
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil)), nil
}
