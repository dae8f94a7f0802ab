package queue

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

// TaskType enumerates supported task categories.
type TaskType string

const (
	TaskTypeChunk TaskType = "chunk"
)

// Task represents a unit of work handed to the worker.
type Task struct {
	ID          uuid.UUID
	Type        TaskType
	Payload     []byte
	Attempts    int
	MaxAttempts int
	NotBefore   time.Time
}

type Handler func(context.Context, Task) error

// Queue exposes a minimal contract to enqueue and consume tasks.
type Queue interface {
	Enqueue(ctx context.Context, task Task) error
	Worker(ctx context.Context, taskType TaskType, handler Handler) error
}

// EnqueueWithRetry attempts to enqueue up to attempts times with
// exponential backoff starting at base.
func EnqueueWithRetry(ctx context.Context, q Queue, task Task, attempts int, base time.Duration) error {
	if attempts <= 0 {
		attempts = 1
	}
	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewExponential(base))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := q.Enqueue(ctx, task); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

// redeliveryDelay is the wait before the given attempt of a failed task,
// doubling from one second and capped at a minute.
func redeliveryDelay(attempt int) time.Duration {
	b := retry.WithCappedDuration(time.Minute, retry.NewExponential(time.Second))
	var d time.Duration
	for i := 0; i < attempt; i++ {
		d, _ = b.Next()
	}
	return d
}
