package queue

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"chunk-lab/internal/chunking"
)

// ChunkPayload is the body of a TaskTypeChunk task.
type ChunkPayload struct {
	JobID    uuid.UUID       `json:"job_id"`
	Strategy string          `json:"strategy"`
	Text     string          `json:"text"`
	Params   chunking.Params `json:"params,omitempty"`
}

// NewChunkTask wraps p in a task that may run immediately.
func NewChunkTask(p ChunkPayload) (Task, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return Task{}, err
	}
	return Task{Type: TaskTypeChunk, Payload: body, NotBefore: time.Now()}, nil
}
