package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockQueue is a mock implementation of Queue using testify/mock. Handlers
// passed to Worker are kept so tests can deliver tasks to them.
type MockQueue struct {
	mock.Mock

	mu       sync.Mutex
	handlers map[TaskType]Handler
}

func (m *MockQueue) Enqueue(ctx context.Context, task Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockQueue) Worker(ctx context.Context, taskType TaskType, handler Handler) error {
	m.mu.Lock()
	if m.handlers == nil {
		m.handlers = make(map[TaskType]Handler)
	}
	m.handlers[taskType] = handler
	m.mu.Unlock()

	args := m.Called(ctx, taskType, handler)
	return args.Error(0)
}

// Deliver runs the handler registered for task.Type.
func (m *MockQueue) Deliver(ctx context.Context, task Task) error {
	m.mu.Lock()
	h, ok := m.handlers[task.Type]
	m.mu.Unlock()
	if !ok {
		return errors.New("no worker registered for " + string(task.Type))
	}
	return h(ctx, task)
}
