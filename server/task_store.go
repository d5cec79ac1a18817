package server

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/inference-gateway/adk/types"
)

// TaskStore is the persistence boundary for task snapshots. Implementations
// must be safe for concurrent use; the request handler and task manager call
// into it from multiple goroutines, one per in-flight task at most but
// potentially many tasks at once.
type TaskStore interface {
	// Save writes a task snapshot, replacing any existing snapshot with the
	// same ID.
	Save(ctx context.Context, task *types.Task) error

	// Get returns the task with the given ID, or nil if it does not exist.
	Get(ctx context.Context, taskID string) (*types.Task, error)

	// Delete removes the task with the given ID. Deleting a task that does
	// not exist is not an error.
	Delete(ctx context.Context, taskID string) error

	// List returns every stored task.
	List(ctx context.Context) ([]*types.Task, error)

	// ListByContext returns every stored task sharing the given context ID.
	ListByContext(ctx context.Context, contextID string) ([]*types.Task, error)
}

// InMemoryTaskStore is the default TaskStore backend: a mutex-guarded map,
// with snapshots copied in and out so callers can never mutate store state
// through a returned pointer.
type InMemoryTaskStore struct {
	mu     sync.RWMutex
	tasks  map[string]*types.Task
	logger *zap.Logger
}

// NewInMemoryTaskStore creates an empty in-memory task store.
func NewInMemoryTaskStore(logger *zap.Logger) *InMemoryTaskStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryTaskStore{
		tasks:  make(map[string]*types.Task),
		logger: logger,
	}
}

var _ TaskStore = (*InMemoryTaskStore)(nil)

func (s *InMemoryTaskStore) Save(ctx context.Context, task *types.Task) error {
	if task == nil {
		return wrapInternal("cannot save a nil task", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[task.ID] = copyTask(task)

	s.logger.Debug("task saved",
		zap.String("task_id", task.ID),
		zap.String("context_id", task.ContextID),
		zap.String("status", string(task.Status.State)),
	)

	return nil
}

func (s *InMemoryTaskStore) Get(ctx context.Context, taskID string) (*types.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[taskID]
	if !ok {
		return nil, nil
	}

	return copyTask(task), nil
}

func (s *InMemoryTaskStore) Delete(ctx context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tasks, taskID)

	s.logger.Debug("task deleted", zap.String("task_id", taskID))

	return nil
}

func (s *InMemoryTaskStore) List(ctx context.Context) ([]*types.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		out = append(out, copyTask(task))
	}

	return out, nil
}

func (s *InMemoryTaskStore) ListByContext(ctx context.Context, contextID string) ([]*types.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.Task, 0)
	for _, task := range s.tasks {
		if task.ContextID == contextID {
			out = append(out, copyTask(task))
		}
	}

	return out, nil
}

// copyTask returns a shallow copy of task with its Artifacts and History
// slices re-sliced so a caller mutating the returned task's slices cannot
// reach back into store state. Element values (Artifact, Message) are
// treated as immutable once constructed, matching the rest of the codebase.
func copyTask(task *types.Task) *types.Task {
	clone := *task

	if task.Artifacts != nil {
		clone.Artifacts = append([]types.Artifact(nil), task.Artifacts...)
	}
	if task.History != nil {
		clone.History = append([]types.Message(nil), task.History...)
	}

	return &clone
}
