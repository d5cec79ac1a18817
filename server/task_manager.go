package server

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/inference-gateway/adk/types"
)

// isTerminalState reports whether a task in the given state can no longer
// receive further status transitions.
func isTerminalState(state types.TaskState) bool {
	switch state {
	case types.TaskStateCompleted, types.TaskStateFailed, types.TaskStateCancelled, types.TaskStateRejected:
		return true
	default:
		return false
	}
}

// TaskManager serializes events into a coherent Task aggregate and writes
// each resulting snapshot through to the task store before returning it.
// Implementations are not required to be re-entrant per task id; the
// default implementation provides that serialization itself.
type TaskManager interface {
	// ApplySnapshot replaces (or creates) the task wholesale, then writes it
	// through to the store.
	ApplySnapshot(ctx context.Context, task *types.Task) (*types.Task, error)

	// ApplyStatusUpdate applies a status transition to an existing task. If
	// the task is already in a terminal state, this is a no-op that returns
	// the unchanged snapshot.
	ApplyStatusUpdate(ctx context.Context, evt types.TaskStatusUpdateEvent) (*types.Task, error)

	// ApplyArtifactUpdate inserts, replaces, or appends to an artifact on an
	// existing task.
	ApplyArtifactUpdate(ctx context.Context, evt types.TaskArtifactUpdateEvent) (*types.Task, error)

	// ApplyMessage appends a bare message to a task's history without
	// changing its status.
	ApplyMessage(ctx context.Context, taskID string, message types.Message) (*types.Task, error)

	// GetTask returns the current snapshot for a task, or nil if unknown.
	GetTask(ctx context.Context, taskID string) (*types.Task, error)

	// ListTasks returns every known task.
	ListTasks(ctx context.Context) ([]*types.Task, error)

	// ListTasksByContext returns every task sharing a context id.
	ListTasksByContext(ctx context.Context, contextID string) ([]*types.Task, error)

	// CancelTask transitions a task to the canceled state, unless it is
	// already terminal, and returns the resulting snapshot.
	CancelTask(ctx context.Context, taskID string) (*types.Task, error)
}

// DefaultTaskManager is the reference TaskManager implementation: a thin,
// per-task-id-serialized layer over a TaskStore.
type DefaultTaskManager struct {
	store  TaskStore
	locks  keyedMutex
	logger *zap.Logger
}

// NewDefaultTaskManager creates a TaskManager backed by store.
func NewDefaultTaskManager(store TaskStore, logger *zap.Logger) *DefaultTaskManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultTaskManager{
		store:  store,
		locks:  newKeyedMutex(),
		logger: logger,
	}
}

var _ TaskManager = (*DefaultTaskManager)(nil)

func (m *DefaultTaskManager) ApplySnapshot(ctx context.Context, task *types.Task) (*types.Task, error) {
	unlock := m.locks.Lock(task.ID)
	defer unlock()

	if err := m.store.Save(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (m *DefaultTaskManager) ApplyStatusUpdate(ctx context.Context, evt types.TaskStatusUpdateEvent) (*types.Task, error) {
	taskID := evt.TaskID

	unlock := m.locks.Lock(taskID)
	defer unlock()

	task, err := m.store.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, NewTaskNotFoundError(taskID)
	}

	if isTerminalState(task.Status.State) {
		m.logger.Debug("ignoring status update for a terminal task",
			zap.String("task_id", taskID),
			zap.String("current_state", string(task.Status.State)),
			zap.String("incoming_state", string(evt.Status.State)))
		return task, nil
	}

	task.Status = evt.Status
	if evt.Status.Message != nil {
		task.History = append(task.History, *evt.Status.Message)
	}

	if err := m.store.Save(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (m *DefaultTaskManager) ApplyArtifactUpdate(ctx context.Context, evt types.TaskArtifactUpdateEvent) (*types.Task, error) {
	taskID := evt.TaskID

	unlock := m.locks.Lock(taskID)
	defer unlock()

	task, err := m.store.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, NewTaskNotFoundError(taskID)
	}

	append_ := evt.Append != nil && *evt.Append

	idx := -1
	for i, a := range task.Artifacts {
		if a.ArtifactID == evt.Artifact.ArtifactID {
			idx = i
			break
		}
	}

	switch {
	case idx < 0 || !append_:
		if idx >= 0 {
			task.Artifacts[idx] = evt.Artifact
		} else {
			task.Artifacts = append(task.Artifacts, evt.Artifact)
		}
	default:
		existing := task.Artifacts[idx]
		existing.Parts = append(existing.Parts, evt.Artifact.Parts...)
		if evt.LastChunk != nil {
			existing.LastChunk = evt.LastChunk
		}
		task.Artifacts[idx] = existing
	}

	if err := m.store.Save(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (m *DefaultTaskManager) ApplyMessage(ctx context.Context, taskID string, message types.Message) (*types.Task, error) {
	unlock := m.locks.Lock(taskID)
	defer unlock()

	task, err := m.store.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, NewTaskNotFoundError(taskID)
	}

	task.History = append(task.History, message)

	if err := m.store.Save(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (m *DefaultTaskManager) GetTask(ctx context.Context, taskID string) (*types.Task, error) {
	return m.store.Get(ctx, taskID)
}

func (m *DefaultTaskManager) ListTasks(ctx context.Context) ([]*types.Task, error) {
	return m.store.List(ctx)
}

func (m *DefaultTaskManager) ListTasksByContext(ctx context.Context, contextID string) ([]*types.Task, error) {
	return m.store.ListByContext(ctx, contextID)
}

func (m *DefaultTaskManager) CancelTask(ctx context.Context, taskID string) (*types.Task, error) {
	unlock := m.locks.Lock(taskID)
	defer unlock()

	task, err := m.store.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, NewTaskNotFoundError(taskID)
	}

	if isTerminalState(task.Status.State) {
		return nil, NewTaskNotCancelableError(taskID)
	}

	task.Status = types.TaskStatus{State: types.TaskStateCancelled}

	if err := m.store.Save(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// keyedMutex hands out a per-key lock, lazily created, so callers can
// serialize operations on one task id without blocking operations on any
// other task id.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() keyedMutex {
	return keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the lock for key and returns a function that releases it.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
