package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inference-gateway/adk/server/otel"
	"github.com/inference-gateway/adk/types"
)

// RequestHandler exposes the full A2A protocol surface. It orchestrates the
// task manager, push config store and push sender; transport adapters (the
// JSON-RPC gin adapter, or a future gRPC adapter) translate wire envelopes
// into these calls and map results onto protocol-specific responses.
//
// Grounded on original_source/src/a2a/server/request_handlers/default_request_handler.rs
// and its RequestHandler trait (request_handler.rs), adapted from Rust's
// Option<Task>/async-trait shape to Go's (*types.Task, error) and channel
// streaming.
type RequestHandler interface {
	SendMessage(ctx context.Context, params types.MessageSendParams) (*types.Task, error)
	StreamMessage(ctx context.Context, params types.MessageSendParams) (<-chan types.StreamResponse, func(), error)
	GetTask(ctx context.Context, params types.TaskQueryParams) (*types.Task, error)
	CancelTask(ctx context.Context, params types.TaskIdParams) (*types.Task, error)
	ResubscribeTask(ctx context.Context, params types.TaskIdParams) (<-chan types.StreamResponse, func(), error)

	SetPushNotificationConfig(ctx context.Context, params types.TaskPushNotificationConfig) (*types.TaskPushNotificationConfig, error)
	GetPushNotificationConfig(ctx context.Context, params types.GetTaskPushNotificationConfigParams) (*types.TaskPushNotificationConfig, error)
	ListPushNotificationConfig(ctx context.Context, params types.ListTaskPushNotificationConfigParams) ([]types.TaskPushNotificationConfig, error)
	DeletePushNotificationConfig(ctx context.Context, params types.DeleteTaskPushNotificationConfigParams) error

	GetAuthenticatedExtendedCard(ctx context.Context) (*types.AgentCard, error)

	// UpdateStatus, UpdateArtifact and AppendMessage let whatever drives the
	// actual task execution (out of scope for this module, see spec §1)
	// push further lifecycle events through the same pipeline message/send
	// used: task-manager write-through, stream fan-out, and push dispatch.
	UpdateStatus(ctx context.Context, evt types.TaskStatusUpdateEvent) (*types.Task, error)
	UpdateArtifact(ctx context.Context, evt types.TaskArtifactUpdateEvent) (*types.Task, error)
	AppendMessage(ctx context.Context, taskID string, message types.Message) (*types.Task, error)

	// SetArtifactStorage wires an optional blob storage backend that
	// UpdateArtifact offloads inline FilePart.FileWithBytes content to,
	// replacing it with a FileWithURI pointing at the backend.
	SetArtifactStorage(storage ArtifactStorageProvider)
}

// DefaultRequestHandler is the reference RequestHandler implementation.
type DefaultRequestHandler struct {
	taskManager     TaskManager
	pushConfigStore PushConfigStore
	pushSender      PushSender
	card            *types.AgentCard
	telemetry       otel.OpenTelemetry
	logger          *zap.Logger

	mu              sync.Mutex
	broadcasts      map[string]*taskBroadcast
	artifactStorage ArtifactStorageProvider
}

// NewDefaultRequestHandler creates a RequestHandler. pushConfigStore,
// pushSender and telemetry may all be nil: with no push config store,
// tasks/pushNotificationConfig/* fails with UnsupportedOperation (grounded
// on the reference's identical behavior when its push_config_store is
// None); with no push sender, task mutations succeed but no webhook ever
// fires; with no telemetry, events simply aren't recorded.
func NewDefaultRequestHandler(taskManager TaskManager, pushConfigStore PushConfigStore, pushSender PushSender, card *types.AgentCard, telemetry otel.OpenTelemetry, logger *zap.Logger) *DefaultRequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultRequestHandler{
		taskManager:     taskManager,
		pushConfigStore: pushConfigStore,
		pushSender:      pushSender,
		card:            card,
		telemetry:       telemetry,
		logger:          logger,
		broadcasts:      make(map[string]*taskBroadcast),
	}
}

var _ RequestHandler = (*DefaultRequestHandler)(nil)

func (h *DefaultRequestHandler) SendMessage(ctx context.Context, params types.MessageSendParams) (*types.Task, error) {
	taskID, contextID := resolveIDs(params.Message)
	params.Message.TaskID = &taskID
	params.Message.ContextID = &contextID

	if err := h.storePushConfigIfProvided(ctx, taskID, params); err != nil {
		return nil, err
	}

	saved, err := h.createOrContinueTask(ctx, taskID, contextID, params.Message)
	if err != nil {
		return nil, err
	}

	h.publish(taskID, types.StreamResponse{Task: saved})
	h.dispatchPush(saved)

	return saved, nil
}

func (h *DefaultRequestHandler) StreamMessage(ctx context.Context, params types.MessageSendParams) (<-chan types.StreamResponse, func(), error) {
	taskID, contextID := resolveIDs(params.Message)
	params.Message.TaskID = &taskID
	params.Message.ContextID = &contextID

	if err := h.storePushConfigIfProvided(ctx, taskID, params); err != nil {
		return nil, nil, err
	}

	saved, err := h.createOrContinueTask(ctx, taskID, contextID, params.Message)
	if err != nil {
		return nil, nil, err
	}

	ch, unsubscribe := h.broadcastFor(taskID).subscribe()
	h.publish(taskID, types.StreamResponse{Task: saved})
	h.dispatchPush(saved)

	return ch, unsubscribe, nil
}

// createOrContinueTask creates a fresh Working task when taskID is unseen,
// or otherwise appends message and re-requests Working through the
// terminal-checked ApplyMessage/ApplyStatusUpdate path rather than a raw
// ApplySnapshot — a second message/send or message/stream against an
// already-terminal task id must not resurrect it (Data Model invariant
// (i)), and its existing history must not be discarded (invariant (ii)).
func (h *DefaultRequestHandler) createOrContinueTask(ctx context.Context, taskID, contextID string, message types.Message) (*types.Task, error) {
	existing, err := h.taskManager.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		task := &types.Task{
			ID:        taskID,
			ContextID: contextID,
			Kind:      "task",
			Status:    types.TaskStatus{State: types.TaskStateWorking},
			History:   []types.Message{message},
		}
		return h.taskManager.ApplySnapshot(ctx, task)
	}

	if _, err := h.taskManager.ApplyMessage(ctx, taskID, message); err != nil {
		return nil, err
	}

	return h.taskManager.ApplyStatusUpdate(ctx, types.TaskStatusUpdateEvent{
		TaskID:    taskID,
		ContextID: contextID,
		Status:    types.TaskStatus{State: types.TaskStateWorking},
	})
}

func (h *DefaultRequestHandler) ResubscribeTask(ctx context.Context, params types.TaskIdParams) (<-chan types.StreamResponse, func(), error) {
	task, err := h.taskManager.GetTask(ctx, params.ID)
	if err != nil {
		return nil, nil, err
	}
	if task == nil {
		return nil, nil, NewTaskNotFoundError(params.ID)
	}

	ch, unsubscribe := h.broadcastFor(params.ID).subscribe()
	return ch, unsubscribe, nil
}

func (h *DefaultRequestHandler) GetTask(ctx context.Context, params types.TaskQueryParams) (*types.Task, error) {
	task, err := h.taskManager.GetTask(ctx, params.ID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, nil
	}

	if params.HistoryLength != nil && *params.HistoryLength >= 0 && len(task.History) > *params.HistoryLength {
		task.History = task.History[len(task.History)-*params.HistoryLength:]
	}

	return task, nil
}

func (h *DefaultRequestHandler) CancelTask(ctx context.Context, params types.TaskIdParams) (*types.Task, error) {
	task, err := h.taskManager.CancelTask(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	h.publish(params.ID, types.StreamResponse{Task: task})
	h.dispatchPush(task)
	h.teardownBroadcastIfDone(params.ID, task)

	return task, nil
}

func (h *DefaultRequestHandler) SetPushNotificationConfig(ctx context.Context, params types.TaskPushNotificationConfig) (*types.TaskPushNotificationConfig, error) {
	if h.pushConfigStore == nil {
		return nil, NewUnsupportedOperationError("push notification config store not configured")
	}

	if err := h.pushConfigStore.Set(ctx, params.TaskID, params.PushNotificationConfig); err != nil {
		return nil, err
	}

	return &params, nil
}

func (h *DefaultRequestHandler) GetPushNotificationConfig(ctx context.Context, params types.GetTaskPushNotificationConfigParams) (*types.TaskPushNotificationConfig, error) {
	if h.pushConfigStore == nil {
		return nil, NewUnsupportedOperationError("push notification config store not configured")
	}

	configs, err := h.pushConfigStore.Get(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	if params.PushNotificationConfigID != nil {
		for _, cfg := range configs {
			if cfg.ID != nil && *cfg.ID == *params.PushNotificationConfigID {
				return &types.TaskPushNotificationConfig{TaskID: params.ID, PushNotificationConfig: cfg}, nil
			}
		}
		return nil, wrapInternal("push notification config not found", nil)
	}

	if len(configs) == 0 {
		return nil, wrapInternal("push notification config not found", nil)
	}

	return &types.TaskPushNotificationConfig{TaskID: params.ID, PushNotificationConfig: configs[0]}, nil
}

func (h *DefaultRequestHandler) ListPushNotificationConfig(ctx context.Context, params types.ListTaskPushNotificationConfigParams) ([]types.TaskPushNotificationConfig, error) {
	if h.pushConfigStore == nil {
		return nil, NewUnsupportedOperationError("push notification config store not configured")
	}

	configs, err := h.pushConfigStore.Get(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	out := make([]types.TaskPushNotificationConfig, len(configs))
	for i, cfg := range configs {
		out[i] = types.TaskPushNotificationConfig{TaskID: params.ID, PushNotificationConfig: cfg}
	}

	return out, nil
}

func (h *DefaultRequestHandler) DeletePushNotificationConfig(ctx context.Context, params types.DeleteTaskPushNotificationConfigParams) error {
	if h.pushConfigStore == nil {
		return NewUnsupportedOperationError("push notification config store not configured")
	}

	configID := params.PushNotificationConfigID
	return h.pushConfigStore.Delete(ctx, params.ID, &configID)
}

func (h *DefaultRequestHandler) GetAuthenticatedExtendedCard(ctx context.Context) (*types.AgentCard, error) {
	return h.card, nil
}

func (h *DefaultRequestHandler) UpdateStatus(ctx context.Context, evt types.TaskStatusUpdateEvent) (*types.Task, error) {
	fromState := types.TaskState("")
	if prior, _ := h.taskManager.GetTask(ctx, evt.TaskID); prior != nil {
		fromState = prior.Status.State
	}

	task, err := h.taskManager.ApplyStatusUpdate(ctx, evt)
	if err != nil {
		return nil, err
	}

	h.recordTransition(evt.TaskID, evt.ContextID, fromState, task.Status.State)
	h.publish(evt.TaskID, types.StreamResponse{StatusUpdate: &evt})
	h.dispatchPush(task)
	h.teardownBroadcastIfDone(evt.TaskID, task)

	return task, nil
}

// SetArtifactStorage wires an optional blob storage backend. Once set,
// UpdateArtifact moves inline FileWithBytes content out to the backend
// before the artifact is written through the task manager.
func (h *DefaultRequestHandler) SetArtifactStorage(storage ArtifactStorageProvider) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.artifactStorage = storage
}

func (h *DefaultRequestHandler) UpdateArtifact(ctx context.Context, evt types.TaskArtifactUpdateEvent) (*types.Task, error) {
	if err := h.offloadArtifactBytes(ctx, &evt); err != nil {
		return nil, wrapInternal("failed to offload artifact to storage backend", err)
	}

	task, err := h.taskManager.ApplyArtifactUpdate(ctx, evt)
	if err != nil {
		return nil, err
	}

	h.publish(evt.TaskID, types.StreamResponse{ArtifactUpdate: &evt})
	h.dispatchPush(task)

	return task, nil
}

// offloadArtifactBytes rewrites each FilePart carrying inline FileWithBytes
// content into a FileWithURI reference, storing the decoded bytes through
// the configured ArtifactStorageProvider. A no-op when no backend is set or
// a part has no inline bytes to move.
func (h *DefaultRequestHandler) offloadArtifactBytes(ctx context.Context, evt *types.TaskArtifactUpdateEvent) error {
	h.mu.Lock()
	storage := h.artifactStorage
	h.mu.Unlock()

	if storage == nil {
		return nil
	}

	for i := range evt.Artifact.Parts {
		part := &evt.Artifact.Parts[i]
		if part.File == nil || part.File.FileWithBytes == nil {
			continue
		}

		raw, err := base64.StdEncoding.DecodeString(*part.File.FileWithBytes)
		if err != nil {
			return fmt.Errorf("decode inline file part %q: %w", part.File.Name, err)
		}

		url, err := storage.Store(ctx, evt.Artifact.ArtifactID, part.File.Name, bytes.NewReader(raw))
		if err != nil {
			return fmt.Errorf("store file part %q: %w", part.File.Name, err)
		}

		part.File.FileWithBytes = nil
		part.File.FileWithURI = &url
	}

	return nil
}

func (h *DefaultRequestHandler) AppendMessage(ctx context.Context, taskID string, message types.Message) (*types.Task, error) {
	task, err := h.taskManager.ApplyMessage(ctx, taskID, message)
	if err != nil {
		return nil, err
	}

	h.publish(taskID, types.StreamResponse{Message: &message})
	h.dispatchPush(task)

	return task, nil
}

func (h *DefaultRequestHandler) storePushConfigIfProvided(ctx context.Context, taskID string, params types.MessageSendParams) error {
	if h.pushConfigStore == nil || params.Configuration == nil || params.Configuration.PushNotificationConfig == nil {
		return nil
	}

	return h.pushConfigStore.Set(ctx, taskID, *params.Configuration.PushNotificationConfig)
}

// dispatchPush fires the push sender asynchronously so a slow or unreachable
// webhook never delays the caller's response. It runs against a detached
// context so caller cancellation does not abort an in-flight dispatch (see
// spec §5 cancellation semantics).
func (h *DefaultRequestHandler) dispatchPush(task *types.Task) {
	if h.pushSender == nil || task == nil {
		return
	}

	go func(task *types.Task) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := h.pushSender.SendNotification(ctx, task)
		if h.telemetry != nil {
			h.telemetry.RecordPushDispatch(ctx, otel.TelemetryAttributes{TaskID: task.ID, ContextID: task.ContextID}, err == nil)
		}
		if err != nil {
			h.logger.Warn("push dispatch failed", zap.String("task_id", task.ID), zap.Error(err))
		}
	}(task)
}

func (h *DefaultRequestHandler) recordTransition(taskID, contextID string, from, to types.TaskState) {
	if h.telemetry == nil {
		return
	}
	attrs := otel.TelemetryAttributes{TaskID: taskID, ContextID: contextID}
	h.telemetry.RecordTaskStateTransition(context.Background(), attrs, string(from), string(to))
	if isTerminalState(to) {
		h.telemetry.RecordTaskCompleted(context.Background(), attrs, to == types.TaskStateCompleted)
	}
}

func (h *DefaultRequestHandler) broadcastFor(taskID string) *taskBroadcast {
	h.mu.Lock()
	defer h.mu.Unlock()

	b, ok := h.broadcasts[taskID]
	if !ok {
		b = newTaskBroadcast()
		h.broadcasts[taskID] = b
	}
	return b
}

func (h *DefaultRequestHandler) publish(taskID string, evt types.StreamResponse) {
	h.mu.Lock()
	b, ok := h.broadcasts[taskID]
	h.mu.Unlock()

	if ok {
		b.publish(evt)
	}
}

// teardownBroadcastIfDone removes a task's broadcast once it has reached a
// terminal state and no subscriber remains attached, per the resolved
// resubscribe-lifecycle open question (SPEC_FULL §4.5).
func (h *DefaultRequestHandler) teardownBroadcastIfDone(taskID string, task *types.Task) {
	if task == nil || !isTerminalState(task.Status.State) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if b, ok := h.broadcasts[taskID]; ok && b.subscriberCount() == 0 {
		delete(h.broadcasts, taskID)
	}
}

func resolveIDs(message types.Message) (taskID, contextID string) {
	if message.TaskID != nil && *message.TaskID != "" {
		taskID = *message.TaskID
	} else {
		taskID = uuid.New().String()
	}

	if message.ContextID != nil && *message.ContextID != "" {
		contextID = *message.ContextID
	} else {
		contextID = uuid.New().String()
	}

	return taskID, contextID
}
