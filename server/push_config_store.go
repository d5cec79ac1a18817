package server

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/inference-gateway/adk/types"
)

// PushConfigStore persists push notification configurations associated with
// a task. A task may have more than one configuration registered against it;
// each configuration is identified by its (optional) ID.
type PushConfigStore interface {
	// Set registers or replaces a configuration for a task. If config.ID is
	// set and already registered for the task, the existing entry is
	// replaced in place; otherwise the configuration is appended.
	Set(ctx context.Context, taskID string, cfg types.PushNotificationConfig) error

	// Get returns every configuration registered for a task.
	Get(ctx context.Context, taskID string) ([]types.PushNotificationConfig, error)

	// Delete removes configurations for a task. When configID is nil every
	// configuration for the task is removed; when non-nil only the matching
	// configuration is removed.
	Delete(ctx context.Context, taskID string, configID *string) error
}

// InMemoryPushConfigStore is the default PushConfigStore backend.
type InMemoryPushConfigStore struct {
	mu      sync.RWMutex
	configs map[string][]types.PushNotificationConfig
	logger  *zap.Logger
}

// NewInMemoryPushConfigStore creates an empty in-memory push config store.
func NewInMemoryPushConfigStore(logger *zap.Logger) *InMemoryPushConfigStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryPushConfigStore{
		configs: make(map[string][]types.PushNotificationConfig),
		logger:  logger,
	}
}

var _ PushConfigStore = (*InMemoryPushConfigStore)(nil)

func (s *InMemoryPushConfigStore) Set(ctx context.Context, taskID string, cfg types.PushNotificationConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.configs[taskID]

	if cfg.ID != nil {
		for i, c := range existing {
			if c.ID != nil && *c.ID == *cfg.ID {
				existing[i] = cfg
				s.configs[taskID] = existing
				return nil
			}
		}
	}

	s.configs[taskID] = append(existing, cfg)

	s.logger.Debug("push notification config registered", zap.String("task_id", taskID))

	return nil
}

func (s *InMemoryPushConfigStore) Get(ctx context.Context, taskID string) ([]types.PushNotificationConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	existing := s.configs[taskID]
	out := make([]types.PushNotificationConfig, len(existing))
	copy(out, existing)

	return out, nil
}

func (s *InMemoryPushConfigStore) Delete(ctx context.Context, taskID string, configID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if configID == nil {
		delete(s.configs, taskID)
		return nil
	}

	existing := s.configs[taskID]
	filtered := existing[:0:0]
	for _, c := range existing {
		if c.ID == nil || *c.ID != *configID {
			filtered = append(filtered, c)
		}
	}

	if len(filtered) == 0 {
		delete(s.configs, taskID)
	} else {
		s.configs[taskID] = filtered
	}

	return nil
}
