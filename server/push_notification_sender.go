package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"go.uber.org/zap"

	"github.com/inference-gateway/adk/types"
)

// notificationTokenHeader carries the per-config bearer token a receiver
// registered when it created the push notification config, so it can
// authenticate the webhook call without a shared secret.
const notificationTokenHeader = "X-A2A-Notification-Token"

// PushSender dispatches a task snapshot to every push notification
// configuration registered for that task.
type PushSender interface {
	SendNotification(ctx context.Context, task *types.Task) error
}

// HTTPPushSender is the default PushSender: it fans a task snapshot out to
// every registered webhook concurrently, never failing the caller because
// one webhook was unreachable.
type HTTPPushSender struct {
	httpClient     *http.Client
	configStore    PushConfigStore
	userAgent      string
	useCloudEvents bool
	logger         *zap.Logger
}

// NewHTTPPushSender creates a push sender that reads its recipient list from
// configStore. When useCloudEvents is true, the task snapshot is wrapped in
// a CloudEvents envelope (type "com.a2a.task.snapshot") instead of being
// posted as bare JSON.
func NewHTTPPushSender(configStore PushConfigStore, timeout time.Duration, userAgent string, useCloudEvents bool, logger *zap.Logger) *HTTPPushSender {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if userAgent == "" {
		userAgent = "a2a-adk/1.0"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &HTTPPushSender{
		httpClient:     &http.Client{Timeout: timeout},
		configStore:    configStore,
		userAgent:      userAgent,
		useCloudEvents: useCloudEvents,
		logger:         logger,
	}
}

var _ PushSender = (*HTTPPushSender)(nil)

// SendNotification dispatches task to every config registered for task.ID.
// Individual webhook failures are logged and do not affect delivery to
// other recipients; the aggregate call only fails if the config store itself
// could not be read.
func (s *HTTPPushSender) SendNotification(ctx context.Context, task *types.Task) error {
	configs, err := s.configStore.Get(ctx, task.ID)
	if err != nil {
		return wrapInternal("failed to load push notification configs", err)
	}
	if len(configs) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	var failures int
	var mu sync.Mutex

	for _, cfg := range configs {
		wg.Add(1)
		go func(cfg types.PushNotificationConfig) {
			defer wg.Done()

			body, err := s.buildBody(task, cfg)
			if err != nil {
				s.logger.Error("failed to build push notification payload",
					zap.String("task_id", task.ID), zap.String("url", cfg.URL), zap.Error(err))
				mu.Lock()
				failures++
				mu.Unlock()
				return
			}

			if !s.dispatch(ctx, task, cfg, body) {
				mu.Lock()
				failures++
				mu.Unlock()
			}
		}(cfg)
	}

	wg.Wait()

	if failures > 0 {
		s.logger.Warn("some push notifications failed to send",
			zap.String("task_id", task.ID),
			zap.Int("failed", failures),
			zap.Int("total", len(configs)))
	}

	return nil
}

// buildBody wraps task in a CloudEvents envelope when either the sender was
// constructed with useCloudEvents, or cfg's own authentication descriptor
// names "cloudevents" as a scheme — a per-config opt-in that is additive to
// the server-wide default and does not change the bare-JSON path otherwise.
func (s *HTTPPushSender) buildBody(task *types.Task, cfg types.PushNotificationConfig) ([]byte, error) {
	if !s.useCloudEvents && !configRequestsCloudEvents(cfg) {
		return json.Marshal(task)
	}

	event := cloudevents.NewEvent()
	event.SetID(task.ID + "-" + string(task.Status.State))
	event.SetType("com.a2a.task.snapshot")
	event.SetSource("a2a-adk")
	if err := event.SetData(cloudevents.ApplicationJSON, task); err != nil {
		return nil, fmt.Errorf("set cloudevent data: %w", err)
	}

	return json.Marshal(event)
}

// configRequestsCloudEvents reports whether cfg's authentication descriptor
// names "cloudevents" as one of its schemes.
func configRequestsCloudEvents(cfg types.PushNotificationConfig) bool {
	if cfg.Authentication == nil {
		return false
	}
	for _, scheme := range cfg.Authentication.Schemes {
		if strings.EqualFold(scheme, "cloudevents") {
			return true
		}
	}
	return false
}

func (s *HTTPPushSender) dispatch(ctx context.Context, task *types.Task, cfg types.PushNotificationConfig, body []byte) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.URL, bytes.NewReader(body))
	if err != nil {
		s.logger.Error("failed to build push notification request",
			zap.String("task_id", task.ID), zap.String("url", cfg.URL), zap.Error(err))
		return false
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	if cfg.Token != nil && *cfg.Token != "" {
		req.Header.Set(notificationTokenHeader, *cfg.Token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("error sending push notification",
			zap.String("task_id", task.ID), zap.String("url", cfg.URL), zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warn("push notification webhook returned a non-2xx status",
			zap.String("task_id", task.ID), zap.String("url", cfg.URL), zap.Int("status_code", resp.StatusCode))
		return false
	}

	s.logger.Info("push notification sent",
		zap.String("task_id", task.ID), zap.String("url", cfg.URL))

	return true
}
