package server

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	gin "github.com/gin-gonic/gin"
	uuid "github.com/google/uuid"
	config "github.com/inference-gateway/adk/server/config"
	middlewares "github.com/inference-gateway/adk/server/middlewares"
	otel "github.com/inference-gateway/adk/server/otel"
	types "github.com/inference-gateway/adk/types"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
	envconfig "github.com/sethvargo/go-envconfig"
	zap "go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// JRPCErrorCode represents JSON-RPC error codes
type JRPCErrorCode int

const (
	ErrParseError     JRPCErrorCode = -32700
	ErrInvalidRequest JRPCErrorCode = -32600
	ErrMethodNotFound JRPCErrorCode = -32601
	ErrInvalidParams  JRPCErrorCode = -32602
	ErrInternalError  JRPCErrorCode = -32603
	ErrServerError    JRPCErrorCode = -32000
)

// A2AServer wires the JSON-RPC/HTTP transport binding (§4.8) around a
// RequestHandler: it parses envelopes, applies the capability gate, and maps
// results back onto JSON-RPC responses or an SSE stream.
type A2AServer interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error

	// GetAgentCard returns the agent's capabilities and metadata. Returns nil
	// if no agent card has been explicitly set.
	GetAgentCard() *types.AgentCard

	// SetAgentCard sets a custom agent card, overriding default card
	// generation, and rebuilds the request handler / capability gate around
	// it.
	SetAgentCard(agentCard types.AgentCard)

	// LoadAgentCardFromFile loads and sets an agent card from a JSON file.
	// The optional overrides map allows dynamic replacement of JSON
	// attribute values.
	LoadAgentCardFromFile(filePath string, overrides map[string]interface{}) error

	// RequestHandler returns the server's RequestHandler, so an external
	// task executor (out of scope for this module, see spec §1) can drive
	// task lifecycle events through the same push/stream pipeline the
	// transport methods use.
	RequestHandler() RequestHandler

	// SetArtifactStorage wires an optional blob storage backend for large
	// FilePart.FileWithURI artifacts.
	SetArtifactStorage(storage ArtifactStorageProvider)
}

// A2AServerImpl is the reference A2AServer implementation: a gin.Engine
// exposing POST {RPCPath} (JSON-RPC 2.0, default /a2a), GET
// /.well-known/agent.json, and GET /health.
type A2AServerImpl struct {
	cfg    *config.Config
	logger *zap.Logger
	otel   otel.OpenTelemetry

	taskStore       TaskStore
	pushConfigStore PushConfigStore
	pushSender      PushSender
	requestHandler  RequestHandler
	gate            *CapabilityGate
	artifactStorage ArtifactStorageProvider

	customAgentCard *types.AgentCard

	httpServer    *http.Server
	metricsServer *http.Server
}

var _ A2AServer = (*A2AServerImpl)(nil)

// NewA2AServer builds the default subsystem wiring (task store, push config
// store, push sender) from cfg and returns a server ready to have its agent
// card set.
func NewA2AServer(ctx context.Context, cfg *config.Config, logger *zap.Logger, telemetry otel.OpenTelemetry) (*A2AServerImpl, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	taskStore, err := NewTaskStore(ctx, cfg.StorageConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task store: %w", err)
	}

	pushConfigStore, err := newPushConfigStore(cfg.StorageConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create push config store: %w", err)
	}

	pushSender := NewHTTPPushSender(pushConfigStore, cfg.PushConfig.DispatchTimeout, cfg.PushConfig.UserAgent, cfg.PushConfig.UseCloudEvents, logger)

	server := &A2AServerImpl{
		cfg:             cfg,
		logger:          logger,
		otel:            telemetry,
		taskStore:       taskStore,
		pushConfigStore: pushConfigStore,
		pushSender:      pushSender,
	}

	taskManager := NewDefaultTaskManager(taskStore, logger)
	server.requestHandler = NewDefaultRequestHandler(taskManager, pushConfigStore, pushSender, nil, telemetry, logger)
	server.gate = NewCapabilityGate(nil)

	return server, nil
}

// newPushConfigStore mirrors NewTaskStore's provider-switch but push config
// storage has no redis backend in this module (the reference's
// sql_push_notification_config_store.rs has no redis counterpart either),
// so "redis" falls back to the in-memory store with a warning.
func newPushConfigStore(cfg config.StorageConfig, logger *zap.Logger) (PushConfigStore, error) {
	switch cfg.Provider {
	case "sql":
		db, err := sql.Open(cfg.SQLDriverName, cfg.SQLDataSource)
		if err != nil {
			return nil, fmt.Errorf("open sql connection: %w", err)
		}

		var encryptionKey []byte
		if cfg.EncryptionKeyB64 != "" {
			key, err := base64.StdEncoding.DecodeString(cfg.EncryptionKeyB64)
			if err != nil {
				return nil, fmt.Errorf("invalid encryption key: %w", err)
			}
			encryptionKey = key
		}

		return NewSQLPushConfigStore(db, cfg.SQLPushTable, encryptionKey, logger)
	default:
		return NewInMemoryPushConfigStore(logger), nil
	}
}

// NewDefaultA2AServer loads configuration from the environment and builds a
// server with production logging and telemetry wiring.
func NewDefaultA2AServer(ctx context.Context, cfg *config.Config) (*A2AServerImpl, error) {
	finalCfg, err := config.LoadWithLookuper(ctx, cfg, envconfig.OsLookuper())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	var logger *zap.Logger
	if finalCfg.Debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	var telemetryInstance otel.OpenTelemetry
	if finalCfg.TelemetryConfig.Enable {
		telemetryInstance, err = otel.NewOpenTelemetry(finalCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		metricsAddr := finalCfg.TelemetryConfig.MetricsConfig.Host + ":" + finalCfg.TelemetryConfig.MetricsConfig.Port
		logger.Info("telemetry enabled - metrics will be available", zap.String("metrics_url", metricsAddr+"/metrics"))
	}

	return NewA2AServer(ctx, finalCfg, logger, telemetryInstance)
}

// RequestHandler returns the server's RequestHandler.
func (s *A2AServerImpl) RequestHandler() RequestHandler {
	return s.requestHandler
}

// SetArtifactStorage wires an optional blob storage backend that the
// request handler uses to move inline artifact bytes (FilePart.FileWithBytes)
// out to the backend, replacing them with a FileWithURI reference.
func (s *A2AServerImpl) SetArtifactStorage(storage ArtifactStorageProvider) {
	s.artifactStorage = storage
	s.requestHandler.SetArtifactStorage(storage)
}

// SetAgentCard sets a custom agent card that overrides default card
// generation. The card's advertised capabilities are overwritten from
// cfg.CapabilitiesConfig, the single source of truth the capability gate,
// the extended-card endpoint and the unauthenticated card endpoint all read
// from (config.go).
func (s *A2AServerImpl) SetAgentCard(agentCard types.AgentCard) {
	s.applyCapabilitiesConfig(&agentCard)
	s.customAgentCard = &agentCard
	s.rebuildRequestHandler()
}

func (s *A2AServerImpl) applyCapabilitiesConfig(card *types.AgentCard) {
	card.Capabilities.Streaming = BoolPtr(s.cfg.CapabilitiesConfig.Streaming)
	card.Capabilities.PushNotifications = BoolPtr(s.cfg.CapabilitiesConfig.PushNotifications)
	card.Capabilities.StateTransitionHistory = BoolPtr(s.cfg.CapabilitiesConfig.StateTransitionHistory)
}

func (s *A2AServerImpl) rebuildRequestHandler() {
	taskManager := NewDefaultTaskManager(s.taskStore, s.logger)
	s.requestHandler = NewDefaultRequestHandler(taskManager, s.pushConfigStore, s.pushSender, s.customAgentCard, s.otel, s.logger)
	s.requestHandler.SetArtifactStorage(s.artifactStorage)
	s.gate = NewCapabilityGate(s.customAgentCard)
}

// LoadAgentCardFromFile loads and sets an agent card from a JSON file.
// The optional overrides map allows dynamic replacement of JSON attribute values.
func (s *A2AServerImpl) LoadAgentCardFromFile(filePath string, overrides map[string]interface{}) error {
	if filePath == "" {
		return nil
	}

	s.logger.Info("loading agent card from file", zap.String("file_path", filePath))

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read agent card file: %w", err)
	}

	var rawData map[string]interface{}
	if err := json.Unmarshal(data, &rawData); err != nil {
		return fmt.Errorf("failed to parse agent card JSON: %w", err)
	}

	for key, value := range overrides {
		s.logger.Debug("overriding agent card attribute", zap.String("key", key), zap.Any("value", value))
		rawData[key] = value
	}

	modifiedData, err := json.Marshal(rawData)
	if err != nil {
		return fmt.Errorf("failed to marshal modified agent card data: %w", err)
	}

	var agentCard types.AgentCard
	if err := json.Unmarshal(modifiedData, &agentCard); err != nil {
		return fmt.Errorf("failed to parse modified agent card JSON: %w", err)
	}

	s.logger.Info("successfully loaded agent card from file",
		zap.String("name", agentCard.Name),
		zap.String("version", agentCard.Version),
		zap.Int("overrides_count", len(overrides)))

	s.SetAgentCard(agentCard)
	return nil
}

// GetAgentCard returns the agent's capabilities and metadata.
// Returns nil if no agent card has been explicitly set.
func (s *A2AServerImpl) GetAgentCard() *types.AgentCard {
	return s.customAgentCard
}

// setupRouter configures the HTTP router with A2A endpoints.
func (s *A2AServerImpl) setupRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middlewares.LoggingMiddleware(cfg.ServerConfig.DisableHealthcheckLog))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": types.HealthStatusHealthy})
	})

	r.GET("/.well-known/agent.json", s.handleAgentInfo)
	r.GET("/agent/authenticatedExtendedCard", s.handleAuthenticatedExtendedCard)

	var handlers []gin.HandlerFunc

	if s.cfg.TelemetryConfig.Enable && s.otel != nil {
		telemetryMw, err := middlewares.NewTelemetryMiddleware(*s.cfg, s.otel, s.logger)
		if err != nil {
			s.logger.Error("failed to create telemetry middleware", zap.Error(err))
		} else {
			handlers = append(handlers, telemetryMw.Middleware())
		}
	}

	if cfg.AuthConfig.Enable {
		oidcAuthenticator, err := middlewares.NewOIDCAuthenticatorMiddleware(s.logger, *s.cfg)
		if err != nil {
			s.logger.Error("failed to create OIDC authenticator", zap.Error(err))
		} else {
			handlers = append(handlers, oidcAuthenticator.Middleware())
		}
	} else {
		s.logger.Warn("authentication is disabled")
	}

	rpcPath := cfg.ServerConfig.RPCPath
	if rpcPath == "" {
		rpcPath = "/a2a"
	}

	routeHandlers := append(append([]gin.HandlerFunc{}, handlers...), s.handleA2ARequest)
	r.POST(rpcPath, routeHandlers...)

	return r
}

// Start starts the A2A server.
func (s *A2AServerImpl) Start(ctx context.Context) error {
	if s.customAgentCard == nil {
		return fmt.Errorf("agent card must be configured before starting the server - use SetAgentCard() or LoadAgentCardFromFile()")
	}

	router := s.setupRouter(s.cfg)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", s.cfg.ServerConfig.Port),
		Handler:      router,
		ReadTimeout:  s.cfg.ServerConfig.ReadTimeout,
		WriteTimeout: s.cfg.ServerConfig.WriteTimeout,
		IdleTimeout:  s.cfg.ServerConfig.IdleTimeout,
	}

	s.logger.Info("starting A2A server", zap.String("port", s.cfg.ServerConfig.Port))

	if s.cfg.TelemetryConfig.Enable && s.otel != nil {
		go func() {
			metricsRouter := gin.Default()
			metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

			metricsAddr := s.cfg.TelemetryConfig.MetricsConfig.Host + ":" + s.cfg.TelemetryConfig.MetricsConfig.Port
			s.metricsServer = &http.Server{
				Addr:         metricsAddr,
				Handler:      metricsRouter,
				ReadTimeout:  s.cfg.TelemetryConfig.MetricsConfig.ReadTimeout,
				WriteTimeout: s.cfg.TelemetryConfig.MetricsConfig.WriteTimeout,
				IdleTimeout:  s.cfg.TelemetryConfig.MetricsConfig.IdleTimeout,
			}

			s.logger.Info("starting metrics server", zap.String("port", s.cfg.TelemetryConfig.MetricsConfig.Port))
			if err := s.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				s.logger.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	if s.cfg.ServerConfig.TLSConfig.Enable {
		return s.httpServer.ListenAndServeTLS(s.cfg.ServerConfig.TLSConfig.CertPath, s.cfg.ServerConfig.TLSConfig.KeyPath)
	}

	return s.httpServer.ListenAndServe()
}

// Stop gracefully stops the A2A server.
func (s *A2AServerImpl) Stop(ctx context.Context) error {
	s.logger.Info("stopping A2A server")

	var err error

	if s.httpServer != nil {
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			s.logger.Error("error stopping HTTP server", zap.Error(shutdownErr))
			err = shutdownErr
		}
	}

	if s.metricsServer != nil {
		if shutdownErr := s.metricsServer.Shutdown(ctx); shutdownErr != nil {
			s.logger.Error("error stopping metrics server", zap.Error(shutdownErr))
			if err == nil {
				err = shutdownErr
			}
		}
	}

	if s.otel != nil {
		if shutdownErr := s.otel.ShutDown(ctx); shutdownErr != nil {
			s.logger.Error("error shutting down telemetry", zap.Error(shutdownErr))
			if err == nil {
				err = shutdownErr
			}
		}
	}

	defer func() {
		if syncErr := s.logger.Sync(); syncErr != nil {
			s.logger.Error("failed to sync logger on shutdown", zap.Error(syncErr))
		}
	}()

	return err
}

// handleAgentInfo returns the unauthenticated agent card.
func (s *A2AServerImpl) handleAgentInfo(c *gin.Context) {
	agentCard := s.GetAgentCard()
	if agentCard == nil {
		s.logger.Error("no agent card configured")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "agent card not configured",
			"message": "this server requires an agent card to be set via SetAgentCard() or LoadAgentCardFromFile()",
		})
		return
	}
	c.JSON(http.StatusOK, *agentCard)
}

// handleAuthenticatedExtendedCard mirrors agent/authenticatedExtendedCard's
// JSON-RPC behavior as a plain HTTP endpoint (§6), gated identically.
func (s *A2AServerImpl) handleAuthenticatedExtendedCard(c *gin.Context) {
	if err := s.gate.RequireAuthenticatedExtendedCard(); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	card, err := s.requestHandler.GetAuthenticatedExtendedCard(c.Request.Context())
	if err != nil || card == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "agent card not configured"})
		return
	}

	c.JSON(http.StatusOK, *card)
}

// handleA2ARequest parses the JSON-RPC envelope, resolves a method, invokes
// the capability gate, then calls into the RequestHandler (§4.8).
func (s *A2AServerImpl) handleA2ARequest(c *gin.Context) {
	var req types.JSONRPCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Error("failed to parse json request", zap.Error(err))
		s.sendError(c, req.ID, ErrParseError, "parse error")
		return
	}

	if req.JSONRPC == "" {
		req.JSONRPC = "2.0"
	}
	if req.ID == nil {
		id := interface{}(uuid.New().String())
		req.ID = &id
	}

	s.logger.Debug("received a2a request", zap.String("method", req.Method), zap.Any("id", req.ID))

	switch req.Method {
	case "message/send":
		s.handleMessageSend(c, req)
	case "message/stream":
		s.handleStream(c, req, s.streamFromMessage)
	case "tasks/get":
		s.handleTaskGet(c, req)
	case "tasks/cancel":
		s.handleTaskCancel(c, req)
	case "tasks/resubscribe":
		s.handleStream(c, req, s.streamFromResubscribe)
	case "tasks/pushNotificationConfig/set":
		s.handlePushConfigSet(c, req)
	case "tasks/pushNotificationConfig/get":
		s.handlePushConfigGet(c, req)
	case "tasks/pushNotificationConfig/list":
		s.handlePushConfigList(c, req)
	case "tasks/pushNotificationConfig/delete":
		s.handlePushConfigDelete(c, req)
	case "agent/authenticatedExtendedCard":
		s.handleAuthenticatedExtendedCardRPC(c, req)
	default:
		s.logger.Warn("unknown method requested", zap.String("method", req.Method))
		s.sendError(c, req.ID, ErrMethodNotFound, "method not found")
	}
}

func bindParams[T any](req types.JSONRPCRequest) (T, error) {
	var params T
	raw, err := json.Marshal(req.Params)
	if err != nil {
		return params, err
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		return params, err
	}
	return params, nil
}

func (s *A2AServerImpl) handleMessageSend(c *gin.Context, req types.JSONRPCRequest) {
	params, err := bindParams[types.MessageSendParams](req)
	if err != nil {
		s.sendError(c, req.ID, ErrInvalidParams, "invalid message/send params")
		return
	}

	task, err := s.requestHandler.SendMessage(c.Request.Context(), params)
	if err != nil {
		s.sendProtocolError(c, req.ID, err)
		return
	}

	s.sendSuccess(c, req.ID, task)
}

func (s *A2AServerImpl) handleTaskGet(c *gin.Context, req types.JSONRPCRequest) {
	params, err := bindParams[types.TaskQueryParams](req)
	if err != nil {
		s.sendError(c, req.ID, ErrInvalidParams, "invalid tasks/get params")
		return
	}

	task, err := s.requestHandler.GetTask(c.Request.Context(), params)
	if err != nil {
		s.sendProtocolError(c, req.ID, err)
		return
	}
	if task == nil {
		s.sendProtocolError(c, req.ID, NewTaskNotFoundError(params.ID))
		return
	}

	s.sendSuccess(c, req.ID, task)
}

func (s *A2AServerImpl) handleTaskCancel(c *gin.Context, req types.JSONRPCRequest) {
	params, err := bindParams[types.TaskIdParams](req)
	if err != nil {
		s.sendError(c, req.ID, ErrInvalidParams, "invalid tasks/cancel params")
		return
	}

	task, err := s.requestHandler.CancelTask(c.Request.Context(), params)
	if err != nil {
		s.sendProtocolError(c, req.ID, err)
		return
	}

	s.sendSuccess(c, req.ID, task)
}

func (s *A2AServerImpl) handlePushConfigSet(c *gin.Context, req types.JSONRPCRequest) {
	if err := s.gate.RequirePushNotifications(); err != nil {
		s.sendProtocolError(c, req.ID, err)
		return
	}

	params, err := bindParams[types.TaskPushNotificationConfig](req)
	if err != nil {
		s.sendError(c, req.ID, ErrInvalidParams, "invalid tasks/pushNotificationConfig/set params")
		return
	}

	cfg, err := s.requestHandler.SetPushNotificationConfig(c.Request.Context(), params)
	if err != nil {
		s.sendProtocolError(c, req.ID, err)
		return
	}

	s.sendSuccess(c, req.ID, cfg)
}

// handlePushConfigGet is intentionally NOT gated by RequirePushNotifications
// (§4.6): reading an existing config must succeed even when the agent
// advertises no push capability.
func (s *A2AServerImpl) handlePushConfigGet(c *gin.Context, req types.JSONRPCRequest) {
	params, err := bindParams[types.GetTaskPushNotificationConfigParams](req)
	if err != nil {
		s.sendError(c, req.ID, ErrInvalidParams, "invalid tasks/pushNotificationConfig/get params")
		return
	}

	cfg, err := s.requestHandler.GetPushNotificationConfig(c.Request.Context(), params)
	if err != nil {
		s.sendProtocolError(c, req.ID, err)
		return
	}

	s.sendSuccess(c, req.ID, cfg)
}

func (s *A2AServerImpl) handlePushConfigList(c *gin.Context, req types.JSONRPCRequest) {
	params, err := bindParams[types.ListTaskPushNotificationConfigParams](req)
	if err != nil {
		s.sendError(c, req.ID, ErrInvalidParams, "invalid tasks/pushNotificationConfig/list params")
		return
	}

	configs, err := s.requestHandler.ListPushNotificationConfig(c.Request.Context(), params)
	if err != nil {
		s.sendProtocolError(c, req.ID, err)
		return
	}

	s.sendSuccess(c, req.ID, configs)
}

func (s *A2AServerImpl) handlePushConfigDelete(c *gin.Context, req types.JSONRPCRequest) {
	params, err := bindParams[types.DeleteTaskPushNotificationConfigParams](req)
	if err != nil {
		s.sendError(c, req.ID, ErrInvalidParams, "invalid tasks/pushNotificationConfig/delete params")
		return
	}

	if err := s.requestHandler.DeletePushNotificationConfig(c.Request.Context(), params); err != nil {
		s.sendProtocolError(c, req.ID, err)
		return
	}

	s.sendSuccess(c, req.ID, nil)
}

func (s *A2AServerImpl) handleAuthenticatedExtendedCardRPC(c *gin.Context, req types.JSONRPCRequest) {
	if err := s.gate.RequireAuthenticatedExtendedCard(); err != nil {
		s.sendProtocolError(c, req.ID, err)
		return
	}

	card, err := s.requestHandler.GetAuthenticatedExtendedCard(c.Request.Context())
	if err != nil {
		s.sendProtocolError(c, req.ID, err)
		return
	}

	s.sendSuccess(c, req.ID, card)
}

// streamSource produces the event channel for a streaming method, after the
// capability gate has already been checked.
type streamSource func(ctx context.Context, req types.JSONRPCRequest) (<-chan types.StreamResponse, func(), error)

func (s *A2AServerImpl) streamFromMessage(ctx context.Context, req types.JSONRPCRequest) (<-chan types.StreamResponse, func(), error) {
	params, err := bindParams[types.MessageSendParams](req)
	if err != nil {
		return nil, nil, newProtocolError(ErrorKindInvalidParams, "invalid message/stream params")
	}
	return s.requestHandler.StreamMessage(ctx, params)
}

func (s *A2AServerImpl) streamFromResubscribe(ctx context.Context, req types.JSONRPCRequest) (<-chan types.StreamResponse, func(), error) {
	params, err := bindParams[types.TaskIdParams](req)
	if err != nil {
		return nil, nil, newProtocolError(ErrorKindInvalidParams, "invalid tasks/resubscribe params")
	}
	return s.requestHandler.ResubscribeTask(ctx, params)
}

// handleStream gates on streaming capability, opens the event source, then
// relays every event downstream as an SSE "data:" frame. Ordering guarantee
// (§5): events are written to the connection in the order they were
// published to the broadcast, which is itself the order the triggering
// store writes completed.
func (s *A2AServerImpl) handleStream(c *gin.Context, req types.JSONRPCRequest, source streamSource) {
	if err := s.gate.RequireStreaming(); err != nil {
		s.sendProtocolError(c, req.ID, err)
		return
	}

	ctx := c.Request.Context()

	events, unsubscribe, err := source(ctx, req)
	if err != nil {
		s.sendProtocolError(c, req.ID, err)
		return
	}
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Access-Control-Allow-Origin", "*")

	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-events:
			if !ok {
				if _, err := c.Writer.Write([]byte("data: [DONE]\n\n")); err != nil {
					s.logger.Error("failed to write stream termination signal", zap.Error(err))
				} else {
					c.Writer.Flush()
				}
				return
			}

			if err := s.writeSSE(c, req.ID, evt); err != nil {
				s.logger.Error("failed to write streaming response", zap.Error(err))
				return
			}
		}
	}
}

func (s *A2AServerImpl) writeSSE(c *gin.Context, id *any, evt types.StreamResponse) error {
	response := types.JSONRPCSuccessResponse{JSONRPC: "2.0", ID: id, Result: evt}

	body, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("marshal streaming response: %w", err)
	}

	if _, err := c.Writer.Write([]byte("data: ")); err != nil {
		return err
	}
	if _, err := c.Writer.Write(body); err != nil {
		return err
	}
	if _, err := c.Writer.Write([]byte("\n\n")); err != nil {
		return err
	}

	c.Writer.Flush()
	return nil
}

func (s *A2AServerImpl) sendSuccess(c *gin.Context, id *any, result any) {
	c.JSON(http.StatusOK, types.JSONRPCSuccessResponse{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *A2AServerImpl) sendError(c *gin.Context, id *any, code JRPCErrorCode, message string) {
	c.JSON(http.StatusOK, types.JSONRPCErrorResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &types.JSONRPCError{Code: int(code), Message: message},
	})
}

// sendProtocolError maps a *ProtocolError onto its wire JSON-RPC code via
// errors.go's jrpcCodeFor table; any other error is reported as an internal
// error.
func (s *A2AServerImpl) sendProtocolError(c *gin.Context, id *any, err error) {
	code := ErrInternalError
	var pe *ProtocolError
	if asProtocolError(err, &pe) {
		code = pe.JRPCCode()
	}
	s.sendError(c, id, code, err.Error())
}
