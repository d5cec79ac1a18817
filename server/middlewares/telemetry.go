package middlewares

import (
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"
	config "github.com/inference-gateway/adk/server/config"
	otel "github.com/inference-gateway/adk/server/otel"
	zap "go.uber.org/zap"
)

// Telemetry is a gin middleware that records HTTP/JSON-RPC request metrics
// for the A2A endpoint.
type Telemetry interface {
	Middleware() gin.HandlerFunc
}

type TelemetryImpl struct {
	cfg       config.Config
	telemetry otel.OpenTelemetry
	logger    *zap.Logger
}

// NewTelemetryMiddleware creates a Telemetry middleware. If TelemetryConfig.Enable
// is false, the returned middleware skips recording entirely.
func NewTelemetryMiddleware(cfg config.Config, telemetry otel.OpenTelemetry, logger *zap.Logger) (Telemetry, error) {
	return &TelemetryImpl{
		cfg:       cfg,
		telemetry: telemetry,
		logger:    logger,
	}, nil
}

func (t *TelemetryImpl) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !t.cfg.TelemetryConfig.Enable || !strings.Contains(c.Request.URL.Path, "/a2a") {
			c.Next()
			return
		}

		startTime := time.Now()
		attrs := otel.TelemetryAttributes{AgentName: t.cfg.AgentName}

		t.telemetry.RecordRequestCount(c.Request.Context(), attrs, c.Request.Method)

		c.Next()

		durationMs := float64(time.Since(startTime).Nanoseconds()) / float64(time.Millisecond)
		statusCode := c.Writer.Status()

		t.telemetry.RecordResponseStatus(c.Request.Context(), attrs, c.Request.Method, c.Request.URL.Path, statusCode)
		t.telemetry.RecordRequestDuration(c.Request.Context(), attrs, c.Request.Method, c.Request.URL.Path, durationMs)

		t.logger.Debug("request telemetry recorded",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status_code", statusCode),
			zap.Float64("duration_ms", durationMs),
		)
	}
}
