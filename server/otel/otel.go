package otel

import (
	"context"
	"fmt"

	config "github.com/inference-gateway/adk/server/config"
	otel "go.opentelemetry.io/otel"
	attribute "go.opentelemetry.io/otel/attribute"
	prometheus "go.opentelemetry.io/otel/exporters/prometheus"
	metric "go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	resource "go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.32.0"
	zap "go.uber.org/zap"
)

// OpenTelemetry defines the operations for telemetry emitted by the A2A
// server runtime: HTTP/JSON-RPC request metrics, task lifecycle metrics,
// and push notification dispatch metrics.
type OpenTelemetry interface {
	RecordRequestCount(ctx context.Context, attrs TelemetryAttributes, requestType string)
	RecordResponseStatus(ctx context.Context, attrs TelemetryAttributes, requestType, requestPath string, statusCode int)
	RecordRequestDuration(ctx context.Context, attrs TelemetryAttributes, requestType, requestPath string, durationMs float64)
	RecordTaskStateTransition(ctx context.Context, attrs TelemetryAttributes, fromState, toState string)
	RecordTaskCompleted(ctx context.Context, attrs TelemetryAttributes, success bool)
	RecordPushDispatch(ctx context.Context, attrs TelemetryAttributes, success bool)

	// ShutDown the telemetry system
	ShutDown(ctx context.Context) error
}

type OpenTelemetryImpl struct {
	logger        *zap.Logger
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter

	// Metrics
	requestCounter            metric.Int64Counter
	responseStatusCounter     metric.Int64Counter
	requestDurationHistogram  metric.Float64Histogram
	taskTransitionCounter     metric.Int64Counter
	taskCompletedCounter      metric.Int64Counter
	pushDispatchCounter       metric.Int64Counter
}

// TelemetryAttributes carries the dimensions attached to every recorded
// metric: which task (if any) and which context the event relates to.
type TelemetryAttributes struct {
	AgentName string
	TaskID    string
	ContextID string
}

// NewOpenTelemetry creates a new OpenTelemetry implementation with proper dependency injection
func NewOpenTelemetry(cfg *config.Config, logger *zap.Logger) (OpenTelemetry, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	o := &OpenTelemetryImpl{
		logger: logger,
	}

	if err := o.initialize(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize opentelemetry: %w", err)
	}

	return o, nil
}

func (o *OpenTelemetryImpl) initialize(cfg *config.Config) error {
	o.logger.Info("initializing opentelemetry",
		zap.String("agent_name", cfg.AgentName),
		zap.String("version", cfg.AgentVersion))

	exporter, err := prometheus.New()
	if err != nil {
		o.logger.Error("failed to create prometheus exporter", zap.Error(err))
		return err
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.AgentName),
		semconv.ServiceVersion(cfg.AgentVersion),
	)

	histogramBoundaries := []float64{1, 5, 10, 25, 50, 75, 100, 250, 500, 750, 1000, 2500, 5000, 7500, 10000}

	latencyView := sdkmetric.NewView(
		sdkmetric.Instrument{
			Kind: sdkmetric.InstrumentKindHistogram,
		},
		sdkmetric.Stream{
			Aggregation: sdkmetric.AggregationExplicitBucketHistogram{
				Boundaries: histogramBoundaries,
			},
		},
	)

	o.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
		sdkmetric.WithView(latencyView),
	)
	otel.SetMeterProvider(o.meterProvider)

	o.meter = o.meterProvider.Meter(cfg.AgentName)

	if err := o.initializeMetrics(); err != nil {
		o.logger.Error("failed to initialize metrics", zap.Error(err))
		return err
	}

	o.logger.Info("opentelemetry initialized successfully")
	return nil
}

func (o *OpenTelemetryImpl) RecordRequestCount(ctx context.Context, attrs TelemetryAttributes, requestType string) {
	o.requestCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("agent_name", attrs.AgentName),
		attribute.String("request_type", requestType),
	))
}

func (o *OpenTelemetryImpl) RecordResponseStatus(ctx context.Context, attrs TelemetryAttributes, requestType, requestPath string, statusCode int) {
	o.responseStatusCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("agent_name", attrs.AgentName),
		attribute.String("request_method", requestType),
		attribute.String("request_path", requestPath),
		attribute.Int("status_code", statusCode),
	))
}

func (o *OpenTelemetryImpl) RecordRequestDuration(ctx context.Context, attrs TelemetryAttributes, requestType, requestPath string, durationMs float64) {
	o.requestDurationHistogram.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("agent_name", attrs.AgentName),
		attribute.String("request_method", requestType),
		attribute.String("request_path", requestPath),
	))
}

func (o *OpenTelemetryImpl) RecordTaskStateTransition(ctx context.Context, attrs TelemetryAttributes, fromState, toState string) {
	o.taskTransitionCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("task_id", attrs.TaskID),
		attribute.String("context_id", attrs.ContextID),
		attribute.String("from_state", fromState),
		attribute.String("to_state", toState),
	))
}

func (o *OpenTelemetryImpl) RecordTaskCompleted(ctx context.Context, attrs TelemetryAttributes, success bool) {
	o.taskCompletedCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("task_id", attrs.TaskID),
		attribute.String("context_id", attrs.ContextID),
		attribute.Bool("success", success),
	))
}

func (o *OpenTelemetryImpl) RecordPushDispatch(ctx context.Context, attrs TelemetryAttributes, success bool) {
	o.pushDispatchCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("task_id", attrs.TaskID),
		attribute.Bool("success", success),
	))
}

func (o *OpenTelemetryImpl) ShutDown(ctx context.Context) error {
	return o.meterProvider.Shutdown(ctx)
}

// initializeMetrics initializes all the OpenTelemetry metrics
func (o *OpenTelemetryImpl) initializeMetrics() error {
	var err error

	o.requestCounter, err = o.meter.Int64Counter(
		"a2a.requests.total",
		metric.WithDescription("Total number of A2A JSON-RPC requests processed"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create request counter: %w", err)
	}

	o.responseStatusCounter, err = o.meter.Int64Counter(
		"a2a.response_status.total",
		metric.WithDescription("Total number of responses by status code"),
		metric.WithUnit("{response}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create response status counter: %w", err)
	}

	o.requestDurationHistogram, err = o.meter.Float64Histogram(
		"a2a.request_duration",
		metric.WithDescription("Duration of A2A request processing"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return fmt.Errorf("failed to create request duration histogram: %w", err)
	}

	o.taskTransitionCounter, err = o.meter.Int64Counter(
		"a2a.task.transitions.total",
		metric.WithDescription("Total number of task status transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create task transition counter: %w", err)
	}

	o.taskCompletedCounter, err = o.meter.Int64Counter(
		"a2a.task.completed.total",
		metric.WithDescription("Total number of tasks reaching a terminal state"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create task completed counter: %w", err)
	}

	o.pushDispatchCounter, err = o.meter.Int64Counter(
		"a2a.push.dispatch.total",
		metric.WithDescription("Total number of push notification dispatch attempts"),
		metric.WithUnit("{dispatch}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create push dispatch counter: %w", err)
	}

	o.logger.Debug("all opentelemetry metrics initialized successfully")
	return nil
}
