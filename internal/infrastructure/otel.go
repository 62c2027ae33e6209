package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"shopmetrics/internal/config"
	"shopmetrics/pkg/contracts"
)

const (
	ServiceName = "shopmetrics"
	MeterName   = "shopmetrics"
)

// OTelProviders holds the OpenTelemetry providers for a pipeline run.
// Metrics land in a dedicated Prometheus registry so batch runs can push
// them to a gateway instead of serving an endpoint.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *promclient.Registry
	Logger         *slog.Logger
}

// InitializeOTel initializes OpenTelemetry from the telemetry configuration
func InitializeOTel(cfg config.TelemetryConfig, logger *slog.Logger) (*OTelProviders, error) {
	if logger == nil {
		logger = slog.Default()
	}

	ctx := context.Background()

	logger.InfoContext(ctx, "Initializing OpenTelemetry",
		slog.String("service", ServiceName),
		slog.Bool("tracing_enabled", cfg.TracingEnabled),
		slog.Bool("metrics_enabled", cfg.MetricsEnabled))

	res, err := createResource()
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	providers := &OTelProviders{
		Logger: logger,
	}

	if cfg.TracingEnabled {
		if err := initializeTracing(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	if cfg.MetricsEnabled {
		if err := initializeMetrics(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource() (*resource.Resource, error) {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(contracts.Version),
		attribute.String("service.instance.id", generateInstanceID()),
	), nil
}

// initializeTracing sets up OpenTelemetry tracing
func initializeTracing(ctx context.Context, cfg config.TelemetryConfig, res *resource.Resource, providers *OTelProviders) error {
	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.TraceExporter {
	case "stdout":
		exporter, err = stdouttrace.New(
			stdouttrace.WithPrettyPrint(),
		)
	case "none":
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)

	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(contracts.Version))

	otel.SetTracerProvider(tp)

	providers.Logger.InfoContext(ctx, "Tracing initialized",
		slog.String("exporter", cfg.TraceExporter),
		slog.Float64("sample_ratio", cfg.SampleRatio))

	return nil
}

// initializeMetrics sets up OpenTelemetry metrics
func initializeMetrics(ctx context.Context, cfg config.TelemetryConfig, res *resource.Resource, providers *OTelProviders) error {
	switch cfg.MetricExporter {
	case "prometheus":
		registry := promclient.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
		if err != nil {
			return fmt.Errorf("failed to create prometheus exporter: %w", err)
		}

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)

		providers.Registry = registry
		providers.MeterProvider = mp
		providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(contracts.Version))

		otel.SetMeterProvider(mp)

	case "none":
		return nil
	default:
		return fmt.Errorf("unsupported metric exporter: %s", cfg.MetricExporter)
	}

	providers.Logger.InfoContext(ctx, "Metrics initialized",
		slog.String("exporter", cfg.MetricExporter))

	return nil
}

// PushMetrics pushes the run's metric registry to a Prometheus Pushgateway.
// Intended for the end of a batch run; a no-op when metrics are disabled.
func (p *OTelProviders) PushMetrics(ctx context.Context, gatewayURL, job, runID string) error {
	if p.Registry == nil || gatewayURL == "" {
		return nil
	}

	pusher := push.New(gatewayURL, job).
		Gatherer(p.Registry).
		Grouping("run_id", runID)

	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", gatewayURL, err)
	}

	p.Logger.InfoContext(ctx, "Pushed metrics to gateway",
		slog.String("gateway", gatewayURL),
		slog.String("job", job),
		slog.String("run_id", runID))

	return nil
}

// CreatePipelineMetrics creates the pipeline-specific instruments
func CreatePipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	rowsLoaded, err := meter.Int64Counter(
		"dataset_rows_loaded_total",
		metric.WithDescription("Total number of source rows loaded, by table"),
	)
	if err != nil {
		return nil, err
	}

	loadDuration, err := meter.Float64Histogram(
		"dataset_load_duration_seconds",
		metric.WithDescription("Dataset load duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	cacheHits, err := meter.Int64Counter(
		"dataset_cache_hits_total",
		metric.WithDescription("Total number of dataset cache hits"),
	)
	if err != nil {
		return nil, err
	}

	cacheMisses, err := meter.Int64Counter(
		"dataset_cache_misses_total",
		metric.WithDescription("Total number of dataset cache misses"),
	)
	if err != nil {
		return nil, err
	}

	calculations, err := meter.Int64Counter(
		"metrics_calculations_total",
		metric.WithDescription("Total number of metric group calculations"),
	)
	if err != nil {
		return nil, err
	}

	calculationDuration, err := meter.Float64Histogram(
		"metrics_calculation_duration_seconds",
		metric.WithDescription("Metric calculation duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	reportsGenerated, err := meter.Int64Counter(
		"reports_generated_total",
		metric.WithDescription("Total number of report files generated, by format"),
	)
	if err != nil {
		return nil, err
	}

	exportDuration, err := meter.Float64Histogram(
		"report_export_duration_seconds",
		metric.WithDescription("Report export duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	pipelineErrors, err := meter.Int64Counter(
		"pipeline_errors_total",
		metric.WithDescription("Total number of pipeline errors"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		RowsLoaded:          rowsLoaded,
		LoadDuration:        loadDuration,
		CacheHits:           cacheHits,
		CacheMisses:         cacheMisses,
		Calculations:        calculations,
		CalculationDuration: calculationDuration,
		ReportsGenerated:    reportsGenerated,
		ExportDuration:      exportDuration,
		PipelineErrors:      pipelineErrors,
	}, nil
}

// PipelineMetrics holds the pipeline-specific instruments
type PipelineMetrics struct {
	RowsLoaded          metric.Int64Counter
	LoadDuration        metric.Float64Histogram
	CacheHits           metric.Int64Counter
	CacheMisses         metric.Int64Counter
	Calculations        metric.Int64Counter
	CalculationDuration metric.Float64Histogram
	ReportsGenerated    metric.Int64Counter
	ExportDuration      metric.Float64Histogram
	PipelineErrors      metric.Int64Counter
}

// RecordLoad records a table load
func RecordLoad(ctx context.Context, metrics *PipelineMetrics, table string, rows int, duration time.Duration) {
	if metrics == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("table", table),
	}

	metrics.RowsLoaded.Add(ctx, int64(rows), metric.WithAttributes(attrs...))
	metrics.LoadDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordCacheLookup records a dataset cache hit or miss
func RecordCacheLookup(ctx context.Context, metrics *PipelineMetrics, hit bool) {
	if metrics == nil {
		return
	}

	if hit {
		metrics.CacheHits.Add(ctx, 1)
	} else {
		metrics.CacheMisses.Add(ctx, 1)
	}
}

// RecordCalculation records a metric group calculation
func RecordCalculation(ctx context.Context, metrics *PipelineMetrics, group string, duration time.Duration, err error) {
	if metrics == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
		metrics.PipelineErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("stage", "calculate"),
			attribute.String("group", group),
		))
	}

	attrs := []attribute.KeyValue{
		attribute.String("group", group),
		attribute.String("status", status),
	}

	metrics.Calculations.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.CalculationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordExport records a generated report file
func RecordExport(ctx context.Context, metrics *PipelineMetrics, format string, duration time.Duration, err error) {
	if metrics == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
		metrics.PipelineErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("stage", "export"),
			attribute.String("format", format),
		))
	}

	attrs := []attribute.KeyValue{
		attribute.String("format", format),
		attribute.String("status", status),
	}

	metrics.ReportsGenerated.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.ExportDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// Shutdown gracefully shuts down OpenTelemetry providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}

	return nil
}

// generateInstanceID generates a unique instance identifier
func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}

// TraceIDFromContext extracts the OTel trace ID from context for logging
// correlation
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// StartSpan starts a named span on the globally registered tracer
// provider. Before InitializeOTel runs this yields a no-op span, so call
// sites need no tracing-enabled check.
func StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(MeterName).Start(ctx, name)
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanAttributes sets attributes on the current span
func SetSpanAttributes(ctx context.Context, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	for k, v := range attributes {
		switch val := v.(type) {
		case string:
			span.SetAttributes(attribute.String(k, val))
		case int:
			span.SetAttributes(attribute.Int(k, val))
		case int64:
			span.SetAttributes(attribute.Int64(k, val))
		case float64:
			span.SetAttributes(attribute.Float64(k, val))
		case bool:
			span.SetAttributes(attribute.Bool(k, val))
		default:
			span.SetAttributes(attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}
}
