// Package telemetry wires router dispatch into OpenTelemetry, exported
// over OTLP/gRPC. StartOperator is a hook for callers that run helper
// operators; pkg/helper itself does not call it.
package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Config configures the OpenTelemetry OTLP gRPC exporter.
type Config struct {
	Endpoint       string
	ServiceName    string
	ServiceVersion string
	Environment    string
	InsecureTLS    bool
	Headers        map[string]string
	BatchTimeout   time.Duration
	MaxBatchSize   int
	MaxQueueSize   int
	ExportTimeout  time.Duration
	// SamplingRatio is the fraction of traces to sample, in [0, 1].
	SamplingRatio float64
}

// DefaultConfig returns sensible defaults for serviceName.
func DefaultConfig(serviceName string) Config {
	return Config{
		Endpoint:       "localhost:4317",
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		InsecureTLS:    true,
		BatchTimeout:   5 * time.Second,
		MaxBatchSize:   512,
		MaxQueueSize:   2048,
		ExportTimeout:  30 * time.Second,
		SamplingRatio:  1.0,
	}
}

// Exporter owns the OTLP gRPC tracer provider lifecycle.
type Exporter struct {
	mu sync.Mutex

	cfg            Config
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer
	initialized    bool
}

// New creates an Exporter for cfg. Call Init to actually connect.
func New(cfg Config) *Exporter {
	return &Exporter{cfg: cfg}
}

// Init dials the configured OTLP endpoint and installs the resulting
// tracer provider as the global OTel tracer provider. Returns a
// shutdown function that flushes and closes the exporter.
func (e *Exporter) Init(ctx context.Context) (shutdown func(context.Context) error, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return e.shutdownLocked, nil
	}

	var dialOpts []grpc.DialOption
	if e.cfg.InsecureTLS {
		dialOpts = append(dialOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	exporterOpts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(e.cfg.Endpoint),
		otlptracegrpc.WithDialOption(dialOpts...),
		otlptracegrpc.WithTimeout(e.cfg.ExportTimeout),
	}
	if e.cfg.InsecureTLS {
		exporterOpts = append(exporterOpts, otlptracegrpc.WithInsecure())
	}
	if len(e.cfg.Headers) > 0 {
		exporterOpts = append(exporterOpts, otlptracegrpc.WithHeaders(e.cfg.Headers))
	}

	exporter, err := otlptracegrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("telemetry: create OTLP exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(e.cfg.ServiceName),
			semconv.ServiceVersion(e.cfg.ServiceVersion),
			semconv.DeploymentEnvironment(e.cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: build resource: %w", err)
	}

	var sampler sdktrace.Sampler
	switch {
	case e.cfg.SamplingRatio >= 1.0:
		sampler = sdktrace.AlwaysSample()
	case e.cfg.SamplingRatio <= 0:
		sampler = sdktrace.NeverSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(e.cfg.SamplingRatio)
	}

	e.tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(e.cfg.BatchTimeout),
			sdktrace.WithMaxExportBatchSize(e.cfg.MaxBatchSize),
			sdktrace.WithMaxQueueSize(e.cfg.MaxQueueSize),
			sdktrace.WithExportTimeout(e.cfg.ExportTimeout),
		),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)

	otel.SetTracerProvider(e.tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	e.tracer = e.tracerProvider.Tracer(e.cfg.ServiceName)
	e.initialized = true
	return e.shutdownLocked, nil
}

func (e *Exporter) shutdownLocked(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return nil
	}
	e.initialized = false
	return e.tracerProvider.Shutdown(ctx)
}

// Tracer returns the tracer obtained at Init, or the global no-op
// tracer if Init has not run.
func (e *Exporter) Tracer() trace.Tracer {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tracer == nil {
		return otel.Tracer(e.cfg.ServiceName)
	}
	return e.tracer
}

// StartDispatch opens a span around one worker's route-table scan and
// forward attempt for an event.
func StartDispatch(ctx context.Context, tracer trace.Tracer, workerIndex int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "router.dispatch", trace.WithAttributes(
		attribute.Int("router.worker_index", workerIndex),
	))
}

// StartOperator opens a span around one helper operator invocation.
func StartOperator(ctx context.Context, tracer trace.Tracer, name, targetField string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "helper.operator", trace.WithAttributes(
		attribute.String("helper.name", name),
		attribute.String("helper.target_field", targetField),
	))
}

// RecordResult sets a span's status from an operator or dispatch
// outcome and ends it.
func RecordResult(span trace.Span, success bool, traceMsg string) {
	span.SetAttributes(attribute.Bool("result.success", success))
	if traceMsg != "" {
		span.SetAttributes(attribute.String("result.trace", traceMsg))
	}
	span.End()
}
