package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestDefaultConfig_HasSaneValues(t *testing.T) {
	cfg := DefaultConfig("flowgate-router")
	if cfg.Endpoint == "" {
		t.Error("default endpoint must not be empty")
	}
	if cfg.SamplingRatio != 1.0 {
		t.Errorf("SamplingRatio = %v, want 1.0", cfg.SamplingRatio)
	}
}

func TestExporter_TracerFallsBackToNoopBeforeInit(t *testing.T) {
	e := New(DefaultConfig("test"))
	if e.Tracer() == nil {
		t.Error("Tracer() should never return nil, even before Init")
	}
}

func TestStartDispatchAndRecordResult(t *testing.T) {
	tracer := trace.NewNoopTracerProvider().Tracer("test")
	ctx, span := StartDispatch(context.Background(), tracer, 3)
	if ctx == nil || span == nil {
		t.Fatal("StartDispatch returned nil context or span")
	}
	RecordResult(span, true, "env-critical")
}

func TestStartOperatorAndRecordResult(t *testing.T) {
	tracer := trace.NewNoopTracerProvider().Tracer("test")
	_, span := StartOperator(context.Background(), tracer, "string.upper", "/message")
	RecordResult(span, false, "[string.upper@/message] -> Failure: field not found")
}
