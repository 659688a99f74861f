package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestSetupTracingDisabled(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), TraceConfig{Exporter: ExporterNone}, nil)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetupTracingRejectsBadConfig(t *testing.T) {
	if _, err := SetupTracing(context.Background(), TraceConfig{Exporter: "zipkin"}, nil); err == nil {
		t.Fatal("expected error for unknown exporter")
	}
	if _, err := SetupTracing(context.Background(), TraceConfig{Exporter: ExporterOTLP}, nil); err == nil {
		t.Fatal("expected error for otlp without endpoint")
	}
}

func TestSetupTracingStdoutWritesSpans(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := SetupTracing(context.Background(), TraceConfig{
		ServiceName: "pixlens-test",
		Exporter:    ExporterStdout,
		Writer:      &buf,
	}, nil)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	_, span := otel.Tracer("pixlens/test").Start(context.Background(), "filter.canny")
	span.End()

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if !strings.Contains(buf.String(), "filter.canny") {
		t.Fatalf("expected exported span in output, got %q", buf.String())
	}
}
