package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestSetupWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), "", "test")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer shutdown(context.Background())

	_, span := otel.Tracer("test").Start(context.Background(), "introspect")
	defer span.End()
	if !span.SpanContext().IsValid() {
		t.Fatalf("expected a sampled span with valid ids")
	}
}

func TestExporterOptions(t *testing.T) {
	if got := len(exporterOptions("localhost:4318")); got != 2 {
		t.Fatalf("bare host should add endpoint and insecure, got %d options", got)
	}
	if got := len(exporterOptions("https://collector.example.com/v1/traces")); got != 2 {
		t.Fatalf("https url should add endpoint and path, got %d options", got)
	}
}
