package observability

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected Environment 'development', got %q", cfg.Environment)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
	if cfg.ServiceVersion == "" {
		t.Error("expected ServiceVersion to be filled from build info")
	}
}

func TestNewMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	if metrics == nil {
		t.Fatal("expected non-nil metrics")
	}

	metrics.RecordStreamStart("orders")
	metrics.RecordSubsequence("orders")
	metrics.RecordElement("orders", 100*time.Microsecond)
	metrics.RecordBoundary("orders")
	metrics.RecordExhaustion("orders")
}

func TestMeter(t *testing.T) {
	meter := Meter("test-meter")
	if meter == nil {
		t.Fatal("expected non-nil meter")
	}
}

// shutdownQuietly shuts the provider down under an already canceled
// context, so the final export does not wait on a collector.
func shutdownQuietly(t *testing.T, mp *sdkmetric.MeterProvider) {
	t.Helper()
	t.Cleanup(func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		mp.Shutdown(ctx)
	})
}

func TestInitMeter(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")

	mp, err := InitMeter(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("InitMeter failed: %v", err)
	}
	shutdownQuietly(t, mp)
}

func TestInitMeterSecure(t *testing.T) {
	cfg := &MeterConfig{
		ServiceName:    "test",
		ServiceVersion: "1.0.0",
		Environment:    "test",
		Endpoint:       "localhost:4318",
		Insecure:       false,
		Interval:       0,
	}

	mp, err := InitMeter(context.Background(), cfg)
	if err != nil {
		t.Fatalf("InitMeter failed: %v", err)
	}
	shutdownQuietly(t, mp)
}

func TestNewResourceCarriesServiceIdentity(t *testing.T) {
	res, err := newResource("svc", "1.2.3", "staging")
	if err != nil {
		t.Fatalf("newResource failed: %v", err)
	}

	attrs := make(map[attribute.Key]string, len(res.Attributes()))
	for _, kv := range res.Attributes() {
		attrs[kv.Key] = kv.Value.Emit()
	}
	if attrs["service.name"] != "svc" {
		t.Errorf("service.name = %q, want %q", attrs["service.name"], "svc")
	}
	if attrs["service.version"] != "1.2.3" {
		t.Errorf("service.version = %q, want %q", attrs["service.version"], "1.2.3")
	}
	if attrs["environment"] != "staging" {
		t.Errorf("environment = %q, want %q", attrs["environment"], "staging")
	}
}
