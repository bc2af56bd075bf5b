package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"

	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/version"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.Short(),
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// newResource creates an OpenTelemetry resource with service metadata.
func newResource(serviceName, serviceVersion, environment string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
			attribute.String("environment", environment),
		),
	)
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds metric instruments for stream consumption. The stream
// contract carries no context through Next, so the record methods apply
// measurements against the background context.
type Metrics struct {
	elementTotal     metric.Int64Counter
	boundaryTotal    metric.Int64Counter
	subsequenceTotal metric.Int64Counter
	exhaustionTotal  metric.Int64Counter
	streamActive     metric.Int64UpDownCounter
	nextDuration     metric.Float64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	elementTotal, err := meter.Int64Counter("stream.elements",
		metric.WithDescription("Total elements delivered across all subsequences"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.elements counter: %w", err)
	}

	boundaryTotal, err := meter.Int64Counter("stream.boundaries",
		metric.WithDescription("Total subsequence boundaries observed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.boundaries counter: %w", err)
	}

	subsequenceTotal, err := meter.Int64Counter("stream.subsequences",
		metric.WithDescription("Total subsequences started"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.subsequences counter: %w", err)
	}

	exhaustionTotal, err := meter.Int64Counter("stream.exhaustions",
		metric.WithDescription("Total streams that reached exhaustion"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.exhaustions counter: %w", err)
	}

	streamActive, err := meter.Int64UpDownCounter("stream.active",
		metric.WithDescription("Number of streams currently being consumed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.active gauge: %w", err)
	}

	nextDuration, err := meter.Float64Histogram("stream.next.duration",
		metric.WithDescription("Duration of element pulls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.next.duration histogram: %w", err)
	}

	return &Metrics{
		elementTotal:     elementTotal,
		boundaryTotal:    boundaryTotal,
		subsequenceTotal: subsequenceTotal,
		exhaustionTotal:  exhaustionTotal,
		streamActive:     streamActive,
		nextDuration:     nextDuration,
	}, nil
}

func streamAttrs(stream string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("stream", stream))
}

// RecordStreamStart increments the active stream count.
func (m *Metrics) RecordStreamStart(stream string) {
	m.streamActive.Add(context.Background(), 1, streamAttrs(stream))
}

// RecordElement records one delivered element and the time the pull took.
func (m *Metrics) RecordElement(stream string, duration time.Duration) {
	ctx := context.Background()
	m.elementTotal.Add(ctx, 1, streamAttrs(stream))
	m.nextDuration.Record(ctx, duration.Seconds(), streamAttrs(stream))
}

// RecordBoundary records one observed subsequence boundary.
func (m *Metrics) RecordBoundary(stream string) {
	m.boundaryTotal.Add(context.Background(), 1, streamAttrs(stream))
}

// RecordSubsequence records the start of a new subsequence.
func (m *Metrics) RecordSubsequence(stream string) {
	m.subsequenceTotal.Add(context.Background(), 1, streamAttrs(stream))
}

// RecordExhaustion records that a stream reached exhaustion and
// decrements the active stream count.
func (m *Metrics) RecordExhaustion(stream string) {
	ctx := context.Background()
	m.exhaustionTotal.Add(ctx, 1, streamAttrs(stream))
	m.streamActive.Add(ctx, -1, streamAttrs(stream))
}
