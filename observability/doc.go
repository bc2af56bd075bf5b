// Package observability provides OpenTelemetry metrics integration for
// stream consumption.
//
// Initialize the meter provider once at startup:
//
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
// Then create instruments and record as elements flow:
//
//	metrics, err := observability.NewMetrics(observability.Meter("my-service"))
//	metrics.RecordElement("orders", elapsed)
//	metrics.RecordBoundary("orders")
//
// The instrument package wires these recordings into a stream
// automatically.
package observability
