package instrument

import (
	"time"

	"github.com/kbukum/seqkit/frayed"
	"github.com/kbukum/seqkit/observability"
)

// WithMetrics returns a Middleware that records stream consumption on
// the observability.Metrics instruments: elements with pull duration,
// boundaries, subsequence starts, and exhaustion. The active stream
// gauge rises when the middleware wraps the stream and falls at
// exhaustion.
func WithMetrics[T any](stream string, metrics *observability.Metrics) Middleware[T] {
	return func(inner frayed.Frayed[T]) frayed.Frayed[T] {
		metrics.RecordStreamStart(stream)
		return frayed.Mark[T](&metricsStream[T]{inner: inner, stream: stream, metrics: metrics})
	}
}

type metricsStream[T any] struct {
	inner   frayed.Frayed[T]
	stream  string
	metrics *observability.Metrics
	obs     observer
}

func (m *metricsStream[T]) Next() (T, bool) {
	start := time.Now()
	v, ok := m.inner.Next()
	duration := time.Since(start)

	switch m.obs.observe(ok) {
	case eventSubsequenceStart:
		m.metrics.RecordSubsequence(m.stream)
		m.metrics.RecordElement(m.stream, duration)
	case eventElement:
		m.metrics.RecordElement(m.stream, duration)
	case eventBoundary:
		m.metrics.RecordBoundary(m.stream)
	case eventExhausted:
		m.metrics.RecordExhaustion(m.stream)
	case eventAfterEnd:
	}

	return v, ok
}
