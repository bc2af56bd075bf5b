package instrument

import (
	"github.com/kbukum/seqkit/frayed"
	"github.com/kbukum/seqkit/logger"
)

// WithLogging returns a Middleware that logs the life of a stream:
// each completed subsequence at debug level and exhaustion at info
// level, with element and boundary totals.
func WithLogging[T any](stream string, log *logger.Logger) Middleware[T] {
	return func(inner frayed.Frayed[T]) frayed.Frayed[T] {
		return frayed.Mark[T](&loggingStream[T]{inner: inner, stream: stream, log: log})
	}
}

type loggingStream[T any] struct {
	inner  frayed.Frayed[T]
	stream string
	log    *logger.Logger

	obs          observer
	elements     int // in the current subsequence
	total        int
	boundaries   int
	subsequences int
}

func (l *loggingStream[T]) Next() (T, bool) {
	v, ok := l.inner.Next()

	switch l.obs.observe(ok) {
	case eventSubsequenceStart:
		l.subsequences++
		l.elements = 1
		l.total++
	case eventElement:
		l.elements++
		l.total++
	case eventBoundary:
		l.boundaries++
		if l.elements > 0 {
			l.log.Debug("subsequence complete", logger.Fields(
				logger.FieldStream, l.stream,
				logger.FieldElements, l.elements,
			))
			l.elements = 0
		}
	case eventExhausted:
		l.log.Info("stream exhausted", logger.Fields(
			logger.FieldStream, l.stream,
			logger.FieldElements, l.total,
			logger.FieldSubsequences, l.subsequences,
			logger.FieldBoundaries, l.boundaries,
		))
	case eventAfterEnd:
		// post-exhaustion pulls stay quiet
	}

	return v, ok
}
