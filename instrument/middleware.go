package instrument

import "github.com/kbukum/seqkit/frayed"

// Middleware transforms a frayed stream by wrapping it. The returned
// stream delegates to the original while adding cross-cutting behavior
// (logging, metrics, call counting) without disturbing the boundary
// protocol: every (value, ok) pair passes through unchanged.
type Middleware[T any] func(frayed.Frayed[T]) frayed.Frayed[T]

// Chain composes multiple middlewares into one. Middlewares are applied
// in order: the first middleware is outermost (sees each Next call
// first on the way in, last on the way out).
//
// Chain(a, b, c)(stream) is equivalent to a(b(c(stream))).
func Chain[T any](middlewares ...Middleware[T]) Middleware[T] {
	return func(inner frayed.Frayed[T]) frayed.Frayed[T] {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](inner)
		}
		return inner
	}
}

// observer tracks where a raw frayed stream stands in its protocol so
// middlewares can tell elements, boundaries, and exhaustion apart.
type observer struct {
	open      bool // a subsequence is in progress
	prevFalse bool // the previous pull was a boundary
	done      bool // two consecutive false results seen
}

type streamEvent uint8

const (
	eventElement streamEvent = iota
	eventSubsequenceStart
	eventBoundary
	eventExhausted
	eventAfterEnd
)

// observe classifies one (_, ok) result. A subsequence start is
// reported for the first element after a boundary (or of the whole
// stream); exhaustion is reported exactly once.
func (o *observer) observe(ok bool) streamEvent {
	if o.done {
		return eventAfterEnd
	}
	if ok {
		o.prevFalse = false
		if !o.open {
			o.open = true
			return eventSubsequenceStart
		}
		return eventElement
	}
	if o.prevFalse {
		o.done = true
		return eventExhausted
	}
	o.prevFalse = true
	o.open = false
	return eventBoundary
}
