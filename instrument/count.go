package instrument

import (
	"sync/atomic"

	"github.com/kbukum/seqkit/frayed"
)

// Counter tallies every Next call made through the middleware carrying
// it. Safe to read while another goroutine consumes the stream.
type Counter struct {
	n atomic.Int64
}

// Count returns the number of Next calls seen so far.
func (c *Counter) Count() int64 { return c.n.Load() }

// WithCallCount returns a Middleware that counts every Next call on c,
// boundary and post-exhaustion pulls included.
func WithCallCount[T any](c *Counter) Middleware[T] {
	return func(inner frayed.Frayed[T]) frayed.Frayed[T] {
		return frayed.FromFunc(func() (T, bool) {
			c.n.Add(1)
			return inner.Next()
		})
	}
}
