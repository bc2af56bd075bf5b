package frayed

import "iter"

// Subsequence is a transient, non-owning view over one subsequence's
// elements. It proxies Next calls to the adapter's shared cursor and is
// finished for good the moment that cursor reports a boundary, the
// adapter is asked for the next subsequence, or the adapter is
// released. A finished handle keeps returning no-more and never reaches
// the producer.
type Subsequence[T any] struct {
	d        *Defray[T]
	gen      uint64
	first    T
	hasFirst bool
	finished bool
}

// Next returns the subsequence's next element. The first element was
// already pulled by the adapter to prove this subsequence exists, so the
// first call returns it without touching the producer.
func (s *Subsequence[T]) Next() (T, bool) {
	var zero T
	if s.finished || s.d == nil || s.gen != s.d.gen {
		s.finished = true
		return zero, false
	}
	if s.hasFirst {
		s.hasFirst = false
		v := s.first
		s.first = zero
		return v, true
	}
	if s.d.cur != cursorActive {
		s.finished = true
		return zero, false
	}
	v, ok := s.d.src.Next()
	if !ok {
		s.d.cur = cursorBoundary
		s.d.live = false
		s.finished = true
		return zero, false
	}
	return v, true
}

// Values returns a lazy view over the remaining elements. Stopping the
// range early leaves the handle mid-subsequence, which the adapter
// handles like any other abandonment.
func (s *Subsequence[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v, ok := s.Next(); ok; v, ok = s.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// Collect drains the remaining elements into a slice.
func (s *Subsequence[T]) Collect() []T {
	var out []T
	for v, ok := s.Next(); ok; v, ok = s.Next() {
		out = append(out, v)
	}
	return out
}
