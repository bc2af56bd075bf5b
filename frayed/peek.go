package frayed

// Peeker wraps a producer with a one-slot lookahead. The buffered slot
// holds the complete (value, ok) result, so a boundary can be inspected
// without being consumed and is still delivered exactly once. Peeker is
// itself a Producer; over a frayed source it preserves the convention.
type Peeker[T any] struct {
	src      Producer[T]
	val      T
	ok       bool
	buffered bool
}

// NewPeeker wraps src. Nothing is pulled until Peek or Next.
func NewPeeker[T any](src Producer[T]) *Peeker[T] {
	return &Peeker[T]{src: src}
}

// Peek returns the result the next Next call will return, pulling it
// into the buffer if needed. Repeated Peeks return the same result.
func (p *Peeker[T]) Peek() (T, bool) {
	if !p.buffered {
		p.val, p.ok = p.src.Next()
		p.buffered = true
	}
	return p.val, p.ok
}

// Next returns the buffered result if one is pending, otherwise pulls
// from the source.
func (p *Peeker[T]) Next() (T, bool) {
	if p.buffered {
		p.buffered = false
		v, ok := p.val, p.ok
		var zero T
		p.val = zero
		return v, ok
	}
	return p.src.Next()
}
