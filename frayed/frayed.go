package frayed

// Producer is the pull contract shared by everything in this package.
// Next returns the next element, or (zero, false) at a subsequence
// boundary. A producer following the frayed convention returns a second
// false immediately after the first when it is exhausted, and keeps
// returning false from then on.
type Producer[T any] interface {
	Next() (T, bool)
}

// Func adapts a plain function to a Producer.
type Func[T any] func() (T, bool)

// Next calls f.
func (f Func[T]) Next() (T, bool) { return f() }

// Frayed marks a producer as following the frayed convention. The mark is
// a promise made by the caller, not something that can be checked: the
// only way to obtain a Frayed is Mark or FromFunc, so the adapter and the
// combinators know what they were given. The zero value is not usable.
//
// Frayed is itself a Producer and delegates to the wrapped one, so a
// marked producer still composes with anything producer-shaped.
type Frayed[T any] struct {
	src Producer[T]
}

// Mark wraps p, declaring that it follows the frayed convention.
func Mark[T any](p Producer[T]) Frayed[T] {
	return Frayed[T]{src: p}
}

// FromFunc marks a function producer. Shorthand for Mark(Func(fn)).
func FromFunc[T any](fn func() (T, bool)) Frayed[T] {
	return Frayed[T]{src: Func[T](fn)}
}

// Next pulls from the wrapped producer.
func (f Frayed[T]) Next() (T, bool) { return f.src.Next() }

// Defray wraps the producer in a cursor-sharing adapter. See Defray's
// type documentation for the sharing rules.
func (f Frayed[T]) Defray() *Defray[T] {
	return NewDefray(f)
}

// Peekable returns a one-slot lookahead view of the producer. The Peeker
// buffers whole (value, ok) results, so boundaries can be peeked without
// being consumed; it therefore preserves the frayed convention and can be
// re-marked with Mark.
func (f Frayed[T]) Peekable() *Peeker[T] {
	return NewPeeker(f.src)
}
