// Package fraytest provides scripted frayed producers for tests.
//
// A Producer replays a fixed set of groups in the frayed convention
// (elements, boundary, ..., boundary, boundary) and counts every Next
// call, which is how tests verify that an exhausted adapter never
// touches its producer again.
package fraytest

import "github.com/kbukum/seqkit/frayed"

type step[T any] struct {
	val T
	ok  bool
}

// Producer is a scripted frayed producer. After the script runs out it
// keeps returning boundaries forever, so the stream stays monotonically
// exhausted no matter how often it is pulled.
type Producer[T any] struct {
	steps []step[T]
	pos   int
	calls int
}

// New scripts one group per argument. An empty group contributes a bare
// boundary; no groups at all scripts immediate exhaustion.
func New[T any](groups ...[]T) *Producer[T] {
	var steps []step[T]
	for _, g := range groups {
		for _, v := range g {
			steps = append(steps, step[T]{val: v, ok: true})
		}
		steps = append(steps, step[T]{})
	}
	steps = append(steps, step[T]{})
	return &Producer[T]{steps: steps}
}

// Next replays the script and counts the call.
func (p *Producer[T]) Next() (T, bool) {
	p.calls++
	if p.pos < len(p.steps) {
		s := p.steps[p.pos]
		p.pos++
		return s.val, s.ok
	}
	var zero T
	return zero, false
}

// Calls reports how many times Next has been called.
func (p *Producer[T]) Calls() int { return p.calls }

// Len reports the scripted step count, elements plus boundaries. A full
// drain through an adapter consumes exactly this many calls.
func (p *Producer[T]) Len() int { return len(p.steps) }

// Frayed returns the marked view of the producer.
func (p *Producer[T]) Frayed() frayed.Frayed[T] { return frayed.Mark[T](p) }

// Reset rewinds the script and zeroes the call counter.
func (p *Producer[T]) Reset() { p.pos, p.calls = 0, 0 }
