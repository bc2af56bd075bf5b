package frayed

import "iter"

// cursor is the adapter's view of where the producer stands. Transitions
// only move forward: active -> boundarySeen -> active or done.
type cursor uint8

const (
	// cursorActive: the producer may yield further elements of the
	// current subsequence.
	cursorActive cursor = iota
	// cursorBoundary: one boundary was just consumed; the next pull
	// decides between a new subsequence and exhaustion.
	cursorBoundary
	// cursorDone: terminal. The producer is never called again.
	cursorDone
)

// Defray re-frames a marked frayed producer as a sequence of
// subsequences. It takes sole ownership of the producer: the adapter is
// the only component that ever calls Next on it, and the Subsequence
// handles it issues borrow the adapter rather than the producer.
//
// At most one handle is live at a time. Requesting the next subsequence
// before the current handle reached its boundary is allowed; the adapter
// fast-forwards through the abandoned remainder internally, and the
// superseded handle permanently reports no-more. Once the producer's
// double boundary has been consumed the adapter is done: every further
// outer or inner call returns no-more without touching the producer.
//
// Defray is not safe for concurrent use. All calls must come from a
// single goroutine, matching the strictly sequential cursor it guards.
type Defray[T any] struct {
	src  Producer[T]
	cur  cursor
	gen  uint64 // bumped on every adapter advance; stale handles are dead
	live bool   // the newest handle has not consumed its boundary yet
}

// NewDefray builds an adapter over a marked producer. Nothing is pulled
// at construction, so an immediately Released adapter hands back the
// producer untouched.
func NewDefray[T any](f Frayed[T]) *Defray[T] {
	return &Defray[T]{src: f.src}
}

// Next returns a handle for the next subsequence, or (nil, false) when
// the producer is exhausted. The element that proves the subsequence
// exists is carried by the returned handle, so no value is lost between
// the outer and inner roles.
func (d *Defray[T]) Next() (*Subsequence[T], bool) {
	if d.cur == cursorDone {
		return nil, false
	}
	// Every advance invalidates the previously issued handle, even when
	// no new handle results.
	d.gen++
	if d.live {
		d.fastForward()
	}
	for d.cur != cursorDone {
		v, ok := d.src.Next()
		if ok {
			d.cur = cursorActive
			d.live = true
			return &Subsequence[T]{d: d, gen: d.gen, first: v, hasFirst: true}, true
		}
		if d.cur == cursorBoundary {
			d.cur = cursorDone
		} else {
			d.cur = cursorBoundary
		}
	}
	return nil, false
}

// fastForward drains the remainder of an abandoned subsequence so the
// next one starts at a clean boundary.
func (d *Defray[T]) fastForward() {
	for {
		if _, ok := d.src.Next(); !ok {
			d.cur = cursorBoundary
			d.live = false
			return
		}
	}
}

// All returns a lazy view over the remaining subsequences, built on
// repeated Next calls. It enables nested range loops:
//
//	for sub := range d.All() {
//		for v := range sub.Values() {
//			...
//		}
//	}
//
// Ranging does not restart the adapter; a second All picks up wherever
// the first stopped.
func (d *Defray[T]) All() iter.Seq[*Subsequence[T]] {
	return func(yield func(*Subsequence[T]) bool) {
		for {
			sub, ok := d.Next()
			if !ok || !yield(sub) {
				return
			}
		}
	}
}

// Release hands the producer back in its current, possibly
// mid-subsequence state and spends the adapter: further Next calls
// return no-more, any live handle is invalidated, and no rewind of a
// partially consumed subsequence is attempted. Release may be called at
// most once; the Frayed returned by a second call wraps nothing.
func (d *Defray[T]) Release() Frayed[T] {
	src := d.src
	d.src = nil
	d.cur = cursorDone
	d.gen++
	d.live = false
	if src == nil {
		return Frayed[T]{}
	}
	return Frayed[T]{src: src}
}
