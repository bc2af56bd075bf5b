// Package frayed implements flat iterators that carry subsequence
// structure in-band, and the Defray adapter that re-exposes that
// structure as an iterator of iterators.
//
// A frayed producer yields the elements of consecutive subsequences
// through a single Next() (T, bool) cursor. A false result is a boundary:
// the current subsequence has ended. Two consecutive boundaries mean the
// whole producer is exhausted, after which every further call must keep
// returning a boundary. Nothing is buffered and no per-subsequence
// containers are allocated; the grouping travels in the value stream
// itself.
//
// # The convention
//
//   - element:   Next returns (v, true)
//   - boundary:  Next returns (zero, false), the current subsequence ended
//   - exhausted: a boundary immediately after a boundary, then boundaries forever
//
// Producers opt in to the convention by being marked: Mark (or FromFunc)
// wraps them in the Frayed type, and the adapter plus the combinators in
// this package accept only marked producers. The mark is a promise, not
// something the adapter verifies.
//
// # Defraying
//
// Defray owns the producer and hands out one Subsequence at a time. The
// outer call and the inner handles share a single cursor, so the adapter
// arbitrates: at most one handle is live, a handle is invalidated the
// moment the adapter moves on, and abandoning a handle mid-subsequence is
// allowed. On the next outer call the adapter fast-forwards past the
// remainder of the abandoned subsequence so the following one starts at a
// clean boundary. Once the double boundary has been seen the adapter is
// done and never touches the producer again.
//
// Empty subsequences cannot be represented: a producer that starts with
// two boundaries defrays to zero subsequences.
//
// # Usage
//
//	sessions := frayed.FromFunc(nextEvent).Defray()
//	for sub := range sessions.All() {
//		for ev := range sub.Values() {
//			handle(ev)
//		}
//	}
//
// Release returns the producer in its current state when raw access is
// needed again; Peeker and the Prefix combinators extend marked producers
// without breaking the convention.
package frayed
