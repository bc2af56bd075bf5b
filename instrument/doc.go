// Package instrument provides composable middleware for frayed streams.
//
// A Middleware wraps a stream and returns a stream, so cross-cutting
// concerns compose with Chain without touching the boundary protocol.
// Every (value, ok) pair passes through unchanged; the middleware only
// watches the protocol go by:
//
//	f := instrument.Chain(
//	    instrument.WithLogging[string]("orders", log),
//	    instrument.WithMetrics[string]("orders", metrics),
//	)(source.Frayed())
//
//	for sub := range f.Defray().All() {
//	    process(sub.Collect())
//	}
package instrument
