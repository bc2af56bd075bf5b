// Package redistream sessionizes a Redis stream into a frayed stream.
//
// A Source pages through a bounded XRANGE and splits it into sessions
// wherever consecutive entry timestamps drift apart by more than the
// configured gap:
//
//	src, err := redistream.New(ctx, redistream.Config{
//	    Addr:   "localhost:6379",
//	    Stream: "events",
//	    MaxGap: "30s",
//	}, log)
//
//	for session := range src.Frayed().Defray().All() {
//	    entries := session.Collect()
//	}
//
// Page reads retry with backoff; a read that fails past its retry
// budget exhausts the stream, and Err reports the failure.
package redistream
