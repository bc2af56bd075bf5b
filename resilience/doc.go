// Package resilience provides retry with exponential backoff for
// operations against external systems.
//
// The source connectors use it to survive transient broker and store
// failures without surfacing them as stream exhaustion:
//
//	page, err := resilience.Retry(ctx, cfg, func() ([]redis.XMessage, error) {
//	    return client.XRange(ctx, stream, from, "+").Result()
//	})
//
// Retry honors context cancellation between attempts and while backing
// off, and reports ErrMaxAttempts once every attempt has failed.
package resilience
