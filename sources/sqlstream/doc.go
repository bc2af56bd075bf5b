// Package sqlstream turns an ordered SQL result set into a frayed
// stream, one subsequence per run of equal grouping keys.
//
// The query must be ordered by the grouping column:
//
//	db, err := sqlstream.Open(ctx, sqlite.Open(dsn), cfg, log)
//	src, err := sqlstream.Query(ctx, db,
//	    "SELECT session, payload FROM events ORDER BY session, id",
//	    scanEvent, func(e Event) string { return e.Session }, log)
//
//	for sub := range src.Frayed().Defray().All() {
//	    session := sub.Collect()
//	}
//
// Rows stay on the database cursor until pulled, so a Source reads
// arbitrarily large result sets in constant memory. Check Err after the
// stream is exhausted.
package sqlstream
