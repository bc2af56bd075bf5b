// Package kafkastream reads a Kafka topic as a frayed stream.
//
// The subsequence structure travels on the wire: producers append a
// record with an empty value to mark a boundary, and two consecutive
// markers end the stream, so exhaustion arrives from the topic itself:
//
//	src, err := kafkastream.New(ctx, kafkastream.Config{
//	    Brokers: []string{"localhost:9092"},
//	    Topic:   "events",
//	}, log)
//
//	for batch := range src.Frayed().Defray().All() {
//	    records := batch.Collect()
//	}
//
// When no GroupID is configured the source reads under an ephemeral
// group, replaying the topic from the first offset. Fetches retry with
// backoff; a fetch that fails past its retry budget exhausts the
// stream, and Err reports the failure.
package kafkastream
